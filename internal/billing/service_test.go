package billing

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -- Mock repository --

type mockRepo struct {
	seq   int64
	bills map[int64]*Bill
}

func newMockRepo() *mockRepo {
	return &mockRepo{bills: make(map[int64]*Bill)}
}

func (m *mockRepo) CreateBill(_ context.Context, patientID int64, amount float64, date string) (*Bill, error) {
	m.seq++
	b := &Bill{
		ID:            m.seq,
		PatientID:     patientID,
		Amount:        amount,
		Status:        StatusPending,
		DateGenerated: date,
	}
	m.bills[b.ID] = b
	return b, nil
}

func (m *mockRepo) ListBillsByPatient(_ context.Context, patientID int64) ([]Bill, error) {
	var out []Bill
	for id := int64(1); id <= m.seq; id++ {
		if b, ok := m.bills[id]; ok && b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepo) ListBillsByPatientAndStatus(_ context.Context, patientID int64, status BillStatus) ([]Bill, error) {
	var out []Bill
	for id := int64(1); id <= m.seq; id++ {
		if b, ok := m.bills[id]; ok && b.PatientID == patientID && b.Status == status {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *mockRepo) MarkPaid(_ context.Context, billID int64) (*Bill, error) {
	b, ok := m.bills[billID]
	if !ok {
		return nil, ErrBillNotFound
	}
	b.Status = StatusPaid
	return b, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	svc := NewService(repo)
	return svc, repo
}

// -- Tests --

func TestGenerateBill(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.GenerateBill(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Status != StatusPending {
		t.Errorf("new bill must be PENDING, got %s", b.Status)
	}
	if b.Amount != FlatAmount {
		t.Errorf("expected flat amount %v, got %v", FlatAmount, b.Amount)
	}
	if b.PatientID != 7 {
		t.Errorf("expected patient 7, got %d", b.PatientID)
	}
	if b.DateGenerated != time.Now().Format("2006-01-02") {
		t.Errorf("expected today's date, got %s", b.DateGenerated)
	}
}

func TestGenerateBill_AlwaysNewBill(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.GenerateBill(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateBill(ctx, 7); err != nil {
		t.Fatal(err)
	}

	bills, err := svc.GetBills(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(bills) != 2 {
		t.Errorf("each generate call creates a bill; expected 2, got %d", len(bills))
	}
}

func TestPayBill(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b, err := svc.GenerateBill(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}

	paid, err := svc.PayBill(ctx, b.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.Status != StatusPaid {
		t.Errorf("expected PAID, got %s", paid.Status)
	}
}

func TestPayBill_Idempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	b, err := svc.GenerateBill(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.PayBill(ctx, b.ID); err != nil {
		t.Fatalf("first pay: %v", err)
	}
	paid, err := svc.PayBill(ctx, b.ID)
	if err != nil {
		t.Fatalf("paying twice must not error: %v", err)
	}
	if paid.Status != StatusPaid {
		t.Errorf("expected PAID, got %s", paid.Status)
	}
}

func TestPayBill_Unknown(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.PayBill(context.Background(), 12345)
	if !errors.Is(err, ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}

func TestPendingPaidFilter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.GenerateBill(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.GenerateBill(ctx, 7); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.PayBill(ctx, first.ID); err != nil {
		t.Fatal(err)
	}

	pending, err := svc.GetPendingBills(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	paid, err := svc.GetPaidBills(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}

	if len(pending) != 1 || pending[0].Status != StatusPending {
		t.Errorf("expected 1 pending bill, got %+v", pending)
	}
	if len(paid) != 1 || paid[0].ID != first.ID {
		t.Errorf("expected the paid bill, got %+v", paid)
	}
}
