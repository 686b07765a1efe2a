package billing

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Service struct {
	repo Repository

	now func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// GenerateBill records a new PENDING bill at the flat amount, dated
// today. Patient existence is deliberately not checked; billing trusts
// its callers.
func (s *Service) GenerateBill(ctx context.Context, patientID int64) (*Bill, error) {
	today := s.now().Format("2006-01-02")

	b, err := s.repo.CreateBill(ctx, patientID, FlatAmount, today)
	if err != nil {
		return nil, fmt.Errorf("create bill: %w", err)
	}

	return b, nil
}

func (s *Service) GetBills(ctx context.Context, patientID int64) ([]Bill, error) {
	bills, err := s.repo.ListBillsByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return bills, nil
}

func (s *Service) GetPendingBills(ctx context.Context, patientID int64) ([]Bill, error) {
	bills, err := s.repo.ListBillsByPatientAndStatus(ctx, patientID, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending bills: %w", err)
	}
	return bills, nil
}

func (s *Service) GetPaidBills(ctx context.Context, patientID int64) ([]Bill, error) {
	bills, err := s.repo.ListBillsByPatientAndStatus(ctx, patientID, StatusPaid)
	if err != nil {
		return nil, fmt.Errorf("list paid bills: %w", err)
	}
	return bills, nil
}

// PayBill marks a bill PAID. Re-paying a paid bill is a success, a bill
// that was never generated is ErrBillNotFound.
func (s *Service) PayBill(ctx context.Context, billID int64) (*Bill, error) {
	b, err := s.repo.MarkPaid(ctx, billID)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("mark bill paid: %w", err)
	}
	return b, nil
}
