package billing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter() http.Handler {
	svc, _ := newTestService()
	h := NewHandler(svc)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestHandler_GenerateBill(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/bills/generate?patient_id=7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Bill generated" {
		t.Errorf("unexpected message %q", resp["message"])
	}
}

func TestHandler_GenerateBill_BadPatientID(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/bills/generate?patient_id=abc", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandler_GetBills(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/bills/generate?patient_id=7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/bills/7", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var bills []BillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &bills); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("expected 1 bill, got %d", len(bills))
	}
	if bills[0].Amount != FlatAmount || bills[0].Status != string(StatusPending) {
		t.Errorf("unexpected bill %+v", bills[0])
	}
	if bills[0].Date == "" {
		t.Error("bill date missing")
	}
}

func TestHandler_GetBills_EmptyIsList(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/bills/99", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestHandler_PendingAndPaidRoutes(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/bills/generate?patient_id=7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/bills/pending/7", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("pending route: expected 200, got %d", rec.Code)
	}
	var pending []BillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &pending); err != nil {
		t.Fatalf("decode pending: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("expected 1 pending bill, got %d", len(pending))
	}

	req = httptest.NewRequest(http.MethodGet, "/bills/paid/7", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("paid route: expected 200, got %d", rec.Code)
	}
	var paid []BillResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &paid); err != nil {
		t.Fatalf("decode paid: %v", err)
	}
	if len(paid) != 0 {
		t.Errorf("expected no paid bills, got %d", len(paid))
	}
}

func TestHandler_PayBill(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/bills/generate?patient_id=7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate failed: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/bills/pay", strings.NewReader(`{"bill_id":1}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Bill paid successfully" {
		t.Errorf("unexpected message %q", resp["message"])
	}
}

func TestHandler_PayBill_Unknown(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/bills/pay", strings.NewReader(`{"bill_id":12345}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["detail"] != "Bill not found" {
		t.Errorf("unexpected detail %q", resp["detail"])
	}
}
