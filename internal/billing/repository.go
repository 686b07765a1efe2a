package billing

import (
	"context"
	"errors"
)

var (
	ErrBillNotFound = errors.New("bill not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	CreateBill(ctx context.Context, patientID int64, amount float64, date string) (*Bill, error)

	ListBillsByPatient(ctx context.Context, patientID int64) ([]Bill, error)
	ListBillsByPatientAndStatus(ctx context.Context, patientID int64, status BillStatus) ([]Bill, error)

	// MarkPaid flips a bill to PAID and returns the updated record.
	// Marking an already paid bill is a no-op success; an unknown id
	// returns ErrBillNotFound.
	MarkPaid(ctx context.Context, billID int64) (*Bill, error)
}
