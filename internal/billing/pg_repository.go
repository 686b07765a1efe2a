package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// EnsureSchema creates the bills table if it does not exist yet.
func (r *PgRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bills (
			id             BIGSERIAL PRIMARY KEY,
			patient_id     BIGINT NOT NULL,
			amount         DOUBLE PRECISION NOT NULL,
			status         TEXT NOT NULL,
			date_generated TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure bills schema: %w", err)
	}
	return nil
}

func scanBill(row pgx.Row) (*Bill, error) {
	var b Bill

	err := row.Scan(
		&b.ID,
		&b.PatientID,
		&b.Amount,
		&b.Status,
		&b.DateGenerated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}

	return &b, nil
}

func (r *PgRepository) CreateBill(ctx context.Context, patientID int64, amount float64, date string) (*Bill, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bills (patient_id, amount, status, date_generated)
		VALUES ($1, $2, 'PENDING', $3)
		RETURNING id, patient_id, amount, status, date_generated
	`, patientID, amount, date)
	return scanBill(row)
}

func (r *PgRepository) ListBillsByPatient(ctx context.Context, patientID int64) ([]Bill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, amount, status, date_generated
		FROM bills
		WHERE patient_id = $1
		ORDER BY id
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBills(rows)
}

func (r *PgRepository) ListBillsByPatientAndStatus(ctx context.Context, patientID int64, status BillStatus) ([]Bill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, amount, status, date_generated
		FROM bills
		WHERE patient_id = $1 AND status = $2
		ORDER BY id
	`, patientID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBills(rows)
}

func (r *PgRepository) MarkPaid(ctx context.Context, billID int64) (*Bill, error) {
	// Unconditional on current status, so re-paying stays a success.
	row := r.pool.QueryRow(ctx, `
		UPDATE bills
		SET status = 'PAID'
		WHERE id = $1
		RETURNING id, patient_id, amount, status, date_generated
	`, billID)
	return scanBill(row)
}

func collectBills(rows pgx.Rows) ([]Bill, error) {
	var result []Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
