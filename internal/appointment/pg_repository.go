package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// EnsureSchema creates the appointments table and the unique index that
// makes the slot-conflict check authoritative under concurrent inserts.
func (r *PgRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS appointments (
			id         BIGSERIAL PRIMARY KEY,
			patient_id BIGINT NOT NULL,
			doctor     TEXT NOT NULL,
			date       TEXT NOT NULL,
			time_slot  TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure appointments schema: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS appointments_slot_uniq
		ON appointments (doctor, date, time_slot)
	`)
	if err != nil {
		return fmt.Errorf("ensure slot unique index: %w", err)
	}

	return nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.Doctor,
		&a.Date,
		&a.TimeSlot,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *PgRepository) SlotTaken(ctx context.Context, doctor, date, timeSlot string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE doctor = $1 AND date = $2 AND time_slot = $3
		)
	`, doctor, date, timeSlot).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) CreateAppointment(ctx context.Context, patientID int64, doctor, date, timeSlot string) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor, date, time_slot)
		VALUES ($1, $2, $3, $4)
		RETURNING id, patient_id, doctor, date, time_slot
	`, patientID, doctor, date, timeSlot)

	a, err := scanAppointment(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return a, nil
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID int64) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, doctor, date, time_slot
		FROM appointments
		WHERE patient_id = $1
		ORDER BY id
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListPastByPatient(ctx context.Context, patientID int64, today string) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, doctor, date, time_slot
		FROM appointments
		WHERE patient_id = $1 AND date < $2
		ORDER BY date DESC
	`, patientID, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *PgRepository) ListUpcomingByPatient(ctx context.Context, patientID int64, today string) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_id, doctor, date, time_slot
		FROM appointments
		WHERE patient_id = $1 AND date >= $2
		ORDER BY date ASC
	`, patientID, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
