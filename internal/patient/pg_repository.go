package patient

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

// EnsureSchema creates the patients table if it does not exist yet.
func (r *PgRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS patients (
			id            BIGSERIAL PRIMARY KEY,
			name          TEXT NOT NULL,
			age           INT  NOT NULL,
			password_hash TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure patients schema: %w", err)
	}
	return nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PgRepository) CreatePatient(ctx context.Context, name string, age int, passwordHash string) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO patients (name, age, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, age, password_hash
	`, name, age, passwordHash)
	return scanPatient(row)
}

func (r *PgRepository) GetPatientByID(ctx context.Context, id int64) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, age, password_hash
		FROM patients
		WHERE id = $1
	`, id)
	return scanPatient(row)
}

func (r *PgRepository) GetPatientByName(ctx context.Context, name string) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, age, password_hash
		FROM patients
		WHERE name = $1
		ORDER BY id
		LIMIT 1
	`, name)
	return scanPatient(row)
}
