package patient

import (
	"context"
	"errors"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	CreatePatient(ctx context.Context, name string, age int, passwordHash string) (*Patient, error)
	GetPatientByID(ctx context.Context, id int64) (*Patient, error)

	// Login lookup; returns ErrPatientNotFound when no record matches the name
	GetPatientByName(ctx context.Context, name string) (*Patient, error)
}
