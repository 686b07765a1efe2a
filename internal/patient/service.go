package patient

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new patient record. The password is stored as a
// bcrypt hash; nothing else about the profile is validated.
func (s *Service) Register(ctx context.Context, name string, age int, password string) (*Patient, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p, err := s.repo.CreatePatient(ctx, name, age, string(hash))
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}

	return p, nil
}

// Login checks name and password. An unknown name and a wrong password
// both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, name, password string) (*Patient, error) {
	p, err := s.repo.GetPatientByName(ctx, name)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load patient by name: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*Patient, error) {
	p, err := s.repo.GetPatientByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}
	return p, nil
}
