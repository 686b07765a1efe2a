package appointment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	redisclient "github.com/careops/hospital-services/internal/redis"
)

var (
	ErrPatientValidationFailed = errors.New("patient validation failed")
	ErrRegistryUnavailable     = errors.New("patient registry unavailable")
)

// PatientRegistry is the scheduler's view of the patient service.
// A false result means the patient id is genuinely unknown; an error
// means the registry could not answer at all.
type PatientRegistry interface {
	PatientExists(ctx context.Context, patientID int64) (bool, error)
}

// BillingNotifier is the scheduler's view of the billing service.
type BillingNotifier interface {
	GenerateBill(ctx context.Context, patientID int64) error
}

type Service struct {
	repo     Repository
	registry PatientRegistry
	billing  BillingNotifier
	locker   redisclient.Locker

	upstreamTimeout time.Duration
	now             func() time.Time
}

func NewService(repo Repository, registry PatientRegistry, billing BillingNotifier, locker redisclient.Locker, upstreamTimeout time.Duration) *Service {
	return &Service{
		repo:            repo,
		registry:        registry,
		billing:         billing,
		locker:          locker,
		upstreamTimeout: upstreamTimeout,
		now:             time.Now,
	}
}

// Book runs the cross-service booking workflow: validate the patient
// against the registry, take the slot, then nudge billing.
//
// The per-slot lock only narrows the race window between the conflict
// read and the insert; the unique index on (doctor, date, time_slot) is
// what actually guarantees a slot is booked once. Billing notification
// is fire-and-forget: the appointment is durable whether or not the
// bill was generated, and nothing retries a failed notification.
func (s *Service) Book(ctx context.Context, patientID int64, doctor, date, timeSlot string) (*Appointment, error) {
	vctx, cancel := context.WithTimeout(ctx, s.upstreamTimeout)
	exists, err := s.registry.PatientExists(vctx, patientID)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}
	if !exists {
		return nil, ErrPatientValidationFailed
	}

	var created *Appointment

	err = s.locker.WithSlotLock(ctx, SlotKey(doctor, date, timeSlot), func(lockCtx context.Context) error {
		taken, err := s.repo.SlotTaken(lockCtx, doctor, date, timeSlot)
		if err != nil {
			return fmt.Errorf("check slot: %w", err)
		}
		if taken {
			return ErrSlotTaken
		}

		appt, err := s.repo.CreateAppointment(lockCtx, patientID, doctor, date, timeSlot)
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		created = appt
		return nil
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			// Someone else is booking this exact slot right now.
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.upstreamTimeout)
	defer cancel()
	if err := s.billing.GenerateBill(nctx, patientID); err != nil {
		// Best effort only. The booking already happened.
		log.Printf("billing notification failed for patient %d: %v", patientID, err)
	}

	return created, nil
}

// History returns every appointment for the patient in storage order.
func (s *Service) History(ctx context.Context, patientID int64) ([]Appointment, error) {
	appts, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// Past returns appointments dated strictly before today, newest first.
func (s *Service) Past(ctx context.Context, patientID int64) ([]Appointment, error) {
	today := s.now().Format("2006-01-02")
	appts, err := s.repo.ListPastByPatient(ctx, patientID, today)
	if err != nil {
		return nil, fmt.Errorf("list past appointments: %w", err)
	}
	return appts, nil
}

// Upcoming returns appointments dated today or later, soonest first.
func (s *Service) Upcoming(ctx context.Context, patientID int64) ([]Appointment, error) {
	today := s.now().Format("2006-01-02")
	appts, err := s.repo.ListUpcomingByPatient(ctx, patientID, today)
	if err != nil {
		return nil, fmt.Errorf("list upcoming appointments: %w", err)
	}
	return appts, nil
}
