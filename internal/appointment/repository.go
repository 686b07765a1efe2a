package appointment

import (
	"context"
	"errors"
)

var (
	ErrSlotTaken = errors.New("slot already booked")
)

// Repository contains all DB interactions needed by the service.
type Repository interface {
	// SlotTaken reports whether any appointment already occupies the
	// (doctor, date, time_slot) tuple.
	SlotTaken(ctx context.Context, doctor, date, timeSlot string) (bool, error)

	// CreateAppointment inserts a new appointment. The storage layer
	// enforces slot uniqueness; a duplicate insert returns ErrSlotTaken
	// regardless of any prior SlotTaken read.
	CreateAppointment(ctx context.Context, patientID int64, doctor, date, timeSlot string) (*Appointment, error)

	// ListByPatient returns all appointments in storage order.
	ListByPatient(ctx context.Context, patientID int64) ([]Appointment, error)

	// ListPastByPatient returns appointments with date < today, newest first.
	ListPastByPatient(ctx context.Context, patientID int64, today string) ([]Appointment, error)

	// ListUpcomingByPatient returns appointments with date >= today, soonest first.
	ListUpcomingByPatient(ctx context.Context, patientID int64, today string) ([]Appointment, error)
}
