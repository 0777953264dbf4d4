package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotTaken           = errors.New("slot already booked for this doctor")
	ErrInvalidTransition   = errors.New("appointment status does not allow this transition")
)

// Filter narrows appointment listings.
type Filter struct {
	UserID   *uuid.UUID
	DoctorID *uuid.UUID
	Status   *AppointmentStatus
	Limit    int
	Offset   int
}

// Repository contains all DB interactions needed by the booking service.
// The multi-write operations (reserve, complete, cancel, delete) are
// each a single transaction.
type Repository interface {
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListAppointments(ctx context.Context, f Filter) ([]Appointment, error)

	// ReserveAndCreate inserts the appointment and its slot reservation
	// atomically. Returns ErrSlotTaken when the (doctor, date, time)
	// tuple is already reserved.
	ReserveAndCreate(ctx context.Context, appt *Appointment) (*Appointment, error)

	// CompleteWithRecord flips booked -> completed and writes the
	// patient record in the same transaction. Returns
	// ErrInvalidTransition when the appointment is not in booked state.
	CompleteWithRecord(ctx context.Context, id uuid.UUID, notes string) (*Appointment, error)

	// CancelAndRelease flips booked -> cancelled and frees the slot in
	// the same transaction.
	CancelAndRelease(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// DeleteAndRelease removes the appointment in any status and frees
	// its slot.
	DeleteAndRelease(ctx context.Context, id uuid.UUID) error

	// ReservedSlots maps ISO date -> reserved times for the doctor in
	// [from, to] inclusive.
	ReservedSlots(ctx context.Context, doctorID uuid.UUID, from, to string) (map[string][]string, error)

	// PruneSlotsBefore drops reservation rows for dates before cutoff.
	// Past appointments keep their history; only the reservation index
	// is swept.
	PruneSlotsBefore(ctx context.Context, cutoff string) (int64, error)
}
