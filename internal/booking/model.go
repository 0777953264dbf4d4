package booking

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment links a patient, doctor, service, slot and price. The
// final price is fixed at booking time and never recomputed.
type Appointment struct {
	ID                 uuid.UUID
	DoctorID           uuid.UUID
	UserID             uuid.UUID
	ServiceID          uuid.UUID
	Date               string // ISO date, e.g. "2025-01-10"
	Time               string // one of the slot template values
	Status             AppointmentStatus
	FinalPriceCentavos int64
	CreatedBy          *uuid.UUID // set when booked by staff on a patient's behalf
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DayAvailability is one day of the booking window.
type DayAvailability struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}
