package records

import (
	"time"

	"github.com/google/uuid"
)

// PatientRecord is the historical entry written when an appointment is
// completed. The booking layer owns its creation; this package only
// reads and annotates.
type PatientRecord struct {
	ID            uuid.UUID
	AppointmentID uuid.UUID
	UserID        uuid.UUID
	DoctorID      uuid.UUID
	ServiceID     uuid.UUID
	Date          string
	Notes         string
	CreatedAt     time.Time
}

type Medicine struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

type Prescription struct {
	ID            uuid.UUID
	AppointmentID uuid.UUID
	UserID        uuid.UUID
	DoctorID      uuid.UUID
	Medicines     []Medicine
	Notes         string
	CreatedAt     time.Time
}
