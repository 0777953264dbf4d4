package payments

import (
	"time"

	"github.com/google/uuid"
)

type ProofStatus string

const (
	ProofPending  ProofStatus = "pending"
	ProofApproved ProofStatus = "approved"
	ProofRejected ProofStatus = "rejected"
)

// Proof is a patient's claim of payment for an appointment: a bank or
// e-wallet reference awaiting staff review. No gateway integration,
// bookkeeping only.
type Proof struct {
	ID             uuid.UUID
	AppointmentID  uuid.UUID
	UserID         uuid.UUID
	Reference      string
	AmountCentavos int64
	Status         ProofStatus
	ReviewNotes    string
	ReviewedBy     *uuid.UUID
	ReviewedAt     *time.Time
	CreatedAt      time.Time
}
