package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrProofNotFound        = errors.New("payment proof not found")
	ErrProofAlreadyReviewed = errors.New("payment proof has already been reviewed")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Proof, error)
	ListByStatus(ctx context.Context, status *ProofStatus) ([]Proof, error)
	ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]Proof, error)
	Create(ctx context.Context, p *Proof) (*Proof, error)

	// Review flips pending -> approved/rejected conditionally; a proof
	// reviewed concurrently surfaces ErrProofAlreadyReviewed.
	Review(ctx context.Context, id uuid.UUID, to ProofStatus, reviewerID uuid.UUID, notes string) (*Proof, error)
}
