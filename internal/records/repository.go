package records

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrRecordNotFound       = errors.New("patient record not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
)

type Repository interface {
	GetRecordByID(ctx context.Context, id uuid.UUID) (*PatientRecord, error)
	ListRecordsByUser(ctx context.Context, userID uuid.UUID) ([]PatientRecord, error)
	UpdateRecordNotes(ctx context.Context, id uuid.UUID, notes string) (*PatientRecord, error)

	CreatePrescription(ctx context.Context, p *Prescription) (*Prescription, error)
	GetPrescriptionByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	ListPrescriptionsByUser(ctx context.Context, userID uuid.UUID) ([]Prescription, error)
}
