package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/domain"
)

// AppointmentReader checks the appointment a proof is submitted against.
type AppointmentReader interface {
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*booking.Appointment, error)
}

type Service struct {
	repo         Repository
	appointments AppointmentReader
}

func NewService(repo Repository, appointments AppointmentReader) *Service {
	return &Service{repo: repo, appointments: appointments}
}

// Submit files a proof of payment for the caller's appointment.
func (s *Service) Submit(ctx context.Context, appointmentID, userID uuid.UUID, reference string, amountCentavos int64) (*Proof, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domain.ValidationError{Field: "reference", Msg: "is required"}
	}
	if amountCentavos < 0 {
		return nil, domain.ValidationError{Field: "amount", Msg: "must not be negative"}
	}

	appt, err := s.appointments.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if appt.UserID != userID {
		return nil, domain.ValidationError{Field: "appointment_id", Msg: "does not belong to the caller"}
	}

	p := &Proof{
		AppointmentID:  appt.ID,
		UserID:         userID,
		Reference:      reference,
		AmountCentavos: amountCentavos,
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Proof, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, status *ProofStatus) ([]Proof, error) {
	return s.repo.ListByStatus(ctx, status)
}

func (s *Service) ListByAppointment(ctx context.Context, appointmentID uuid.UUID) ([]Proof, error) {
	return s.repo.ListByAppointment(ctx, appointmentID)
}

func (s *Service) Approve(ctx context.Context, id, reviewerID uuid.UUID, notes string) (*Proof, error) {
	return s.repo.Review(ctx, id, ProofApproved, reviewerID, notes)
}

func (s *Service) Reject(ctx context.Context, id, reviewerID uuid.UUID, notes string) (*Proof, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, domain.ValidationError{Field: "notes", Msg: "a rejection must say why"}
	}
	return s.repo.Review(ctx, id, ProofRejected, reviewerID, notes)
}
