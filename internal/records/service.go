package records

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/domain"
)

// AppointmentReader verifies appointment state before a prescription is
// written against it.
type AppointmentReader interface {
	GetAppointmentByID(ctx context.Context, id uuid.UUID) (*booking.Appointment, error)
}

// Directory resolves display names for PDF export.
type Directory interface {
	DoctorName(ctx context.Context, id uuid.UUID) (string, error)
	PatientName(ctx context.Context, id uuid.UUID) (string, error)
}

type Service struct {
	repo         Repository
	appointments AppointmentReader
	directory    Directory
}

func NewService(repo Repository, appointments AppointmentReader, directory Directory) *Service {
	return &Service{repo: repo, appointments: appointments, directory: directory}
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*PatientRecord, error) {
	return s.repo.GetRecordByID(ctx, id)
}

func (s *Service) ListRecordsByUser(ctx context.Context, userID uuid.UUID) ([]PatientRecord, error) {
	return s.repo.ListRecordsByUser(ctx, userID)
}

func (s *Service) UpdateRecordNotes(ctx context.Context, id uuid.UUID, notes string) (*PatientRecord, error) {
	return s.repo.UpdateRecordNotes(ctx, id, notes)
}

// CreatePrescription writes a prescription for a completed
// appointment. The patient and doctor refs are taken from the
// appointment, not the request, so they cannot disagree.
func (s *Service) CreatePrescription(ctx context.Context, appointmentID uuid.UUID, medicines []Medicine, notes string) (*Prescription, error) {
	if len(medicines) == 0 {
		return nil, domain.ValidationError{Field: "medicines", Msg: "must list at least one item"}
	}
	for i, m := range medicines {
		if strings.TrimSpace(m.Name) == "" {
			return nil, domain.ValidationError{Field: fmt.Sprintf("medicines[%d].name", i), Msg: "must not be empty"}
		}
	}

	appt, err := s.appointments.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	if appt.Status != booking.StatusCompleted {
		return nil, fmt.Errorf("%w: prescriptions require a completed appointment", booking.ErrInvalidTransition)
	}

	p := &Prescription{
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		DoctorID:      appt.DoctorID,
		Medicines:     medicines,
		Notes:         notes,
	}
	return s.repo.CreatePrescription(ctx, p)
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	return s.repo.GetPrescriptionByID(ctx, id)
}

func (s *Service) ListPrescriptionsByUser(ctx context.Context, userID uuid.UUID) ([]Prescription, error) {
	return s.repo.ListPrescriptionsByUser(ctx, userID)
}

// PrescriptionPDF renders the prescription as a printable PDF and
// returns the bytes plus a suggested filename.
func (s *Service) PrescriptionPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	p, err := s.repo.GetPrescriptionByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	doctorName, err := s.directory.DoctorName(ctx, p.DoctorID)
	if err != nil {
		return nil, "", fmt.Errorf("resolve doctor name: %w", err)
	}
	patientName, err := s.directory.PatientName(ctx, p.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("resolve patient name: %w", err)
	}

	pdf, err := buildPrescriptionPDF(p, doctorName, patientName)
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("prescription-%s.pdf", p.ID)
	return pdf, filename, nil
}
