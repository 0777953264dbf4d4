package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/domain"
)

type memRepo struct {
	proofs map[uuid.UUID]*Proof
}

func newMemRepo() *memRepo {
	return &memRepo{proofs: make(map[uuid.UUID]*Proof)}
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*Proof, error) {
	p, ok := r.proofs[id]
	if !ok {
		return nil, ErrProofNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memRepo) ListByStatus(_ context.Context, status *ProofStatus) ([]Proof, error) {
	var out []Proof
	for _, p := range r.proofs {
		if status == nil || p.Status == *status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memRepo) ListByAppointment(_ context.Context, appointmentID uuid.UUID) ([]Proof, error) {
	var out []Proof
	for _, p := range r.proofs {
		if p.AppointmentID == appointmentID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memRepo) Create(_ context.Context, p *Proof) (*Proof, error) {
	cp := *p
	cp.ID = uuid.New()
	cp.Status = ProofPending
	r.proofs[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *memRepo) Review(_ context.Context, id uuid.UUID, to ProofStatus, reviewerID uuid.UUID, notes string) (*Proof, error) {
	p, ok := r.proofs[id]
	if !ok {
		return nil, ErrProofNotFound
	}
	if p.Status != ProofPending {
		return nil, ErrProofAlreadyReviewed
	}
	now := time.Now()
	p.Status = to
	p.ReviewNotes = notes
	p.ReviewedBy = &reviewerID
	p.ReviewedAt = &now
	cp := *p
	return &cp, nil
}

type fakeAppointments struct {
	appt *booking.Appointment
}

func (f *fakeAppointments) GetAppointmentByID(_ context.Context, id uuid.UUID) (*booking.Appointment, error) {
	if f.appt == nil || f.appt.ID != id {
		return nil, booking.ErrAppointmentNotFound
	}
	cp := *f.appt
	return &cp, nil
}

func fixtureService() (*Service, *booking.Appointment) {
	appt := &booking.Appointment{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: booking.StatusBooked,
	}
	return NewService(newMemRepo(), &fakeAppointments{appt: appt}), appt
}

func TestSubmitCreatesPendingProof(t *testing.T) {
	svc, appt := fixtureService()

	p, err := svc.Submit(context.Background(), appt.ID, appt.UserID, "GCASH-12345", 40000)
	require.NoError(t, err)

	assert.Equal(t, ProofPending, p.Status)
	assert.Equal(t, appt.ID, p.AppointmentID)
	assert.Equal(t, int64(40000), p.AmountCentavos)
}

func TestSubmitValidation(t *testing.T) {
	svc, appt := fixtureService()

	_, err := svc.Submit(context.Background(), appt.ID, appt.UserID, "   ", 40000)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Submit(context.Background(), appt.ID, appt.UserID, "GCASH-12345", -1)
	assert.True(t, domain.IsValidation(err))
}

func TestSubmitOwnershipCheck(t *testing.T) {
	svc, appt := fixtureService()

	_, err := svc.Submit(context.Background(), appt.ID, uuid.New(), "GCASH-12345", 40000)
	assert.True(t, domain.IsValidation(err))
}

func TestSubmitUnknownAppointment(t *testing.T) {
	svc, _ := fixtureService()

	_, err := svc.Submit(context.Background(), uuid.New(), uuid.New(), "GCASH-12345", 40000)
	assert.ErrorIs(t, err, booking.ErrAppointmentNotFound)
}

func TestApproveOnce(t *testing.T) {
	svc, appt := fixtureService()
	reviewer := uuid.New()

	p, err := svc.Submit(context.Background(), appt.ID, appt.UserID, "GCASH-12345", 40000)
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), p.ID, reviewer, "matches bank statement")
	require.NoError(t, err)
	assert.Equal(t, ProofApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, reviewer, *approved.ReviewedBy)

	// Second review of any kind is refused.
	_, err = svc.Reject(context.Background(), p.ID, reviewer, "changed my mind")
	assert.ErrorIs(t, err, ErrProofAlreadyReviewed)
}

func TestRejectRequiresNotes(t *testing.T) {
	svc, appt := fixtureService()

	p, err := svc.Submit(context.Background(), appt.ID, appt.UserID, "GCASH-12345", 40000)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), p.ID, uuid.New(), "  ")
	assert.True(t, domain.IsValidation(err))

	rejected, err := svc.Reject(context.Background(), p.ID, uuid.New(), "reference not found")
	require.NoError(t, err)
	assert.Equal(t, ProofRejected, rejected.Status)
	assert.Equal(t, "reference not found", rejected.ReviewNotes)
}
