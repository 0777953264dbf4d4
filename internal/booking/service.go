package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/brightsmile/clinic-backend/internal/catalog"
	"github.com/brightsmile/clinic-backend/internal/domain"
	"github.com/brightsmile/clinic-backend/internal/promotion"
	redisclient "github.com/brightsmile/clinic-backend/internal/redis"
)

var (
	ErrDoctorUnavailable = errors.New("doctor is not accepting appointments")
	ErrSlotBeingBooked   = errors.New("slot is currently being booked, please retry")
)

const defaultRecordNotes = "Appointment completed."

// CatalogReader is the slice of the catalog the booking service needs.
type CatalogReader interface {
	GetDoctorByID(ctx context.Context, id uuid.UUID) (*catalog.Doctor, error)
	GetServiceByID(ctx context.Context, id uuid.UUID) (*catalog.Service, error)
}

// PromotionSource supplies discount candidates for pricing.
type PromotionSource interface {
	ListActiveForService(ctx context.Context, serviceID uuid.UUID, now time.Time) ([]promotion.Promotion, error)
}

// Service orchestrates booking, availability and the appointment
// lifecycle. It is the only writer of slot reservations.
type Service struct {
	repo       Repository
	catalog    CatalogReader
	promos     PromotionSource
	locker     redisclient.Locker
	cache      *redisclient.Cache
	windowDays int
	now        func() time.Time
}

func NewService(repo Repository, cat CatalogReader, promos PromotionSource, locker redisclient.Locker, cache *redisclient.Cache, windowDays int) *Service {
	if windowDays <= 0 {
		windowDays = 7
	}
	return &Service{
		repo:       repo,
		catalog:    cat,
		promos:     promos,
		locker:     locker,
		cache:      cache,
		windowDays: windowDays,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type BookRequest struct {
	UserID    uuid.UUID
	DoctorID  uuid.UUID
	ServiceID uuid.UUID
	Date      string
	Time      string
	CreatedBy *uuid.UUID // staff member booking on the patient's behalf
}

// Book validates the request, prices the service through the promotion
// evaluator and reserves the slot. The conflict check and the reserve
// are one atomic conditional insert; the per-slot lock on top keeps
// concurrent retries from hammering the same row.
func (s *Service) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	if err := validateBookRequest(req); err != nil {
		return nil, err
	}

	doctor, err := s.catalog.GetDoctorByID(ctx, req.DoctorID)
	if err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	if !doctor.Available {
		return nil, ErrDoctorUnavailable
	}

	service, err := s.catalog.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("load service: %w", err)
	}

	now := s.now()
	candidates, err := s.promos.ListActiveForService(ctx, req.ServiceID, now)
	if err != nil {
		return nil, fmt.Errorf("load promotions: %w", err)
	}
	finalPrice := promotion.PriceFor(service.PriceCentavos, req.ServiceID, candidates, now)

	var created *Appointment
	err = s.locker.WithSlotLock(ctx, req.DoctorID, req.Date, req.Time, func(lockCtx context.Context) error {
		appt := &Appointment{
			DoctorID:           req.DoctorID,
			UserID:             req.UserID,
			ServiceID:          req.ServiceID,
			Date:               req.Date,
			Time:               req.Time,
			FinalPriceCentavos: finalPrice,
			CreatedBy:          req.CreatedBy,
		}
		var err error
		created, err = s.repo.ReserveAndCreate(lockCtx, appt)
		return err
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrSlotBeingBooked
		}
		return nil, err
	}

	s.invalidateAvailability(ctx, req.DoctorID)

	return created, nil
}

// Availability computes the open slots for the next windowDays days
// starting today. Read-only; cached briefly in Redis.
func (s *Service) Availability(ctx context.Context, doctorID uuid.UUID) ([]DayAvailability, error) {
	if _, err := s.catalog.GetDoctorByID(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("load doctor: %w", err)
	}

	cacheKey := availabilityKey(doctorID)
	var cached []DayAvailability
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	dates := windowDates(s.now(), s.windowDays)
	reserved, err := s.repo.ReservedSlots(ctx, doctorID, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, fmt.Errorf("load reserved slots: %w", err)
	}

	result := make([]DayAvailability, 0, len(dates))
	for _, date := range dates {
		result = append(result, DayAvailability{
			Date:           date,
			AvailableSlots: openSlots(reserved[date]),
		})
	}

	s.cache.Set(ctx, cacheKey, result)

	return result, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetAppointmentByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Appointment, error) {
	return s.repo.ListAppointments(ctx, f)
}

// Complete transitions booked -> completed and writes the patient
// record. Both writes share a transaction in the repository.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.CompleteWithRecord(ctx, id, defaultRecordNotes)
}

// Cancel transitions booked -> cancelled and frees the slot for
// rebooking.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.CancelAndRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx, appt.DoctorID)
	return appt, nil
}

// Delete removes an appointment in any status and frees its slot.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	appt, err := s.repo.GetAppointmentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAndRelease(ctx, id); err != nil {
		return err
	}
	s.invalidateAvailability(ctx, appt.DoctorID)
	return nil
}

// PruneOldSlots drops reservation rows older than today. Called by the
// cleanup worker.
func (s *Service) PruneOldSlots(ctx context.Context) (int64, error) {
	cutoff := s.now().Format(DateLayout)
	return s.repo.PruneSlotsBefore(ctx, cutoff)
}

func (s *Service) invalidateAvailability(ctx context.Context, doctorID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, availabilityKey(doctorID)); err != nil {
		log.Printf("invalidate availability cache for doctor %s: %v", doctorID, err)
	}
}

func availabilityKey(doctorID uuid.UUID) string {
	return "availability:" + doctorID.String()
}

func validateBookRequest(req BookRequest) error {
	if req.UserID == uuid.Nil {
		return domain.ValidationError{Field: "user_id", Msg: "is required"}
	}
	if req.DoctorID == uuid.Nil {
		return domain.ValidationError{Field: "doctor_id", Msg: "is required"}
	}
	if req.ServiceID == uuid.Nil {
		return domain.ValidationError{Field: "service_id", Msg: "is required"}
	}
	if req.Date == "" {
		return domain.ValidationError{Field: "date", Msg: "is required"}
	}
	if _, err := time.Parse(DateLayout, req.Date); err != nil {
		return domain.ValidationError{Field: "date", Msg: "must be formatted YYYY-MM-DD"}
	}
	if req.Time == "" {
		return domain.ValidationError{Field: "time", Msg: "is required"}
	}
	if !ValidSlot(req.Time) {
		return domain.ValidationError{Field: "time", Msg: fmt.Sprintf("%q is not a bookable slot", req.Time)}
	}
	return nil
}
