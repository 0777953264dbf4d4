package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/catalog"
	"github.com/brightsmile/clinic-backend/internal/payments"
	"github.com/brightsmile/clinic-backend/internal/promotion"
	"github.com/brightsmile/clinic-backend/internal/records"
	"github.com/brightsmile/clinic-backend/internal/users"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Auth

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

type UpsertUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

// Catalog

type ServicePayload struct {
	Name          string `json:"name"`
	PriceCentavos int64  `json:"price_centavos"`
	Duration      string `json:"duration"`
}

type ServiceResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PriceCentavos int64     `json:"price_centavos"`
	Duration      string    `json:"duration"`
}

func toServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:            s.ID,
		Name:          s.Name,
		PriceCentavos: s.PriceCentavos,
		Duration:      s.Duration,
	}
}

type DoctorPayload struct {
	Name        string `json:"name"`
	Credentials string `json:"credentials"`
	FeeCentavos int64  `json:"fee_centavos"`
	Available   bool   `json:"available"`
}

type DoctorResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Credentials string    `json:"credentials"`
	FeeCentavos int64     `json:"fee_centavos"`
	Available   bool      `json:"available"`
}

func toDoctorResponse(d *catalog.Doctor) DoctorResponse {
	return DoctorResponse{
		ID:          d.ID,
		Name:        d.Name,
		Credentials: d.Credentials,
		FeeCentavos: d.FeeCentavos,
		Available:   d.Available,
	}
}

// Promotions

type PromotionPayload struct {
	Title       string      `json:"title"`
	DiscountPct float64     `json:"discount_percentage"`
	StartsAt    time.Time   `json:"start_date"`
	EndsAt      time.Time   `json:"end_date"`
	Active      bool        `json:"is_active"`
	ServiceIDs  []uuid.UUID `json:"service_ids"`
}

type PromotionResponse struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	DiscountPct float64     `json:"discount_percentage"`
	StartsAt    time.Time   `json:"start_date"`
	EndsAt      time.Time   `json:"end_date"`
	Active      bool        `json:"is_active"`
	ServiceIDs  []uuid.UUID `json:"service_ids"`
}

func toPromotionResponse(p *promotion.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:          p.ID,
		Title:       p.Title,
		DiscountPct: p.DiscountPct,
		StartsAt:    p.StartsAt,
		EndsAt:      p.EndsAt,
		Active:      p.Active,
		ServiceIDs:  p.ServiceIDs,
	}
}

// Appointments

type CreateAppointmentRequest struct {
	DoctorID  string `json:"doctor_id"`
	ServiceID string `json:"service_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	// UserID lets staff book on a patient's behalf; patients book for
	// themselves and must leave it empty.
	UserID string `json:"user_id,omitempty"`
}

type AppointmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	DoctorID           uuid.UUID  `json:"doctor_id"`
	UserID             uuid.UUID  `json:"user_id"`
	ServiceID          uuid.UUID  `json:"service_id"`
	Date               string     `json:"date"`
	Time               string     `json:"time"`
	Status             string     `json:"status"`
	FinalPriceCentavos int64      `json:"final_price_centavos"`
	CreatedBy          *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func toAppointmentResponse(a *booking.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                 a.ID,
		DoctorID:           a.DoctorID,
		UserID:             a.UserID,
		ServiceID:          a.ServiceID,
		Date:               a.Date,
		Time:               a.Time,
		Status:             string(a.Status),
		FinalPriceCentavos: a.FinalPriceCentavos,
		CreatedBy:          a.CreatedBy,
		CreatedAt:          a.CreatedAt,
	}
}

// Records & prescriptions

type RecordResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	UserID        uuid.UUID `json:"user_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	Date          string    `json:"date"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

func toRecordResponse(r *records.PatientRecord) RecordResponse {
	return RecordResponse{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		UserID:        r.UserID,
		DoctorID:      r.DoctorID,
		ServiceID:     r.ServiceID,
		Date:          r.Date,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}

type CreatePrescriptionRequest struct {
	AppointmentID string             `json:"appointment_id"`
	Medicines     []records.Medicine `json:"medicines"`
	Notes         string             `json:"notes"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID          `json:"id"`
	AppointmentID uuid.UUID          `json:"appointment_id"`
	UserID        uuid.UUID          `json:"user_id"`
	DoctorID      uuid.UUID          `json:"doctor_id"`
	Medicines     []records.Medicine `json:"medicines"`
	Notes         string             `json:"notes"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toPrescriptionResponse(p *records.Prescription) PrescriptionResponse {
	return PrescriptionResponse{
		ID:            p.ID,
		AppointmentID: p.AppointmentID,
		UserID:        p.UserID,
		DoctorID:      p.DoctorID,
		Medicines:     p.Medicines,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

// Payment proofs

type SubmitProofRequest struct {
	Reference      string `json:"reference"`
	AmountCentavos int64  `json:"amount_centavos"`
}

type ReviewProofRequest struct {
	Notes string `json:"notes"`
}

type ProofResponse struct {
	ID             uuid.UUID  `json:"id"`
	AppointmentID  uuid.UUID  `json:"appointment_id"`
	UserID         uuid.UUID  `json:"user_id"`
	Reference      string     `json:"reference"`
	AmountCentavos int64      `json:"amount_centavos"`
	Status         string     `json:"status"`
	ReviewNotes    string     `json:"review_notes,omitempty"`
	ReviewedBy     *uuid.UUID `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func toProofResponse(p *payments.Proof) ProofResponse {
	return ProofResponse{
		ID:             p.ID,
		AppointmentID:  p.AppointmentID,
		UserID:         p.UserID,
		Reference:      p.Reference,
		AmountCentavos: p.AmountCentavos,
		Status:         string(p.Status),
		ReviewNotes:    p.ReviewNotes,
		ReviewedBy:     p.ReviewedBy,
		ReviewedAt:     p.ReviewedAt,
		CreatedAt:      p.CreatedAt,
	}
}
