package api

import (
	"errors"
	"net/http"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/catalog"
	"github.com/brightsmile/clinic-backend/internal/domain"
	"github.com/brightsmile/clinic-backend/internal/payments"
	"github.com/brightsmile/clinic-backend/internal/promotion"
	"github.com/brightsmile/clinic-backend/internal/records"
	redisclient "github.com/brightsmile/clinic-backend/internal/redis"
	"github.com/brightsmile/clinic-backend/internal/users"
)

// handleDomainError maps service errors onto HTTP responses. NotFound
// answers never echo more than the id the caller already sent.
func handleDomainError(w http.ResponseWriter, err error) {
	var vErr domain.ValidationError

	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, "validation_error", vErr.Error())

	case errors.Is(err, catalog.ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, "doctor_not_found", "doctor not found")
	case errors.Is(err, catalog.ErrServiceNotFound):
		writeError(w, http.StatusNotFound, "service_not_found", "service not found")
	case errors.Is(err, promotion.ErrPromotionNotFound):
		writeError(w, http.StatusNotFound, "promotion_not_found", "promotion not found")
	case errors.Is(err, booking.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", "appointment not found")
	case errors.Is(err, records.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "record_not_found", "patient record not found")
	case errors.Is(err, records.ErrPrescriptionNotFound):
		writeError(w, http.StatusNotFound, "prescription_not_found", "prescription not found")
	case errors.Is(err, payments.ErrProofNotFound):
		writeError(w, http.StatusNotFound, "payment_proof_not_found", "payment proof not found")
	case errors.Is(err, users.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "user not found")

	case errors.Is(err, booking.ErrSlotTaken):
		writeError(w, http.StatusConflict, "slot_already_booked", err.Error())
	case errors.Is(err, booking.ErrSlotBeingBooked),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "slot_being_booked", "slot is currently being booked, please retry shortly")
	case errors.Is(err, booking.ErrDoctorUnavailable):
		writeError(w, http.StatusConflict, "doctor_unavailable", err.Error())
	case errors.Is(err, booking.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, payments.ErrProofAlreadyReviewed):
		writeError(w, http.StatusConflict, "proof_already_reviewed", err.Error())
	case errors.Is(err, users.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email_taken", err.Error())

	case errors.Is(err, users.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, "bad_credentials", err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
