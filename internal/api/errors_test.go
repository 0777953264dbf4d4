package api

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/catalog"
	"github.com/brightsmile/clinic-backend/internal/domain"
	"github.com/brightsmile/clinic-backend/internal/payments"
	"github.com/brightsmile/clinic-backend/internal/users"
)

func TestHandleDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", domain.ValidationError{Field: "date", Msg: "must be formatted YYYY-MM-DD"}, 400, "validation_error"},
		{"doctor not found", catalog.ErrDoctorNotFound, 404, "doctor_not_found"},
		{"appointment not found", booking.ErrAppointmentNotFound, 404, "appointment_not_found"},
		{"wrapped not found", fmt.Errorf("load doctor: %w", catalog.ErrDoctorNotFound), 404, "doctor_not_found"},
		{"slot taken", booking.ErrSlotTaken, 409, "slot_already_booked"},
		{"slot being booked", booking.ErrSlotBeingBooked, 409, "slot_being_booked"},
		{"doctor unavailable", booking.ErrDoctorUnavailable, 409, "doctor_unavailable"},
		{"invalid transition", booking.ErrInvalidTransition, 409, "invalid_status_transition"},
		{"proof reviewed", payments.ErrProofAlreadyReviewed, 409, "proof_already_reviewed"},
		{"email taken", users.ErrEmailTaken, 409, "email_taken"},
		{"bad credentials", users.ErrBadCredentials, 401, "bad_credentials"},
		{"unknown error", fmt.Errorf("pq: connection refused"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleDomainError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body.Error)
		})
	}
}

func TestInternalErrorsDoNotLeakDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	handleDomainError(rec, fmt.Errorf("dial tcp 10.0.0.5:5432: connect: connection refused"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.NotContains(t, body.Details, "10.0.0.5")
	assert.NotContains(t, body.Details, "5432")
}
