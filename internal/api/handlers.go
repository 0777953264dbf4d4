package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brightsmile/clinic-backend/internal/booking"
	"github.com/brightsmile/clinic-backend/internal/domain"
	"github.com/brightsmile/clinic-backend/internal/observability/metrics"
	"github.com/brightsmile/clinic-backend/internal/users"
)

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

func createAppointmentHandler(svc *booking.Service, m *metrics.APIMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		caller, _ := GetIdentity(r.Context())

		doctorID, err := uuid.Parse(req.DoctorID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctor_id must be a valid UUID")
			return
		}
		serviceID, err := uuid.Parse(req.ServiceID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_service_id", "service_id must be a valid UUID")
			return
		}

		bookReq := booking.BookRequest{
			UserID:    caller.UserID,
			DoctorID:  doctorID,
			ServiceID: serviceID,
			Date:      req.Date,
			Time:      req.Time,
		}

		// Staff may book on a patient's behalf; the override is recorded.
		if req.UserID != "" {
			if !caller.Role.Staff() {
				writeError(w, http.StatusForbidden, "forbidden", "only staff may book for another patient")
				return
			}
			patientID, err := uuid.Parse(req.UserID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a valid UUID")
				return
			}
			createdBy := caller.UserID
			bookReq.UserID = patientID
			bookReq.CreatedBy = &createdBy
		}

		appt, err := svc.Book(r.Context(), bookReq)
		if err != nil {
			m.ObserveBooking(bookingOutcome(err))
			handleDomainError(w, err)
			return
		}

		m.ObserveBooking("created")
		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func bookingOutcome(err error) string {
	switch {
	case domain.IsValidation(err):
		return "rejected"
	default:
		return "conflict_or_error"
	}
}

func availabilityHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctorID, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_doctor_id", "id must be a valid UUID")
			return
		}

		days, err := svc.Availability(r.Context(), doctorID)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, days)
	}
}

func listAppointmentsHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, _ := GetIdentity(r.Context())

		var f booking.Filter

		// Patients only ever see their own appointments.
		if !caller.Role.Staff() {
			userID := caller.UserID
			f.UserID = &userID
		} else {
			if v := r.URL.Query().Get("user_id"); v != "" {
				id, err := uuid.Parse(v)
				if err != nil {
					writeError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a valid UUID")
					return
				}
				f.UserID = &id
			}
			if v := r.URL.Query().Get("doctor_id"); v != "" {
				id, err := uuid.Parse(v)
				if err != nil {
					writeError(w, http.StatusBadRequest, "invalid_doctor_id", "doctor_id must be a valid UUID")
					return
				}
				f.DoctorID = &id
			}
		}

		if v := r.URL.Query().Get("status"); v != "" {
			status := booking.AppointmentStatus(v)
			f.Status = &status
		}

		appts, err := svc.List(r.Context(), f)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		out := make([]AppointmentResponse, 0, len(appts))
		for i := range appts {
			out = append(out, toAppointmentResponse(&appts[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.Get(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		caller, _ := GetIdentity(r.Context())
		if !caller.Role.Staff() && appt.UserID != caller.UserID {
			writeError(w, http.StatusNotFound, "appointment_not_found", "appointment not found")
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func completeAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		appt, err := svc.Complete(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func cancelAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		caller, _ := GetIdentity(r.Context())

		// Owning patient or admin only.
		if caller.Role != users.RoleAdmin {
			appt, err := svc.Get(r.Context(), id)
			if err != nil {
				handleDomainError(w, err)
				return
			}
			if appt.UserID != caller.UserID {
				writeError(w, http.StatusForbidden, "forbidden", "only the owning patient or an admin may cancel")
				return
			}
		}

		appt, err := svc.Cancel(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func deleteAppointmentHandler(svc *booking.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			handleDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
