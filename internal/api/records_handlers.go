package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/brightsmile/clinic-backend/internal/records"
)

// recordsScope resolves which user's records the caller may read.
// Patients are pinned to themselves; staff may pass ?user_id=.
func recordsScope(r *http.Request) (uuid.UUID, bool) {
	caller, _ := GetIdentity(r.Context())
	if !caller.Role.Staff() {
		return caller.UserID, true
	}
	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, false
		}
		return id, true
	}
	return caller.UserID, true
}

func listRecordsHandler(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := recordsScope(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a valid UUID")
			return
		}

		recs, err := svc.ListRecordsByUser(r.Context(), userID)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		out := make([]RecordResponse, 0, len(recs))
		for i := range recs {
			out = append(out, toRecordResponse(&recs[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateRecordNotesHandler(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_record_id", "id must be a valid UUID")
			return
		}
		var req struct {
			Notes string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		rec, err := svc.UpdateRecordNotes(r.Context(), id, req.Notes)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func createPrescriptionHandler(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreatePrescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		appointmentID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "appointment_id must be a valid UUID")
			return
		}
		p, err := svc.CreatePrescription(r.Context(), appointmentID, req.Medicines, req.Notes)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPrescriptionResponse(p))
	}
}

func listPrescriptionsHandler(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := recordsScope(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "user_id must be a valid UUID")
			return
		}

		list, err := svc.ListPrescriptionsByUser(r.Context(), userID)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		out := make([]PrescriptionResponse, 0, len(list))
		for i := range list {
			out = append(out, toPrescriptionResponse(&list[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPrescriptionHandler(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_prescription_id", "id must be a valid UUID")
			return
		}
		p, err := svc.GetPrescription(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		caller, _ := GetIdentity(r.Context())
		if !caller.Role.Staff() && p.UserID != caller.UserID {
			writeError(w, http.StatusNotFound, "prescription_not_found", "prescription not found")
			return
		}

		writeJSON(w, http.StatusOK, toPrescriptionResponse(p))
	}
}

func downloadPrescriptionHandler(svc *records.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_prescription_id", "id must be a valid UUID")
			return
		}

		p, err := svc.GetPrescription(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		caller, _ := GetIdentity(r.Context())
		if !caller.Role.Staff() && p.UserID != caller.UserID {
			writeError(w, http.StatusNotFound, "prescription_not_found", "prescription not found")
			return
		}

		pdf, filename, err := svc.PrescriptionPDF(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	}
}
