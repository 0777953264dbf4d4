package api

import (
	"encoding/json"
	"net/http"

	"github.com/brightsmile/clinic-backend/internal/payments"
)

func submitProofHandler(svc *payments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appointmentID, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}
		var req SubmitProofRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		caller, _ := GetIdentity(r.Context())

		p, err := svc.Submit(r.Context(), appointmentID, caller.UserID, req.Reference, req.AmountCentavos)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toProofResponse(p))
	}
}

func listProofsHandler(svc *payments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *payments.ProofStatus
		if v := r.URL.Query().Get("status"); v != "" {
			s := payments.ProofStatus(v)
			status = &s
		}

		proofs, err := svc.List(r.Context(), status)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		out := make([]ProofResponse, 0, len(proofs))
		for i := range proofs {
			out = append(out, toProofResponse(&proofs[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getProofHandler(svc *payments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_proof_id", "id must be a valid UUID")
			return
		}
		p, err := svc.Get(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}

		caller, _ := GetIdentity(r.Context())
		if !caller.Role.Staff() && p.UserID != caller.UserID {
			writeError(w, http.StatusNotFound, "proof_not_found", "payment proof not found")
			return
		}

		writeJSON(w, http.StatusOK, toProofResponse(p))
	}
}

func approveProofHandler(svc *payments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_proof_id", "id must be a valid UUID")
			return
		}
		var req ReviewProofRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		caller, _ := GetIdentity(r.Context())

		p, err := svc.Approve(r.Context(), id, caller.UserID, req.Notes)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProofResponse(p))
	}
}

func rejectProofHandler(svc *payments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_proof_id", "id must be a valid UUID")
			return
		}
		var req ReviewProofRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		caller, _ := GetIdentity(r.Context())

		p, err := svc.Reject(r.Context(), id, caller.UserID, req.Notes)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProofResponse(p))
	}
}
