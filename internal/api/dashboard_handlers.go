package api

import (
	"net/http"
	"time"

	"github.com/brightsmile/clinic-backend/internal/dashboard"
)

func dashboardSummaryHandler(svc *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summary(r.Context(), time.Now())
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func dashboardDoctorLoadHandler(svc *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		load, err := svc.UpcomingByDoctor(r.Context(), time.Now())
		if err != nil {
			handleDomainError(w, err)
			return
		}
		if load == nil {
			load = []dashboard.DoctorLoad{}
		}
		writeJSON(w, http.StatusOK, load)
	}
}
