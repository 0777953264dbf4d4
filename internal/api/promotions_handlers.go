package api

import (
	"encoding/json"
	"net/http"

	"github.com/brightsmile/clinic-backend/internal/promotion"
)

func listPromotionsHandler(svc *promotion.PromoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		promos, err := svc.List(r.Context())
		if err != nil {
			handleDomainError(w, err)
			return
		}
		out := make([]PromotionResponse, 0, len(promos))
		for i := range promos {
			out = append(out, toPromotionResponse(&promos[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getPromotionHandler(svc *promotion.PromoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_promotion_id", "id must be a valid UUID")
			return
		}
		p, err := svc.Get(r.Context(), id)
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPromotionResponse(p))
	}
}

func createPromotionHandler(svc *promotion.PromoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PromotionPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		p, err := svc.Create(r.Context(), promotion.Promotion{
			Title:       req.Title,
			DiscountPct: req.DiscountPct,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
			Active:      req.Active,
			ServiceIDs:  req.ServiceIDs,
		})
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPromotionResponse(p))
	}
}

func updatePromotionHandler(svc *promotion.PromoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_promotion_id", "id must be a valid UUID")
			return
		}
		var req PromotionPayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		p, err := svc.Update(r.Context(), promotion.Promotion{
			ID:          id,
			Title:       req.Title,
			DiscountPct: req.DiscountPct,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
			Active:      req.Active,
			ServiceIDs:  req.ServiceIDs,
		})
		if err != nil {
			handleDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPromotionResponse(p))
	}
}

func deletePromotionHandler(svc *promotion.PromoService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseIDParam(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_promotion_id", "id must be a valid UUID")
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			handleDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
