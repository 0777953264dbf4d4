package promotion

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brightsmile/clinic-backend/internal/domain"
)

// PromoService handles promotion CRUD. Price evaluation itself lives in
// evaluator.go and takes candidates loaded through this service's repo.
type PromoService struct {
	repo Repository
}

func NewPromoService(repo Repository) *PromoService {
	return &PromoService{repo: repo}
}

func (s *PromoService) Get(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PromoService) List(ctx context.Context) ([]Promotion, error) {
	return s.repo.List(ctx)
}

func (s *PromoService) CandidatesFor(ctx context.Context, serviceID uuid.UUID, now time.Time) ([]Promotion, error) {
	return s.repo.ListActiveForService(ctx, serviceID, now)
}

func (s *PromoService) Create(ctx context.Context, p Promotion) (*Promotion, error) {
	if err := validatePromotion(&p); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &p)
}

func (s *PromoService) Update(ctx context.Context, p Promotion) (*Promotion, error) {
	if err := validatePromotion(&p); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, p.ID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &p)
}

func (s *PromoService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *PromoService) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.repo.DeactivateExpired(ctx, now)
}

func validatePromotion(p *Promotion) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return domain.ValidationError{Field: "title", Msg: "must not be empty"}
	}
	if p.DiscountPct < 0 || p.DiscountPct > 100 {
		return domain.ValidationError{Field: "discount_percentage", Msg: "must be between 0 and 100"}
	}
	if p.EndsAt.Before(p.StartsAt) {
		return domain.ValidationError{Field: "end_date", Msg: "must not be before start_date"}
	}
	if len(p.ServiceIDs) == 0 {
		return domain.ValidationError{Field: "service_ids", Msg: "must name at least one service"}
	}
	return nil
}
