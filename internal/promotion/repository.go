package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPromotionNotFound = errors.New("promotion not found")

// Repository contains all DB interactions needed for promotions.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Promotion, error)
	List(ctx context.Context) ([]Promotion, error)

	// ListActiveForService returns candidates for the evaluator: active
	// promotions covering serviceID whose window contains now.
	ListActiveForService(ctx context.Context, serviceID uuid.UUID, now time.Time) ([]Promotion, error)

	Create(ctx context.Context, p *Promotion) (*Promotion, error)
	Update(ctx context.Context, p *Promotion) (*Promotion, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// DeactivateExpired flips active=false on promotions past their end
	// date. Used by the cleanup worker; returns how many were touched.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
