package promotion

import (
	"time"

	"github.com/google/uuid"
)

// Promotion is a time-bounded percentage discount scoped to a set of
// services.
type Promotion struct {
	ID          uuid.UUID
	Title       string
	DiscountPct float64 // 0-100, schema enforced
	StartsAt    time.Time
	EndsAt      time.Time
	Active      bool
	ServiceIDs  []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppliesTo reports whether the promotion discounts the given service
// at the given instant.
func (p Promotion) AppliesTo(serviceID uuid.UUID, now time.Time) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.StartsAt) || now.After(p.EndsAt) {
		return false
	}
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
