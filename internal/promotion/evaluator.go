package promotion

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// BestFor picks the promotion to apply for a service at a given
// instant. When several promotions overlap, the highest discount wins;
// equal discounts fall back to the earliest-created promotion so the
// choice stays deterministic. Returns nil when nothing applies.
func BestFor(serviceID uuid.UUID, promotions []Promotion, now time.Time) *Promotion {
	var best *Promotion
	for i := range promotions {
		p := &promotions[i]
		if !p.AppliesTo(serviceID, now) {
			continue
		}
		if best == nil ||
			p.DiscountPct > best.DiscountPct ||
			(p.DiscountPct == best.DiscountPct && p.CreatedAt.Before(best.CreatedAt)) {
			best = p
		}
	}
	return best
}

// PriceFor returns the price in centavos after applying the best
// matching promotion, or the list price unchanged when none applies.
// Pure function of its inputs.
func PriceFor(priceCentavos int64, serviceID uuid.UUID, promotions []Promotion, now time.Time) int64 {
	best := BestFor(serviceID, promotions, now)
	if best == nil {
		return priceCentavos
	}
	return Discounted(priceCentavos, best.DiscountPct)
}

// Discounted applies a percentage once, rounding half away from zero.
// A 100% discount yields zero; the 0-100 schema bound keeps the result
// non-negative.
func Discounted(priceCentavos int64, pct float64) int64 {
	return int64(math.Round(float64(priceCentavos) * (100 - pct) / 100))
}
