package promotion

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promo(serviceID uuid.UUID, pct float64, createdAt time.Time) Promotion {
	now := time.Now()
	return Promotion{
		ID:          uuid.New(),
		Title:       "test promo",
		DiscountPct: pct,
		StartsAt:    now.Add(-time.Hour),
		EndsAt:      now.Add(time.Hour),
		Active:      true,
		ServiceIDs:  []uuid.UUID{serviceID},
		CreatedAt:   createdAt,
	}
}

func TestPriceForAppliesDiscount(t *testing.T) {
	serviceID := uuid.New()
	now := time.Now()

	// A 500.00 cleaning with a 20% promo books at 400.00.
	promos := []Promotion{promo(serviceID, 20, now)}
	assert.Equal(t, int64(40000), PriceFor(50000, serviceID, promos, now))
}

func TestPriceForNoCandidates(t *testing.T) {
	serviceID := uuid.New()
	now := time.Now()

	assert.Equal(t, int64(50000), PriceFor(50000, serviceID, nil, now))

	// Promotion scoped to a different service leaves the price alone.
	promos := []Promotion{promo(uuid.New(), 20, now)}
	assert.Equal(t, int64(50000), PriceFor(50000, serviceID, promos, now))
}

func TestBestForPicksHighestDiscount(t *testing.T) {
	serviceID := uuid.New()
	now := time.Now()

	low := promo(serviceID, 10, now.Add(-2*time.Hour))
	high := promo(serviceID, 30, now.Add(-time.Hour))

	best := BestFor(serviceID, []Promotion{low, high}, now)
	require.NotNil(t, best)
	assert.Equal(t, high.ID, best.ID)
}

func TestBestForTieBreaksOnCreatedAt(t *testing.T) {
	serviceID := uuid.New()
	now := time.Now()

	older := promo(serviceID, 20, now.Add(-2*time.Hour))
	newer := promo(serviceID, 20, now.Add(-time.Hour))

	// Order in the slice must not matter.
	best := BestFor(serviceID, []Promotion{newer, older}, now)
	require.NotNil(t, best)
	assert.Equal(t, older.ID, best.ID)

	best = BestFor(serviceID, []Promotion{older, newer}, now)
	require.NotNil(t, best)
	assert.Equal(t, older.ID, best.ID)
}

func TestBestForSkipsInactiveAndOutOfWindow(t *testing.T) {
	serviceID := uuid.New()
	now := time.Now()

	inactive := promo(serviceID, 50, now)
	inactive.Active = false

	expired := promo(serviceID, 50, now)
	expired.StartsAt = now.Add(-48 * time.Hour)
	expired.EndsAt = now.Add(-24 * time.Hour)

	future := promo(serviceID, 50, now)
	future.StartsAt = now.Add(24 * time.Hour)
	future.EndsAt = now.Add(48 * time.Hour)

	assert.Nil(t, BestFor(serviceID, []Promotion{inactive, expired, future}, now))
}

func TestAppliesToWindowBoundsInclusive(t *testing.T) {
	serviceID := uuid.New()
	p := promo(serviceID, 10, time.Now())

	assert.True(t, p.AppliesTo(serviceID, p.StartsAt))
	assert.True(t, p.AppliesTo(serviceID, p.EndsAt))
	assert.False(t, p.AppliesTo(serviceID, p.StartsAt.Add(-time.Second)))
	assert.False(t, p.AppliesTo(serviceID, p.EndsAt.Add(time.Second)))
}

func TestDiscountedRounding(t *testing.T) {
	assert.Equal(t, int64(40000), Discounted(50000, 20))
	assert.Equal(t, int64(0), Discounted(50000, 100))
	assert.Equal(t, int64(50000), Discounted(50000, 0))
	// 33.333% of 10000 leaves 6666.7, rounds to 6667.
	assert.Equal(t, int64(6667), Discounted(10000, 33.333))
}
