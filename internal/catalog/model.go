package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Service is a bookable treatment from the clinic's price list.
// Prices are in centavos.
type Service struct {
	ID            uuid.UUID
	Name          string
	PriceCentavos int64
	Duration      string // display string, e.g. "30-45 mins"
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Doctor struct {
	ID          uuid.UUID
	Name        string
	Credentials string
	FeeCentavos int64
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
