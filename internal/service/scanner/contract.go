package scanner

import (
	"context"

	"forex-scanner/internal/models"
)

// RateFetcher returns the realtime quote for one currency pair.
type RateFetcher interface {
	ExchangeRate(ctx context.Context, from, to string) (models.RateRecord, error)
}
