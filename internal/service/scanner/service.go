package scanner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"forex-scanner/internal/models"
)

type Service struct {
	fetcher RateFetcher
	log     *logrus.Logger
	delay   time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

func New(fetcher RateFetcher, log *logrus.Logger, delay time.Duration) *Service {
	return &Service{
		fetcher: fetcher,
		log:     log,
		delay:   delay,
		sleep:   sleepContext,
	}
}

// Scan fetches every pair in order, one request at a time, pausing for
// the configured delay between consecutive requests. A failed fetch is
// logged and skipped. Cancellation stops the loop and returns the
// partial results collected so far along with the context error.
func (s *Service) Scan(ctx context.Context, pairs []models.CurrencyPair) (*models.ScanResults, error) {
	log := s.log.WithField("run_id", uuid.NewString())
	log.WithField("pairs", len(pairs)).Info("scan started")

	results := models.NewScanResults()
	failed := 0
	for i, pair := range pairs {
		if i > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				return results, err
			}
		}

		log.WithFields(logrus.Fields{
			"pair": pair.Key(),
			"seq":  fmt.Sprintf("%d/%d", i+1, len(pairs)),
		}).Info("fetching exchange rate")

		record, err := s.fetcher.ExchangeRate(ctx, pair.From, pair.To)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			failed++
			kind := "unknown"
			if fetchErr, ok := models.AsFetchError(err); ok {
				kind = fetchErr.Kind.String()
			}
			log.WithFields(logrus.Fields{
				"pair": pair.Key(),
				"kind": kind,
			}).WithError(err).Warn("fetch failed, skipping pair")
			continue
		}

		results.Add(pair.Key(), record)
		log.WithFields(logrus.Fields{
			"pair": pair.Key(),
			"rate": record.Rate.StringFixed(4),
		}).Info("rate received")
	}

	log.WithFields(logrus.Fields{
		"fetched": results.Len(),
		"failed":  failed,
	}).Info("scan finished")

	return results, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
