package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"forex-scanner/internal/clients/alphavantage"
	"forex-scanner/internal/logger"
	"forex-scanner/internal/models"
	"forex-scanner/internal/service/arbitrage"
	"forex-scanner/internal/service/report"
	"forex-scanner/internal/service/scanner"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logg := logger.New(cfg.LogLevel)

	pairNames := make([]string, 0, len(cfg.Pairs))
	for _, p := range cfg.Pairs {
		pairNames = append(pairNames, p.String())
	}
	logg.WithFields(logrus.Fields{
		"pairs": strings.Join(pairNames, ","),
		"delay": cfg.Delay.String(),
	}).Info("scan configuration")
	logg.Info("free Alpha Vantage keys allow 25 requests per day")

	client := alphavantage.New(cfg.APIKey)
	scan := scanner.New(client, logg, cfg.Delay)
	finder := arbitrage.New(cfg.SpreadThreshold)

	if cfg.Schedule == "" {
		return scanOnce(ctx, logg, scan, finder, cfg.Pairs)
	}
	return scanOnSchedule(ctx, logg, scan, finder, cfg)
}

// scanOnce runs a single scan and prints the table and the arbitrage
// report. On interrupt the partial results are discarded, not printed.
func scanOnce(ctx context.Context, logg *logrus.Logger, scan *scanner.Service, finder *arbitrage.Service, pairs []models.CurrencyPair) error {
	results, err := scan.Scan(ctx, pairs)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logg.Info("scan interrupted")
			return nil
		}
		return err
	}

	fmt.Print(report.Render(results))
	fmt.Print(report.RenderFindings(finder.FindAnomalies(results)))
	return nil
}

// scanOnSchedule scans immediately, then again at every firing of the
// cron expression until interrupted.
func scanOnSchedule(ctx context.Context, logg *logrus.Logger, scan *scanner.Service, finder *arbitrage.Service, cfg Config) error {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(cfg.Schedule)
	if err != nil {
		return fmt.Errorf("parse SCAN_SCHEDULE %q: %w", cfg.Schedule, err)
	}
	// cron reports a spec with no future activation (e.g. Feb 30) by
	// returning the zero time from Next.
	if schedule.Next(time.Now()).IsZero() {
		return fmt.Errorf("SCAN_SCHEDULE %q never fires", cfg.Schedule)
	}

	for {
		if err := scanOnce(ctx, logg, scan, finder, cfg.Pairs); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		next := schedule.Next(time.Now())
		if next.IsZero() {
			logg.Warn("schedule has no further activations, stopping")
			return nil
		}
		logg.WithField("next_run", next.Format(time.RFC3339)).Info("waiting for next scheduled scan")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}
