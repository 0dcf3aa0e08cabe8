package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"forex-scanner/internal/models"
)

// defaultPairs is scanned when SCAN_PAIRS is not set.
const defaultPairs = "USD/EUR,USD/GBP,USD/JPY,EUR/GBP,GBP/JPY"

type Config struct {
	APIKey string

	Pairs []models.CurrencyPair
	Delay time.Duration

	SpreadThreshold decimal.Decimal

	// Schedule is a five-field cron expression. Empty means scan once
	// and exit.
	Schedule string

	LogLevel string
}

func LoadConfig() (Config, error) {
	if err := godotenv.Overload(); err != nil {
		log.Println(errors.New("Error loading .env file"))
	}

	cfg := Config{
		Delay:           12 * time.Second,
		SpreadThreshold: decimal.RequireFromString("0.01"),
		LogLevel:        "info",
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("ALPHAVANTAGE_API_KEY"))
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("ALPHAVANTAGE_API_KEY is empty, get a free key at https://www.alphavantage.co/support/#api-key")
	}

	pairList := strings.TrimSpace(os.Getenv("SCAN_PAIRS"))
	if pairList == "" {
		pairList = defaultPairs
	}
	pairs, err := models.ParsePairList(pairList)
	if err != nil {
		return Config{}, fmt.Errorf("SCAN_PAIRS: %w", err)
	}
	cfg.Pairs = pairs

	if v := strings.TrimSpace(os.Getenv("SCAN_DELAY_SECONDS")); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 0 {
			return Config{}, fmt.Errorf("SCAN_DELAY_SECONDS must be a non-negative integer, got %q", v)
		}
		cfg.Delay = time.Duration(secs) * time.Second
	}

	if v := strings.TrimSpace(os.Getenv("SPREAD_THRESHOLD")); v != "" {
		threshold, err := decimal.NewFromString(v)
		if err != nil {
			return Config{}, fmt.Errorf("SPREAD_THRESHOLD must be numeric, got %q", v)
		}
		cfg.SpreadThreshold = threshold
	}

	cfg.Schedule = strings.TrimSpace(os.Getenv("SCAN_SCHEDULE"))

	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
