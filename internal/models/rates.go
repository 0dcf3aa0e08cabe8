package models

import "github.com/shopspring/decimal"

// RateRecord is one successfully fetched quote for a currency pair.
// Every field comes from a fully parsed upstream response; records are
// immutable once built and owned by the scan results that hold them.
type RateRecord struct {
	FromCode string
	FromName string
	ToCode   string
	ToName   string

	Rate decimal.Decimal
	Bid  decimal.Decimal
	Ask  decimal.Decimal

	// LastRefreshed and Timezone are the upstream strings, kept as
	// display values and never parsed.
	LastRefreshed string
	Timezone      string
}

// ScanResults maps pair keys ("USD/EUR") to rate records. Insertion
// order is significant: the table display and the arbitrage pass both
// follow it.
type ScanResults struct {
	keys    []string
	records map[string]RateRecord
}

func NewScanResults() *ScanResults {
	return &ScanResults{records: make(map[string]RateRecord)}
}

// Add inserts or overwrites the record for key. A re-added key keeps
// its original position.
func (r *ScanResults) Add(key string, rec RateRecord) {
	if _, ok := r.records[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.records[key] = rec
}

func (r *ScanResults) Get(key string) (RateRecord, bool) {
	rec, ok := r.records[key]
	return rec, ok
}

// Keys returns the pair keys in insertion order. The slice is a copy.
func (r *ScanResults) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *ScanResults) Len() int { return len(r.keys) }
