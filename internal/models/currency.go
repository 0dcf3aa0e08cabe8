package models

import (
	"fmt"
	"strings"
)

// CurrencyPair is an ordered pair of currency codes, e.g. USD -> EUR.
// Codes are normalized to uppercase and otherwise taken on trust:
// a bogus code surfaces as an upstream API failure, not a local check.
type CurrencyPair struct {
	From string
	To   string
}

func NewCurrencyPair(from, to string) (CurrencyPair, error) {
	p := CurrencyPair{
		From: strings.ToUpper(strings.TrimSpace(from)),
		To:   strings.ToUpper(strings.TrimSpace(to)),
	}
	if p.From == "" || p.To == "" {
		return CurrencyPair{}, fmt.Errorf("currency pair %q/%q: empty code", from, to)
	}
	return p, nil
}

// Key is the display key identifying the pair's slot in scan results.
func (p CurrencyPair) Key() string { return p.From + "/" + p.To }

func (p CurrencyPair) String() string { return p.Key() }

// ParsePairList parses a comma-separated list of FROM/TO items, e.g.
// "USD/EUR, USD/GBP". Blank items are skipped. Duplicates are kept:
// each occurrence is fetched independently during a scan.
func ParsePairList(s string) ([]CurrencyPair, error) {
	items := strings.Split(s, ",")
	pairs := make([]CurrencyPair, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		from, to, ok := strings.Cut(item, "/")
		if !ok {
			return nil, fmt.Errorf("pair %q: want FROM/TO", item)
		}

		p, err := NewCurrencyPair(from, to)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("pair list %q has no pairs", s)
	}
	return pairs, nil
}
