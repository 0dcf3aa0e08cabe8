package arbitrage

import (
	"github.com/shopspring/decimal"

	"forex-scanner/internal/models"
)

// maxFindings caps how many anomalies one pass reports.
const maxFindings = 5

// Finding is one flagged combination: two pair keys whose rate product
// strays from 1.0 by more than the threshold.
type Finding struct {
	Pair1  string
	Pair2  string
	Spread decimal.Decimal
}

type Service struct {
	threshold decimal.Decimal
}

func New(threshold decimal.Decimal) *Service {
	return &Service{threshold: threshold}
}

// FindAnomalies evaluates every ordered pair of distinct entries in
// results, outer then inner in insertion order. Both (A,B) and (B,A)
// are evaluated, so a reciprocal quote shows up twice. This is a
// coarse screen, not triangular arbitrage: the two pairs are not
// required to share a bridge currency. At most maxFindings findings
// are returned, in discovery order.
func (s *Service) FindAnomalies(results *models.ScanResults) []Finding {
	keys := results.Keys()
	one := decimal.NewFromInt(1)

	var findings []Finding
	for _, k1 := range keys {
		r1, _ := results.Get(k1)
		for _, k2 := range keys {
			if k1 == k2 {
				continue
			}
			r2, _ := results.Get(k2)

			spread := r1.Rate.Mul(r2.Rate).Sub(one).Abs()
			if spread.GreaterThan(s.threshold) {
				findings = append(findings, Finding{Pair1: k1, Pair2: k2, Spread: spread})
			}
		}
	}

	if len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}
	return findings
}
