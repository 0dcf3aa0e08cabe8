package report

import (
	"fmt"
	"strings"

	"forex-scanner/internal/models"
	"forex-scanner/internal/service/arbitrage"
)

const lineWidth = 70

var (
	heavyRule = strings.Repeat("=", lineWidth)
	lightRule = strings.Repeat("-", lineWidth)
)

// Render formats fetched rates as a fixed-width table, rows in the
// mapping's insertion order, numeric columns to five decimal places.
// Pure function of results; an empty mapping renders as a notice.
func Render(results *models.ScanResults) string {
	if results.Len() == 0 {
		return "No results to display\n"
	}

	var b strings.Builder
	b.WriteString(heavyRule + "\n")
	b.WriteString("FOREX SCAN RESULTS\n")
	b.WriteString(heavyRule + "\n\n")
	b.WriteString(fmt.Sprintf("%-15s %-12s %-12s %-12s %-20s\n", "PAIR", "RATE", "BID", "ASK", "UPDATED"))
	b.WriteString(lightRule + "\n")

	for _, key := range results.Keys() {
		rec, _ := results.Get(key)
		b.WriteString(fmt.Sprintf("%-15s %-12s %-12s %-12s %-20s\n",
			key,
			rec.Rate.StringFixed(5),
			rec.Bid.StringFixed(5),
			rec.Ask.StringFixed(5),
			rec.LastRefreshed))
	}

	b.WriteString(heavyRule + "\n")
	return b.String()
}

// RenderFindings formats the arbitrage pass outcome, spreads to four
// decimal places.
func RenderFindings(findings []arbitrage.Finding) string {
	var b strings.Builder
	b.WriteString("Arbitrage analysis:\n")
	b.WriteString(lightRule + "\n")

	if len(findings) == 0 {
		b.WriteString("No significant arbitrage opportunities detected\n")
		return b.String()
	}

	b.WriteString("Potential opportunities detected (further analysis required):\n")
	for _, f := range findings {
		b.WriteString(fmt.Sprintf("  - %s x %s  spread %s\n", f.Pair1, f.Pair2, f.Spread.StringFixed(4)))
	}
	return b.String()
}
