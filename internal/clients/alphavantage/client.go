package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"forex-scanner/internal/models"
)

const (
	// queryFunction selects the realtime exchange rate endpoint.
	queryFunction = "CURRENCY_EXCHANGE_RATE"

	requestTimeout = 10 * time.Second
	maxBodyBytes   = 64 << 10
)

// Client fetches realtime exchange rates from the Alpha Vantage query
// endpoint.
type Client struct {
	// BaseURL is exported so tests can point the client at a stub server.
	BaseURL string

	apiKey     string
	httpClient *http.Client
}

func New(apiKey string) *Client {
	return &Client{
		BaseURL: "https://www.alphavantage.co/query",
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// exchangeRateEnvelope is the documented response shape: exactly one
// of an error message, a throttling note, or the quote object.
// Pointer fields keep an absent field distinguishable from an empty
// one; presence alone selects the branch.
type exchangeRateEnvelope struct {
	ErrorMessage *string        `json:"Error Message"`
	Note         *string        `json:"Note"`
	Quote        *realtimeQuote `json:"Realtime Currency Exchange Rate"`
}

// realtimeQuote enumerates the upstream's numbered field keys. All
// values arrive as strings, numerics included.
type realtimeQuote struct {
	FromCode      string `json:"1. From_Currency Code"`
	FromName      string `json:"2. From_Currency Name"`
	ToCode        string `json:"3. To_Currency Code"`
	ToName        string `json:"4. To_Currency Name"`
	Rate          string `json:"5. Exchange Rate"`
	LastRefreshed string `json:"6. Last Refreshed"`
	Timezone      string `json:"7. Time Zone"`
	Bid           string `json:"8. Bid Price"`
	Ask           string `json:"9. Ask Price"`
}

// ExchangeRate fetches the quote for one currency pair. Codes are
// uppercased before use; anything else wrong with them surfaces as an
// upstream failure, not a local precondition. On failure the returned
// error is a *models.FetchError carrying the classification; the
// client itself performs no retries and no logging.
func (c *Client) ExchangeRate(ctx context.Context, from, to string) (models.RateRecord, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return models.RateRecord{}, models.NewFetchError(models.FailureNetwork, "parse base url", err)
	}

	q := url.Values{}
	q.Set("function", queryFunction)
	q.Set("from_currency", strings.ToUpper(strings.TrimSpace(from)))
	q.Set("to_currency", strings.ToUpper(strings.TrimSpace(to)))
	q.Set("apikey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.RateRecord{}, models.NewFetchError(models.FailureNetwork, "new request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.RateRecord{}, models.NewFetchError(models.FailureNetwork, "do request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.RateRecord{}, models.NewFetchError(models.FailureNetwork, "read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.RateRecord{}, models.NewFetchError(models.FailureNetwork,
			fmt.Sprintf("alphavantage http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var envelope exchangeRateEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return models.RateRecord{}, models.NewFetchError(models.FailureMalformed, "unmarshal response", err)
	}

	// Errors and throttling both arrive inside a 200 body.
	if envelope.ErrorMessage != nil {
		return models.RateRecord{}, models.NewFetchError(models.FailureAPIError, *envelope.ErrorMessage, nil)
	}
	if envelope.Note != nil {
		return models.RateRecord{}, models.NewFetchError(models.FailureRateLimit, *envelope.Note, nil)
	}
	if envelope.Quote == nil {
		return models.RateRecord{}, models.NewFetchError(models.FailureMalformed,
			"response has no realtime exchange rate object", nil)
	}

	return envelope.Quote.toRecord()
}

func (q *realtimeQuote) toRecord() (models.RateRecord, error) {
	required := []struct {
		name  string
		value string
	}{
		{"from currency code", q.FromCode},
		{"from currency name", q.FromName},
		{"to currency code", q.ToCode},
		{"to currency name", q.ToName},
		{"exchange rate", q.Rate},
		{"last refreshed", q.LastRefreshed},
		{"time zone", q.Timezone},
		{"bid price", q.Bid},
		{"ask price", q.Ask},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return models.RateRecord{}, models.NewFetchError(models.FailureParse,
				fmt.Sprintf("quote is missing %s", f.name), nil)
		}
	}

	rate, err := parseDecimal("exchange rate", q.Rate)
	if err != nil {
		return models.RateRecord{}, err
	}
	bid, err := parseDecimal("bid price", q.Bid)
	if err != nil {
		return models.RateRecord{}, err
	}
	ask, err := parseDecimal("ask price", q.Ask)
	if err != nil {
		return models.RateRecord{}, err
	}

	return models.RateRecord{
		FromCode:      strings.ToUpper(strings.TrimSpace(q.FromCode)),
		FromName:      strings.TrimSpace(q.FromName),
		ToCode:        strings.ToUpper(strings.TrimSpace(q.ToCode)),
		ToName:        strings.TrimSpace(q.ToName),
		Rate:          rate,
		Bid:           bid,
		Ask:           ask,
		LastRefreshed: strings.TrimSpace(q.LastRefreshed),
		Timezone:      strings.TrimSpace(q.Timezone),
	}, nil
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, models.NewFetchError(models.FailureParse,
			fmt.Sprintf("quote %s %q is not numeric", name, s), err)
	}
	return d, nil
}
