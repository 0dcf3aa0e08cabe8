package alphavantage_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forex-scanner/internal/clients/alphavantage"
	"forex-scanner/internal/models"
)

func validQuote() map[string]string {
	return map[string]string{
		"1. From_Currency Code": "USD",
		"2. From_Currency Name": "United States Dollar",
		"3. To_Currency Code":   "EUR",
		"4. To_Currency Name":   "Euro",
		"5. Exchange Rate":      "0.92340000",
		"6. Last Refreshed":     "2025-01-15 10:30:00",
		"7. Time Zone":          "UTC",
		"8. Bid Price":          "0.92330000",
		"9. Ask Price":          "0.92350000",
	}
}

func quoteServer(t *testing.T, quote map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(map[string]any{
			"Realtime Currency Exchange Rate": quote,
		})
		require.NoError(t, err)
	}))
}

func TestClient_ExchangeRate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CURRENCY_EXCHANGE_RATE", r.URL.Query().Get("function"))
		assert.Equal(t, "USD", r.URL.Query().Get("from_currency"))
		assert.Equal(t, "EUR", r.URL.Query().Get("to_currency"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("apikey"))

		err := json.NewEncoder(w).Encode(map[string]any{
			"Realtime Currency Exchange Rate": validQuote(),
		})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	record, err := client.ExchangeRate(context.Background(), "usd", "eur")

	require.NoError(t, err)
	assert.Equal(t, "USD", record.FromCode)
	assert.Equal(t, "United States Dollar", record.FromName)
	assert.Equal(t, "EUR", record.ToCode)
	assert.Equal(t, "Euro", record.ToName)
	assert.True(t, record.Rate.Equal(decimal.RequireFromString("0.9234")))
	assert.True(t, record.Bid.Equal(decimal.RequireFromString("0.9233")))
	assert.True(t, record.Ask.Equal(decimal.RequireFromString("0.9235")))
	assert.Equal(t, "2025-01-15 10:30:00", record.LastRefreshed)
	assert.Equal(t, "UTC", record.Timezone)
}

func TestClient_ExchangeRate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewEncoder(w).Encode(map[string]any{
			"Error Message": "Invalid API call. Please retry or visit the documentation.",
		})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureAPIError, fetchErr.Kind)
	assert.Contains(t, err.Error(), "Invalid API call")
}

func TestClient_ExchangeRate_EmptyErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{"Error Message": ""}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureAPIError, fetchErr.Kind)
}

func TestClient_ExchangeRate_RateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewEncoder(w).Encode(map[string]any{
			"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 25 requests per day.",
		})
		require.NoError(t, err)
	}))
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureRateLimit, fetchErr.Kind)
	assert.Contains(t, err.Error(), "call frequency")
}

func TestClient_ExchangeRate_MissingQuoteObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`{}`))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureMalformed, fetchErr.Kind)
	assert.Contains(t, err.Error(), "no realtime exchange rate")
}

func TestClient_ExchangeRate_UndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte("<html>maintenance</html>"))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureMalformed, fetchErr.Kind)
}

func TestClient_ExchangeRate_MissingField(t *testing.T) {
	quote := validQuote()
	delete(quote, "5. Exchange Rate")
	server := quoteServer(t, quote)
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureParse, fetchErr.Kind)
	assert.Contains(t, err.Error(), "missing exchange rate")
}

func TestClient_ExchangeRate_NonNumericRate(t *testing.T) {
	quote := validQuote()
	quote["8. Bid Price"] = "not-a-number"
	server := quoteServer(t, quote)
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureParse, fetchErr.Kind)
	assert.Contains(t, err.Error(), "bid price")
}

func TestClient_ExchangeRate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, err := w.Write([]byte("internal server error"))
		require.NoError(t, err)
	}))
	defer server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureNetwork, fetchErr.Kind)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "internal server error")
}

func TestClient_ExchangeRate_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := alphavantage.New("test-api-key")
	client.BaseURL = server.URL

	_, err := client.ExchangeRate(context.Background(), "USD", "EUR")

	require.Error(t, err)
	fetchErr, ok := models.AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, models.FailureNetwork, fetchErr.Kind)
}
