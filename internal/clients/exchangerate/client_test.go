package exchangerate_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/horizons-voyages/cotation-api/internal/clients/exchangerate"
	"github.com/horizons-voyages/cotation-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRateServer(t *testing.T, calls *atomic.Int32, failAfter int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if failAfter > 0 && n > failAfter {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "/latest/EUR", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"EUR","rates":{"THB":38.9,"USD":1.08}}`))
	}))
}

func newRateClient(baseURL string, cacheTTL int) *exchangerate.Client {
	return exchangerate.NewClient(&config.ExchangeRatesConfig{
		BaseURL:  baseURL,
		Timeout:  5,
		CacheTTL: cacheTTL,
	}, zap.NewNop())
}

func TestClient_GetRates(t *testing.T) {
	var calls atomic.Int32
	server := newRateServer(t, &calls, 0)
	defer server.Close()

	client := newRateClient(server.URL, 3600)

	rates, err := client.GetRates(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, "EUR", rates.Base)
	assert.InDelta(t, 38.9, rates.Rates["THB"], 0.0001)
	assert.False(t, rates.FetchedAt.IsZero())

	// Second call is served from cache
	_, err = client.GetRates(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_GetRates_StaleFallback(t *testing.T) {
	var calls atomic.Int32
	server := newRateServer(t, &calls, 1)
	defer server.Close()

	// Zero TTL: every hit refetches, so the second call sees the API failure
	client := newRateClient(server.URL, 0)

	fresh, err := client.GetRates(context.Background(), "EUR")
	require.NoError(t, err)

	stale, err := client.GetRates(context.Background(), "EUR")
	require.NoError(t, err, "stale cache beats a failing API")
	assert.Equal(t, fresh.FetchedAt, stale.FetchedAt)
}

func TestClient_GetRates_FailureWithoutCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newRateClient(server.URL, 3600)

	_, err := client.GetRates(context.Background(), "EUR")
	assert.Error(t, err)
}

func TestClient_GetRate(t *testing.T) {
	var calls atomic.Int32
	server := newRateServer(t, &calls, 0)
	defer server.Close()

	client := newRateClient(server.URL, 3600)

	t.Run("same currency is 1", func(t *testing.T) {
		rate, err := client.GetRate(context.Background(), "EUR", "EUR")
		require.NoError(t, err)
		assert.Equal(t, 1.0, rate)
		assert.Zero(t, calls.Load(), "no API call needed")
	})

	t.Run("known pair", func(t *testing.T) {
		rate, err := client.GetRate(context.Background(), "EUR", "USD")
		require.NoError(t, err)
		assert.InDelta(t, 1.08, rate, 0.0001)
	})

	t.Run("unknown target currency", func(t *testing.T) {
		_, err := client.GetRate(context.Background(), "EUR", "XXX")
		assert.Error(t, err)
	})
}
