// Package exchangerate provides currency exchange rate fetching and caching.
// The back-office uses it to show agents the current rates next to a
// cotation; stored snapshots keep the rates the engine priced with.
package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/horizons-voyages/cotation-api/internal/config"
	"go.uber.org/zap"
)

// Rates holds the conversion table for one base currency
type Rates struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// Client for open.er-api.com
type Client struct {
	baseURL  string
	client   *http.Client
	logger   *zap.Logger
	cacheTTL time.Duration

	mu    sync.Mutex
	cache map[string]Rates
}

// NewClient creates a new exchange rate client
func NewClient(cfg *config.ExchangeRatesConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		client:   &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:   logger.With(zap.String("client", "exchange-rate-api")),
		cacheTTL: cfg.CacheTTLDuration(),
		cache:    make(map[string]Rates),
	}
}

// GetRates fetches the conversion table for a base currency, with cache.
// If the API fails, stale cached data is returned if available (stale data
// beats no data).
func (c *Client) GetRates(ctx context.Context, base string) (Rates, error) {
	if cached, ok := c.cachedRates(base, false); ok {
		c.logger.Debug("Cache hit", zap.String("base", base))
		return cached, nil
	}

	url := fmt.Sprintf("%s/latest/%s", c.baseURL, base)
	c.logger.Debug("Fetching rates", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Rates{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// API failed - fall back to stale cached data
		if stale, ok := c.cachedRates(base, true); ok {
			c.logger.Warn("API failed, using stale cached rates",
				zap.Error(err),
				zap.String("base", base),
			)
			return stale, nil
		}
		return Rates{}, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if stale, ok := c.cachedRates(base, true); ok {
			c.logger.Warn("API error, using stale cached rates",
				zap.Int("status", resp.StatusCode),
				zap.String("base", base),
			)
			return stale, nil
		}
		return Rates{}, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var result struct {
		BaseCode string             `json:"base_code"`
		Rates    map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if stale, ok := c.cachedRates(base, true); ok {
			c.logger.Warn("Failed to parse API response, using stale cached rates",
				zap.Error(err),
				zap.String("base", base),
			)
			return stale, nil
		}
		return Rates{}, fmt.Errorf("failed to parse response: %w", err)
	}

	rates := Rates{
		Base:      base,
		Rates:     result.Rates,
		FetchedAt: time.Now().UTC(),
	}

	c.mu.Lock()
	c.cache[base] = rates
	c.mu.Unlock()

	c.logger.Info("Fetched rates",
		zap.String("base", base),
		zap.Int("count", len(rates.Rates)),
	)

	return rates, nil
}

// GetRate fetches a single conversion rate
func (c *Client) GetRate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	rates, err := c.GetRates(ctx, from)
	if err != nil {
		return 0, err
	}

	rate, ok := rates.Rates[to]
	if !ok {
		return 0, fmt.Errorf("rate not found for %s->%s", from, to)
	}
	return rate, nil
}

// cachedRates returns the cached table for a base currency. When allowStale
// is false, entries older than the TTL are ignored.
func (c *Client) cachedRates(base string, allowStale bool) (Rates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cached, ok := c.cache[base]
	if !ok {
		return Rates{}, false
	}
	if !allowStale && time.Since(cached.FetchedAt) > c.cacheTTL {
		return Rates{}, false
	}
	return cached, true
}
