package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/closetcompare/backend/internal/domain"
)

const maxAttempts = 3

// ClientConfig holds the settings for a retailer feed client
type ClientConfig struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client fetches product listings from the retailer feed API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
	backoff     func(attempt int) time.Duration
}

// NewClient creates a new retailer feed client
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:      logger.With().Str("component", "catalog-client").Logger(),
		backoff:     exponentialBackoff,
	}
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// retryable reports whether a non-200 status is worth another attempt
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "closetcompare/1.0")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogAPIFailure, err)
	}

	return resp, nil
}

// ListProducts fetches every listing a retailer publishes
func (c *Client) ListProducts(ctx context.Context, retailer string) ([]domain.Listing, error) {
	if retailer == "" {
		return nil, domain.ErrInvalidRequest
	}

	reqURL := fmt.Sprintf("%s/v1/retailers/%s/products", c.baseURL, url.PathEscape(retailer))
	log := c.logger.With().Str("retailer", retailer).Logger()

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Int("attempt", attempt).Msg("feed request failed")
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: reading body: %v", domain.ErrCatalogAPIFailure, readErr)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt).Msg("feed returned error status")
			if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: retailer %s", domain.ErrProductNotFound, retailer)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogAPIFailure, resp.StatusCode)
			if resp.StatusCode == http.StatusTooManyRequests {
				lastErr = fmt.Errorf("%w: retailer %s", domain.ErrRateLimited, retailer)
			}
			if !retryable(resp.StatusCode) {
				return nil, lastErr
			}
			continue
		}

		var listings domain.ListingsResponse
		if err := json.Unmarshal(body, &listings); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}

		log.Debug().Int("products", len(listings.Products)).Msg("feed fetched")
		return listings.Products, nil
	}

	log.Error().Err(lastErr).Msg("all feed attempts failed")
	return nil, lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
