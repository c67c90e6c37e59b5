package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/closetcompare/backend/internal/domain"
)

func newTestClient(baseURL string) *Client {
	client := NewClient(ClientConfig{
		APIKey:            "test-api-key",
		BaseURL:           baseURL,
		RequestsPerSecond: 1000,
		Burst:             10,
	}, zerolog.Nop())
	client.backoff = func(int) time.Duration { return time.Millisecond }
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: "k", BaseURL: "https://feed.example.com"}, zerolog.Nop())

	assert.Equal(t, "k", client.apiKey)
	assert.Equal(t, "https://feed.example.com", client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
	assert.Equal(t, rate.Limit(2), client.rateLimiter.Limit())
	assert.Equal(t, 5, client.rateLimiter.Burst())
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
		})
	}
}

func TestListProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/retailers/zara/products", r.URL.Path)
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))

		response := domain.ListingsResponse{
			Retailer: "zara",
			Products: []domain.Listing{
				{SKU: "123", Title: "Linen Shirt", Brand: "Zara", Category: "Tops", Price: 29.9},
			},
			TotalHits: 1,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	listings, err := newTestClient(server.URL).ListProducts(context.Background(), "zara")

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "123", listings[0].SKU)
	assert.Equal(t, "Linen Shirt", listings[0].Title)
}

func TestListProducts_EmptyRetailer(t *testing.T) {
	_, err := newTestClient("http://unused").ListProducts(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestListProducts_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	listings, err := newTestClient(server.URL).ListProducts(context.Background(), "unknown")

	assert.Nil(t, listings)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListProducts_ServerError_Retries(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(domain.ListingsResponse{
			Products: []domain.Listing{{SKU: "1", Title: "Success after retry"}},
		})
	}))
	defer server.Close()

	listings, err := newTestClient(server.URL).ListProducts(context.Background(), "zara")

	require.NoError(t, err)
	assert.Len(t, listings, 1)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestListProducts_ServerError_GivesUp(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListProducts(context.Background(), "zara")

	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
	assert.Equal(t, int32(maxAttempts), attempts.Load())
}

func TestListProducts_ClientError_NoRetry(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListProducts(context.Background(), "zara")

	assert.ErrorIs(t, err, domain.ErrCatalogAPIFailure)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestListProducts_TooManyRequests_Retries(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(domain.ListingsResponse{})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListProducts(context.Background(), "zara")

	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestListProducts_TooManyRequests_GivesUp(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListProducts(context.Background(), "zara")

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.NotErrorIs(t, err, domain.ErrCatalogAPIFailure)
	assert.Equal(t, int32(maxAttempts), attempts.Load())
}

func TestListProducts_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListProducts(context.Background(), "zara")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestListProducts_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server.URL).ListProducts(ctx, "zara")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
