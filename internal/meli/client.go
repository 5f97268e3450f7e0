// Package meli provides a MercadoLibre API client abstracted behind
// interfaces for testability.
package meli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/donaldgifford/meli-product-tracker/internal/metrics"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

const (
	defaultAPIURL = "https://api.mercadolibre.com"
	defaultSite   = "MLC"
)

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	// Invalidate drops the cached token so the next Token call performs
	// a fresh credential exchange.
	Invalidate()
}

// MarketClient defines the MercadoLibre API surface the enrichment
// pipeline depends on.
type MarketClient interface {
	// SearchTop returns up to limit catalog entries for a category,
	// ordered by descending sold quantity.
	SearchTop(ctx context.Context, categoryID string, limit int) ([]SearchItem, error)

	// ItemVisits returns the item's total visits over the trailing
	// 30-day window.
	ItemVisits(ctx context.Context, itemID string) (int64, error)

	// ItemReviews returns the item's rating average, review count and
	// star histogram.
	ItemReviews(ctx context.Context, itemID string) (domain.RatingInfo, error)

	// SellerReputation returns the seller's reputation, or a fully
	// defaulted value on any failure. It never returns an error: one
	// unreachable seller endpoint must not take down a batch.
	SellerReputation(ctx context.Context, sellerID int64) domain.SellerReputation
}

// Client implements MarketClient against the MercadoLibre REST API.
type Client struct {
	tokens      TokenProvider
	apiURL      string
	site        string
	client      *http.Client
	rateLimiter *RateLimiter
	log         *slog.Logger
	nowFunc     func() time.Time
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithAPIURL overrides the default MercadoLibre API base URL.
func WithAPIURL(u string) ClientOption {
	return func(c *Client) {
		c.apiURL = u
	}
}

// WithSite overrides the default marketplace site (MLC).
func WithSite(site string) ClientOption {
	return func(c *Client) {
		c.site = site
	}
}

// WithClientHTTPClient overrides the default HTTP client.
func WithClientHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and
// daily API call limits. When set, every API call goes through Wait()
// first.
func WithRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithClientLogger sets a custom logger.
func WithClientLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// WithClientNowFunc overrides the time function for testing.
func WithClientNowFunc(f func() time.Time) ClientOption {
	return func(c *Client) {
		c.nowFunc = f
	}
}

// NewClient creates a new MercadoLibre API client.
func NewClient(tokens TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		tokens:  tokens,
		apiURL:  defaultAPIURL,
		site:    defaultSite,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     slog.Default(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs an authenticated GET against path with the given query
// parameters and decodes the JSON response into dst. Non-2xx responses
// are returned as *APIError.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.MeliDailyLimitHits.Inc()
			}
			return fmt.Errorf("rate limit: %w", err)
		}
		metrics.MeliDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}

	u := c.apiURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	metrics.MeliAPICallsTotal.Inc()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	return nil
}
