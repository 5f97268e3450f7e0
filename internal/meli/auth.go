package meli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/donaldgifford/meli-product-tracker/internal/metrics"
)

const (
	defaultTokenURL = "https://api.mercadolibre.com/oauth/token" //nolint:gosec // not a credential
	tokenTTL        = time.Hour
	refreshBuffer   = 60 * time.Second
)

// ClientCredentialsProvider implements TokenProvider using the
// MercadoLibre OAuth2 client credentials flow. Tokens are cached for one
// hour from first successful acquisition. The mutex is held across the
// exchange, so concurrent callers inside the validity window share the
// cached token and callers arriving during a refresh block on the
// in-flight exchange instead of issuing duplicates.
type ClientCredentialsProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	client       *http.Client

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// AuthOption configures the ClientCredentialsProvider.
type AuthOption func(*ClientCredentialsProvider)

// WithTokenURL overrides the default token endpoint.
func WithTokenURL(u string) AuthOption {
	return func(p *ClientCredentialsProvider) {
		p.tokenURL = u
	}
}

// WithAuthHTTPClient overrides the default HTTP client.
func WithAuthHTTPClient(c *http.Client) AuthOption {
	return func(p *ClientCredentialsProvider) {
		p.client = c
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) AuthOption {
	return func(p *ClientCredentialsProvider) {
		p.nowFunc = f
	}
}

// NewClientCredentialsProvider creates a new MercadoLibre token provider.
func NewClientCredentialsProvider(
	clientID, clientSecret string,
	opts ...AuthOption,
) *ClientCredentialsProvider {
	p := &ClientCredentialsProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Token returns a valid access token, performing a credential exchange
// if no unexpired token is cached.
func (p *ClientCredentialsProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.nowFunc().Before(p.expiry.Add(-refreshBuffer)) {
		return p.token, nil
	}

	return p.exchangeLocked(ctx)
}

// Invalidate drops the cached token. The next Token call performs a
// fresh exchange; callers use this after observing an auth-failure
// response from a downstream API.
func (p *ClientCredentialsProvider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.expiry = time.Time{}
}

func (p *ClientCredentialsProvider) exchangeLocked(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"credential exchange failed: %w",
			&APIError{StatusCode: resp.StatusCode, Body: string(body)},
		)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("credential exchange returned empty access_token")
	}

	ttl := tokenTTL
	if tokenResp.ExpiresIn > 0 {
		if upstream := time.Duration(tokenResp.ExpiresIn) * time.Second; upstream < ttl {
			ttl = upstream
		}
	}

	p.token = tokenResp.AccessToken
	p.expiry = p.nowFunc().Add(ttl)

	metrics.TokenExchangesTotal.Inc()

	return p.token, nil
}
