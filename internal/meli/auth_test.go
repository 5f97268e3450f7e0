package meli_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/meli-product-tracker/internal/meli"
)

// tokenJSON returns a valid MercadoLibre token response as JSON bytes.
func tokenJSON(token string) []byte {
	return []byte(fmt.Sprintf(
		`{"access_token":%q,"expires_in":21600,"token_type":"Bearer"}`,
		token,
	))
}

func TestClientCredentialsProvider_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    bool
		wantToken  string
		errContain string
	}{
		{
			name: "successful token fetch",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(tokenJSON("test-token-123"))
			},
			wantToken: "test-token-123",
		},
		{
			name: "server returns 400",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			},
			wantErr:    true,
			errContain: "status 400",
		},
		{
			name: "server returns 500",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr:    true,
			errContain: "status 500",
		},
		{
			name: "server returns invalid JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte("not json"))
			},
			wantErr:    true,
			errContain: "parsing token response",
		},
		{
			name: "server returns empty access_token",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"access_token":"","expires_in":21600}`))
			},
			wantErr:    true,
			errContain: "empty access_token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			provider := meli.NewClientCredentialsProvider(
				"test-client-id",
				"test-client-secret",
				meli.WithTokenURL(srv.URL),
			)

			token, err := provider.Token(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

func TestClientCredentialsProvider_Caching(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			callCount.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("cached-token"))
		}),
	)
	defer srv.Close()

	provider := meli.NewClientCredentialsProvider(
		"test-client-id",
		"test-client-secret",
		meli.WithTokenURL(srv.URL),
	)

	// First call should hit the server.
	token1, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", token1)
	assert.Equal(t, int32(1), callCount.Load())

	// Second call should return the cached token (no HTTP call).
	token2, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", token2)
	assert.Equal(t, int32(1), callCount.Load())
}

func TestClientCredentialsProvider_RefreshAfterOneHour(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	now := time.Now()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			callCount.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("refreshed-token"))
		}),
	)
	defer srv.Close()

	currentTime := now
	var mu sync.Mutex

	provider := meli.NewClientCredentialsProvider(
		"test-client-id",
		"test-client-secret",
		meli.WithTokenURL(srv.URL),
		meli.WithNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)

	// First call fetches a token.
	_, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), callCount.Load())

	// The upstream expires_in is 6 hours, but the cache interval is
	// capped at one hour. Advance past it.
	mu.Lock()
	currentTime = now.Add(time.Hour)
	mu.Unlock()

	// This call should perform a fresh exchange.
	_, err = provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), callCount.Load())
}

func TestClientCredentialsProvider_Invalidate(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			callCount.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON(fmt.Sprintf("token-%d", callCount.Load())))
		}),
	)
	defer srv.Close()

	provider := meli.NewClientCredentialsProvider(
		"test-client-id",
		"test-client-secret",
		meli.WithTokenURL(srv.URL),
	)

	token1, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token1)

	provider.Invalidate()

	token2, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-2", token2)
	assert.Equal(t, int32(2), callCount.Load())
}

func TestClientCredentialsProvider_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			callCount.Add(1)
			time.Sleep(10 * time.Millisecond)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("concurrent-token"))
		}),
	)
	defer srv.Close()

	provider := meli.NewClientCredentialsProvider(
		"test-client-id",
		"test-client-secret",
		meli.WithTokenURL(srv.URL),
	)

	const goroutines = 10

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			token, err := provider.Token(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "concurrent-token", token)
		}()
	}

	wg.Wait()

	// The exchange is single-flight behind the mutex: exactly one network
	// call services all concurrent callers.
	assert.Equal(t, int32(1), callCount.Load())
}

func TestClientCredentialsProvider_RequestFormat(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(
				t,
				"application/x-www-form-urlencoded",
				r.Header.Get("Content-Type"),
			)

			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "client_credentials", r.FormValue("grant_type"))
			assert.Equal(t, "my-client-id", r.FormValue("client_id"))
			assert.Equal(t, "my-client-secret", r.FormValue("client_secret"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write(tokenJSON("format-test-token"))
		}),
	)
	defer srv.Close()

	provider := meli.NewClientCredentialsProvider(
		"my-client-id",
		"my-client-secret",
		meli.WithTokenURL(srv.URL),
	)

	token, err := provider.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "format-test-token", token)
}
