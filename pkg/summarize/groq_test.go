package summarize_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/meli-product-tracker/pkg/summarize"
)

// sseChunk formats one chat-completions stream event carrying content.
func sseChunk(content string) string {
	payload, _ := json.Marshal(map[string]any{ //nolint:errcheck // static input
		"choices": []map[string]any{
			{"delta": map[string]string{"content": content}},
		},
	})
	return fmt.Sprintf("data: %s\n\n", payload)
}

func TestGroqBackend_Name(t *testing.T) {
	t.Parallel()
	b := summarize.NewGroqBackend("mixtral-8x7b-32768")
	assert.Equal(t, "groq", b.Name())
}

func TestGroqBackend_Stream(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, true, req["stream"])
			assert.Equal(t, "llama3-8b-8192", req["model"])
			assert.EqualValues(t, 512, req["max_tokens"])

			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = io.WriteString(w, sseChunk("The top "))
			// Role-only deltas carry no content and must be skipped.
			_, _ = io.WriteString(w, `data: {"choices":[{"delta":{"role":"assistant"}}]}`+"\n\n")
			_, _ = io.WriteString(w, sseChunk("products are"))
			_, _ = io.WriteString(w, sseChunk(" electronics."))
			_, _ = io.WriteString(w, "data: [DONE]\n\n")
		}),
	)
	defer srv.Close()

	b := summarize.NewGroqBackend("mixtral-8x7b-32768",
		summarize.WithGroqEndpoint(srv.URL),
		summarize.WithGroqAPIKey("test-key"),
	)

	stream, err := b.Stream(context.Background(), summarize.Request{
		Prompt:    "summarize",
		Model:     "llama3-8b-8192",
		MaxTokens: 512,
	})
	require.NoError(t, err)

	var fragments []string
	for {
		frag, err := stream.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		fragments = append(fragments, frag)
	}
	require.NoError(t, stream.Close())

	assert.Equal(t, []string{"The top ", "products are", " electronics."}, fragments)

	// Concatenation reconstitutes the full text with no gaps or
	// duplication at chunk boundaries.
	var full string
	for _, f := range fragments {
		full += f
	}
	assert.Equal(t, "The top products are electronics.", full)
}

func TestGroqBackend_Stream_DefaultModel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "mixtral-8x7b-32768", req["model"])

			_, _ = io.WriteString(w, "data: [DONE]\n\n")
		}),
	)
	defer srv.Close()

	b := summarize.NewGroqBackend("mixtral-8x7b-32768",
		summarize.WithGroqEndpoint(srv.URL),
	)

	stream, err := b.Stream(context.Background(), summarize.Request{Prompt: "x"})
	require.NoError(t, err)

	_, err = stream.Next()
	assert.Equal(t, io.EOF, err)
	require.NoError(t, stream.Close())
}

func TestGroqBackend_Stream_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
		}),
	)
	defer srv.Close()

	b := summarize.NewGroqBackend("mixtral-8x7b-32768",
		summarize.WithGroqEndpoint(srv.URL),
	)

	_, err := b.Stream(context.Background(), summarize.Request{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestGroqBackend_Stream_EarlyClose(t *testing.T) {
	t.Parallel()

	requestDone := make(chan struct{})

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer close(requestDone)

			f, ok := w.(http.Flusher)
			require.True(t, ok)

			_, _ = io.WriteString(w, sseChunk("first"))
			f.Flush()

			// Block until the client goes away instead of finishing the
			// stream; Close must abort the request.
			<-r.Context().Done()
		}),
	)
	defer srv.Close()

	b := summarize.NewGroqBackend("mixtral-8x7b-32768",
		summarize.WithGroqEndpoint(srv.URL),
	)

	stream, err := b.Stream(context.Background(), summarize.Request{Prompt: "x"})
	require.NoError(t, err)

	frag, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "first", frag)

	require.NoError(t, stream.Close())

	// The server handler observes the aborted request and returns.
	<-requestDone
}
