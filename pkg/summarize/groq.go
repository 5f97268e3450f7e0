package summarize

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultGroqEndpoint = "https://api.groq.com/openai"
	sseDonePayload      = "[DONE]"
)

// GroqBackend implements StreamBackend using the Groq chat completions
// API (OpenAI-compatible) with server-sent-event streaming.
type GroqBackend struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

// GroqOption configures the GroqBackend.
type GroqOption func(*GroqBackend)

// WithGroqEndpoint overrides the default API endpoint.
func WithGroqEndpoint(u string) GroqOption {
	return func(b *GroqBackend) {
		b.endpoint = u
	}
}

// WithGroqAPIKey overrides the API key (instead of reading from env).
func WithGroqAPIKey(key string) GroqOption {
	return func(b *GroqBackend) {
		b.apiKey = key
	}
}

// WithGroqHTTPClient overrides the default HTTP client.
func WithGroqHTTPClient(c *http.Client) GroqOption {
	return func(b *GroqBackend) {
		b.client = c
	}
}

// NewGroqBackend creates a new Groq streaming backend for the given
// default model. The API key is read from the GROQ_API_KEY environment
// variable if not provided via options.
func NewGroqBackend(model string, opts ...GroqOption) *GroqBackend {
	b := &GroqBackend{
		endpoint: defaultGroqEndpoint,
		model:    model,
		apiKey:   os.Getenv("GROQ_API_KEY"),
		// The whole stream, not each fragment, must finish inside the
		// client timeout.
		client: &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (*GroqBackend) Name() string {
	return "groq"
}

type groqChatRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// Stream calls the chat completions endpoint with stream enabled and
// returns the delta contents as a fragment stream.
func (b *GroqBackend) Stream(ctx context.Context, req Request) (*Stream, error) {
	model := req.Model
	if model == "" {
		model = b.model
	}

	chatReq := groqChatRequest{
		Model:     model,
		Messages:  []groqMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens: req.MaxTokens,
		Stream:    true,
	}
	if req.Temperature > 0 {
		chatReq.Temperature = &req.Temperature
	}

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := b.endpoint + "/v1/chat/completions"

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		url,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if b.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling groq API: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body) //nolint:errcheck // best-effort error body
		_ = resp.Body.Close()
		return nil, fmt.Errorf(
			"groq API error (status %d): %s",
			resp.StatusCode,
			string(respBody),
		)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	recv := func() (string, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if !strings.HasPrefix(line, "data:") {
				continue
			}

			payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
			if payload == sseDonePayload {
				return "", io.EOF
			}

			var chunk groqStreamChunk
			if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
				return "", fmt.Errorf("parsing stream chunk: %w", err)
			}

			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			return chunk.Choices[0].Delta.Content, nil
		}

		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading stream: %w", err)
		}
		return "", io.EOF
	}

	return NewStream(recv, resp.Body.Close), nil
}
