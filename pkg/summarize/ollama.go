package summarize

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaBackend implements StreamBackend using the Ollama /api/generate
// endpoint with newline-delimited JSON streaming.
type OllamaBackend struct {
	endpoint string
	model    string
	client   *http.Client
}

// OllamaOption configures the OllamaBackend.
type OllamaOption func(*OllamaBackend)

// WithOllamaHTTPClient overrides the default HTTP client.
func WithOllamaHTTPClient(c *http.Client) OllamaOption {
	return func(b *OllamaBackend) {
		b.client = c
	}
}

// NewOllamaBackend creates a new Ollama streaming backend.
func NewOllamaBackend(endpoint, model string, opts ...OllamaOption) *OllamaBackend {
	b := &OllamaBackend{
		endpoint: endpoint,
		model:    model,
		client:   &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns the backend name.
func (*OllamaBackend) Name() string {
	return "ollama"
}

type ollamaRequest struct {
	Model      string         `json:"model"`
	Prompt     string         `json:"prompt"`
	Stream     bool           `json:"stream"`
	NumPredict int            `json:"num_predict,omitempty"`
	Options    *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaStreamChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Stream calls /api/generate with stream enabled and returns the
// response fields as a fragment stream.
func (b *OllamaBackend) Stream(ctx context.Context, req Request) (*Stream, error) {
	model := req.Model
	if model == "" {
		model = b.model
	}

	ollamaReq := ollamaRequest{
		Model:      model,
		Prompt:     req.Prompt,
		Stream:     true,
		NumPredict: req.MaxTokens,
	}
	if req.Temperature > 0 {
		ollamaReq.Options = &ollamaOptions{Temperature: req.Temperature}
	}

	body, err := json.Marshal(ollamaReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := b.endpoint + "/api/generate"

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

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling ollama: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body) //nolint:errcheck // best-effort error body
		_ = resp.Body.Close()
		return nil, fmt.Errorf(
			"ollama error (status %d): %s",
			resp.StatusCode,
			string(respBody),
		)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var done bool

	recv := func() (string, error) {
		for !done && scanner.Scan() {
			line := bytes.TrimSpace(scanner.Bytes())
			if len(line) == 0 {
				continue
			}

			var chunk ollamaStreamChunk
			if err := json.Unmarshal(line, &chunk); err != nil {
				return "", fmt.Errorf("parsing stream chunk: %w", err)
			}

			// The final chunk may carry both text and the done marker;
			// yield the text now and report EOF on the next call.
			done = chunk.Done
			if chunk.Response != "" {
				return chunk.Response, nil
			}
		}

		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading stream: %w", err)
		}
		return "", io.EOF
	}

	return NewStream(recv, resp.Body.Close), nil
}
