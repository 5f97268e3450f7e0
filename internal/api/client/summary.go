package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// StreamSummary generates a summary on the server and invokes fn for
// each text fragment as it arrives. It returns the concatenated text.
func (c *Client) StreamSummary(
	ctx context.Context,
	maxTokens int,
	fn func(fragment string),
) (string, error) {
	path := "/api/v1/summary/stream"
	if maxTokens > 0 {
		path += "?max_tokens=" + strconv.Itoa(maxTokens)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return "", fmt.Errorf("API server not running at %s", c.baseURL)
		}
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body) //nolint:errcheck // best-effort error body
		return "", fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, string(body))
	}

	var (
		full      strings.Builder
		event     string
		streamErr string
	)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			event = ""
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

			var payload struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal([]byte(data), &payload); err != nil {
				continue
			}

			switch event {
			case "error":
				streamErr = payload.Text
			case "done":
			default:
				full.WriteString(payload.Text)
				if fn != nil {
					fn(payload.Text)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("reading stream: %w", err)
	}
	if streamErr != "" {
		return full.String(), fmt.Errorf("summary stream failed: %s", streamErr)
	}

	return full.String(), nil
}

// DownloadSummary returns the last generated summary text.
func (c *Client) DownloadSummary(ctx context.Context) (string, error) {
	body, err := c.getRaw(ctx, "/api/v1/summary/download")
	if err != nil {
		return "", err
	}
	return string(body), nil
}
