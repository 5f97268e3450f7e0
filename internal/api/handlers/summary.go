package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/meli-product-tracker/internal/engine"
	"github.com/donaldgifford/meli-product-tracker/internal/metrics"
)

// SummaryHandler streams batch summaries over SSE and serves the last
// generated summary as a download. It uses raw echo handlers: SSE and
// file downloads don't fit huma's JSON envelope.
type SummaryHandler struct {
	summarizer SummaryService
	session    *engine.Session
	log        *slog.Logger
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(
	summarizer SummaryService,
	session *engine.Session,
	log *slog.Logger,
) *SummaryHandler {
	return &SummaryHandler{summarizer: summarizer, session: session, log: log}
}

// summaryEvent is one SSE data payload.
type summaryEvent struct {
	Text string `json:"text"`
}

// Stream generates a summary for the session batch and streams the
// text fragments as server-sent events. The full text is stored on the
// session for later download. A client disconnect aborts the upstream
// model request.
func (h *SummaryHandler) Stream(c echo.Context) error {
	batch := h.session.Batch()
	if batch == nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "no batch fetched yet",
		})
	}

	maxTokens := 0
	if raw := c.QueryParam("max_tokens"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "invalid max_tokens: " + raw,
			})
		}
		maxTokens = v
	}

	ctx := c.Request().Context()
	start := time.Now()

	stream, err := h.summarizer.Summarize(ctx, batch, h.session.Model(), maxTokens)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{
			"error": "summary backend error: " + err.Error(),
		})
	}
	defer stream.Close() //nolint:errcheck // release only

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set("Connection", "keep-alive")
	resp.WriteHeader(http.StatusOK)

	var full strings.Builder

	for {
		frag, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Headers are out; all we can do is log and end the stream.
			h.log.Error("summary stream failed", "batch", batch.ID, "error", err)
			fmt.Fprintf(resp, "event: error\ndata: %s\n\n", sseData(err.Error()))
			resp.Flush()
			return nil
		}

		full.WriteString(frag)
		metrics.SummaryFragmentsTotal.Inc()

		fmt.Fprintf(resp, "data: %s\n\n", sseData(frag))
		resp.Flush()

		if ctx.Err() != nil {
			return nil
		}
	}

	h.session.SetSummary(full.String())
	metrics.SummaryDuration.Observe(time.Since(start).Seconds())

	fmt.Fprint(resp, "event: done\ndata: {}\n\n")
	resp.Flush()
	return nil
}

// Download serves the last generated summary as a text attachment.
func (h *SummaryHandler) Download(c echo.Context) error {
	summary := h.session.Summary()
	if summary == "" {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "no summary generated yet",
		})
	}

	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		`attachment; filename="summary.txt"`,
	)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(summary))
}

func sseData(text string) string {
	data, err := json.Marshal(summaryEvent{Text: text})
	if err != nil {
		return `{"text":""}`
	}
	return string(data)
}
