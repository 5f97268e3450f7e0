package summarize

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// Summarizer turns enriched batches into streamed natural-language
// summaries via a configured backend.
type Summarizer struct {
	backend StreamBackend
}

// NewSummarizer creates a Summarizer on top of a streaming backend.
func NewSummarizer(backend StreamBackend) *Summarizer {
	return &Summarizer{backend: backend}
}

// Backend returns the name of the underlying backend.
func (s *Summarizer) Backend() string {
	return s.backend.Name()
}

// Summarize builds the batch prompt and starts a streamed generation.
// The requested max tokens is clamped to the model's ceiling. The caller
// owns the returned stream and must Close it when stopping early.
func (s *Summarizer) Summarize(
	ctx context.Context,
	batch *domain.EnrichedBatch,
	modelID string,
	maxTokens int,
) (*Stream, error) {
	if batch == nil || len(batch.Products) == 0 {
		return nil, fmt.Errorf("no batch data to summarize")
	}

	prompt, err := BuildPrompt(batch)
	if err != nil {
		return nil, err
	}

	if modelID == "" {
		modelID = DefaultModelID
	}

	return s.backend.Stream(ctx, Request{
		Prompt:    prompt,
		Model:     modelID,
		MaxTokens: ClampTokens(modelID, maxTokens),
	})
}
