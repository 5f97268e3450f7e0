package handlers

import (
	"context"

	"github.com/donaldgifford/meli-product-tracker/pkg/summarize"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// PipelineRunner runs the fetch-and-enrich pipeline for one category.
// *engine.Engine implements it.
type PipelineRunner interface {
	Run(ctx context.Context, category, categoryID string, limit int) (*domain.EnrichedBatch, error)
}

// SummaryService starts streamed summary generation for a batch.
// *summarize.Summarizer implements it.
type SummaryService interface {
	Summarize(
		ctx context.Context,
		batch *domain.EnrichedBatch,
		modelID string,
		maxTokens int,
	) (*summarize.Stream, error)
	Backend() string
}
