package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/meli-product-tracker/internal/engine"
	"github.com/donaldgifford/meli-product-tracker/internal/meli"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

const defaultFetchLimit = 20

// FetchHandler runs the enrichment pipeline and replaces the session batch.
type FetchHandler struct {
	runner  PipelineRunner
	session *engine.Session
}

// NewFetchHandler creates a new FetchHandler.
func NewFetchHandler(runner PipelineRunner, session *engine.Session) *FetchHandler {
	return &FetchHandler{runner: runner, session: session}
}

// FetchInput is the request body for the fetch endpoint.
type FetchInput struct {
	Body struct {
		Category string `json:"category" minLength:"1" doc:"Category name from the category table" example:"Electronics"`
		Limit    int    `json:"limit,omitempty" minimum:"1" maximum:"50" doc:"Maximum products to fetch (default 20)" example:"20"`
	}
}

// FetchOutput is the response body for the fetch endpoint.
type FetchOutput struct {
	Body struct {
		Batch    *domain.EnrichedBatch `json:"batch" doc:"The enriched batch, in catalog order"`
		Degraded int                   `json:"degraded" doc:"Products with at least one unavailable metric"`
	}
}

// Fetch runs the pipeline for a category. On success the session batch
// is replaced; on failure the previous batch is left untouched.
func (h *FetchHandler) Fetch(ctx context.Context, input *FetchInput) (*FetchOutput, error) {
	categoryID, ok := meli.CategoryID(input.Body.Category)
	if !ok {
		return nil, huma.Error400BadRequest(
			"unknown category: " + input.Body.Category,
		)
	}

	limit := input.Body.Limit
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	batch, err := h.runner.Run(ctx, input.Body.Category, categoryID, limit)
	if err != nil {
		return nil, huma.Error502BadGateway("MercadoLibre API error: " + err.Error())
	}

	h.session.SetBatch(batch)

	out := &FetchOutput{}
	out.Body.Batch = batch
	out.Body.Degraded = batch.DegradedCount()
	return out, nil
}

// RegisterFetchRoutes registers fetch endpoints with the Huma API.
func RegisterFetchRoutes(api huma.API, h *FetchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "fetch-category",
		Method:      http.MethodPost,
		Path:        "/api/v1/fetch",
		Summary:     "Fetch and enrich a category",
		Description: "Fetches the top products for a category, enriches each one, and replaces the session batch.",
		Tags:        []string{"pipeline"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway},
	}, h.Fetch)
}
