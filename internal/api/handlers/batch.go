package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/meli-product-tracker/internal/engine"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// BatchHandler serves the session's current batch.
type BatchHandler struct {
	session *engine.Session
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(session *engine.Session) *BatchHandler {
	return &BatchHandler{session: session}
}

// BatchOutput is the response body for the batch endpoint.
type BatchOutput struct {
	Body struct {
		Batch    *domain.EnrichedBatch `json:"batch" doc:"The current session batch"`
		Degraded int                   `json:"degraded" doc:"Products with at least one unavailable metric"`
	}
}

// Get returns the current session batch, or 404 when nothing has been
// fetched yet.
func (h *BatchHandler) Get(_ context.Context, _ *struct{}) (*BatchOutput, error) {
	batch := h.session.Batch()
	if batch == nil {
		return nil, huma.Error404NotFound("no batch fetched yet")
	}

	out := &BatchOutput{}
	out.Body.Batch = batch
	out.Body.Degraded = batch.DegradedCount()
	return out, nil
}

// RegisterBatchRoutes registers batch endpoints with the Huma API.
func RegisterBatchRoutes(api huma.API, h *BatchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-batch",
		Method:      http.MethodGet,
		Path:        "/api/v1/batch",
		Summary:     "Get the current batch",
		Description: "Returns the batch from the most recent fetch.",
		Tags:        []string{"pipeline"},
		Errors:      []int{http.StatusNotFound},
	}, h.Get)
}
