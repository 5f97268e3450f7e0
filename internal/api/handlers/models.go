package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/meli-product-tracker/internal/engine"
	"github.com/donaldgifford/meli-product-tracker/pkg/summarize"
)

// ModelsHandler serves the model catalog and the session's selection.
type ModelsHandler struct {
	session *engine.Session
}

// NewModelsHandler creates a new ModelsHandler.
func NewModelsHandler(session *engine.Session) *ModelsHandler {
	return &ModelsHandler{session: session}
}

// ModelsOutput is the response body for the model catalog endpoint.
type ModelsOutput struct {
	Body struct {
		Models   []summarize.ModelInfo `json:"models" doc:"Selectable summary models"`
		Selected string                `json:"selected" doc:"Currently selected model id"`
	}
}

// List returns the model catalog and the current selection.
func (h *ModelsHandler) List(_ context.Context, _ *struct{}) (*ModelsOutput, error) {
	out := &ModelsOutput{}
	out.Body.Models = summarize.Models
	out.Body.Selected = h.session.Model()
	return out, nil
}

// SelectModelInput is the request body for the model selection endpoint.
type SelectModelInput struct {
	Body struct {
		ModelID string `json:"model_id" minLength:"1" doc:"Model id from the catalog" example:"mixtral-8x7b-32768"`
	}
}

// SelectModelOutput is the response body for the model selection endpoint.
type SelectModelOutput struct {
	Body struct {
		ModelID      string `json:"model_id" doc:"Selected model id"`
		MaxTokens    int    `json:"max_tokens" doc:"Model token ceiling"`
		BatchCleared bool   `json:"batch_cleared" doc:"Whether switching models dropped the held batch"`
	}
}

// Select changes the session model. Switching models drops the held
// batch, so a summary can never be generated against stale data.
func (h *ModelsHandler) Select(
	_ context.Context,
	input *SelectModelInput,
) (*SelectModelOutput, error) {
	info, ok := summarize.LookupModel(input.Body.ModelID)
	if !ok {
		return nil, huma.Error400BadRequest("unknown model: " + input.Body.ModelID)
	}

	cleared := h.session.SetModel(info.ID)

	out := &SelectModelOutput{}
	out.Body.ModelID = info.ID
	out.Body.MaxTokens = info.MaxTokens
	out.Body.BatchCleared = cleared
	return out, nil
}

// RegisterModelsRoutes registers model endpoints with the Huma API.
func RegisterModelsRoutes(api huma.API, h *ModelsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-models",
		Method:      http.MethodGet,
		Path:        "/api/v1/models",
		Summary:     "List summary models",
		Description: "Returns the model catalog and the currently selected model.",
		Tags:        []string{"summary"},
	}, h.List)

	huma.Register(api, huma.Operation{
		OperationID: "select-model",
		Method:      http.MethodPut,
		Path:        "/api/v1/model",
		Summary:     "Select a summary model",
		Description: "Selects the model used for summary generation. Switching models drops the held batch.",
		Tags:        []string{"summary"},
		Errors:      []int{http.StatusBadRequest},
	}, h.Select)
}
