package client

import "context"

// ModelInfo is one selectable summary model.
type ModelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Developer string `json:"developer"`
	MaxTokens int    `json:"max_tokens"`
}

// ModelsResponse wraps the model catalog and the current selection.
type ModelsResponse struct {
	Models   []ModelInfo `json:"models"`
	Selected string      `json:"selected"`
}

// ListModels returns the model catalog and the selected model.
func (c *Client) ListModels(ctx context.Context) (*ModelsResponse, error) {
	var resp ModelsResponse
	if err := c.get(ctx, "/api/v1/models", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SelectModelResult reports the outcome of a model selection.
type SelectModelResult struct {
	ModelID      string `json:"model_id"`
	MaxTokens    int    `json:"max_tokens"`
	BatchCleared bool   `json:"batch_cleared"`
}

// SelectModel selects the summary model on the server.
func (c *Client) SelectModel(ctx context.Context, modelID string) (*SelectModelResult, error) {
	var resp SelectModelResult
	if err := c.put(ctx, "/api/v1/model", map[string]any{"model_id": modelID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
