package client

import (
	"context"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// BatchResponse wraps a batch response with its degraded-product count.
type BatchResponse struct {
	Batch    *domain.EnrichedBatch `json:"batch"`
	Degraded int                   `json:"degraded"`
}

// Fetch runs the enrichment pipeline for a category and returns the new
// batch.
func (c *Client) Fetch(ctx context.Context, category string, limit int) (*BatchResponse, error) {
	body := map[string]any{"category": category}
	if limit > 0 {
		body["limit"] = limit
	}

	var resp BatchResponse
	if err := c.post(ctx, "/api/v1/fetch", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBatch returns the server's current batch.
func (c *Client) GetBatch(ctx context.Context) (*BatchResponse, error) {
	var resp BatchResponse
	if err := c.get(ctx, "/api/v1/batch", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
