package client

import "context"

// Category is one selectable category.
type Category struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// ListCategories returns the server's category table, sorted by name.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := c.get(ctx, "/api/v1/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}
