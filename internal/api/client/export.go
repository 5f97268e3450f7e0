package client

import "context"

// ExportCSV returns the current batch rendered as CSV.
func (c *Client) ExportCSV(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, "/api/v1/export/csv")
}

// ExportXLSX returns the current batch rendered as an Excel workbook.
func (c *Client) ExportXLSX(ctx context.Context) ([]byte, error) {
	return c.getRaw(ctx, "/api/v1/export/xlsx")
}
