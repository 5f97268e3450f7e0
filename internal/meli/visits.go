package meli

import (
	"context"
	"fmt"
	"net/url"
)

// visitsWindowDays is the fixed trailing window for visit counts.
const visitsWindowDays = "30"

// ItemVisits returns the item's total visits over the trailing 30-day
// window ending today.
func (c *Client) ItemVisits(ctx context.Context, itemID string) (int64, error) {
	query := url.Values{
		"last":   {visitsWindowDays},
		"unit":   {"day"},
		"ending": {c.nowFunc().Format("2006-01-02")},
	}

	var resp visitsResponse
	if err := c.get(ctx, "/items/"+itemID+"/visits/time_window", query, &resp); err != nil {
		return 0, fmt.Errorf("fetching visits for %s: %w", itemID, err)
	}

	return resp.TotalVisits, nil
}
