package meli

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const sortSoldQuantityDesc = "sold_quantity_desc"

// SearchTop queries the site search API for the top-selling products in
// a category, ordered by descending sold quantity. On a 401/403 it
// invalidates the cached token and retries exactly once with a fresh
// credential; any further failure is surfaced to the caller.
func (c *Client) SearchTop(
	ctx context.Context,
	categoryID string,
	limit int,
) ([]SearchItem, error) {
	if limit <= 0 {
		limit = 20
	}

	query := url.Values{
		"category": {categoryID},
		"sort":     {sortSoldQuantityDesc},
		"limit":    {strconv.Itoa(limit)},
	}
	path := "/sites/" + c.site + "/search"

	var resp searchResponse
	err := c.get(ctx, path, query, &resp)
	if IsAuthError(err) {
		c.log.Warn("search rejected with auth failure, refreshing token",
			"category", categoryID,
		)
		c.tokens.Invalidate()
		resp = searchResponse{}
		err = c.get(ctx, path, query, &resp)
	}
	if err != nil {
		return nil, fmt.Errorf("searching category %s: %w", categoryID, err)
	}

	if len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}

	return resp.Results, nil
}
