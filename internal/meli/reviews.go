package meli

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// ItemReviews returns the item's rating average, review count and star
// histogram. Histogram buckets absent from the response stay at zero.
func (c *Client) ItemReviews(ctx context.Context, itemID string) (domain.RatingInfo, error) {
	var resp reviewsResponse
	if err := c.get(ctx, "/reviews/item/"+itemID, nil, &resp); err != nil {
		return domain.RatingInfo{}, fmt.Errorf("fetching reviews for %s: %w", itemID, err)
	}

	return domain.RatingInfo{
		Average:     resp.RatingAverage,
		ReviewCount: len(resp.Reviews),
		Levels: domain.RatingLevels{
			OneStar:   resp.RatingLevels.OneStar,
			TwoStar:   resp.RatingLevels.TwoStar,
			ThreeStar: resp.RatingLevels.ThreeStar,
			FourStar:  resp.RatingLevels.FourStar,
			FiveStar:  resp.RatingLevels.FiveStar,
		},
	}, nil
}
