// Package export serializes enriched batches into tabular download
// formats. Column order is fixed and shared by every format.
package export

import (
	"fmt"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// columns is the canonical header row. The order is part of the export
// contract; downstream spreadsheets key on it.
var columns = []string{
	"Title",
	"Price",
	"Available Quantity",
	"Condition",
	"Visits (Last 30 days)",
	"Rating",
	"Number of Reviews",
	"Rating Distribution",
	"Seller Level",
	"Power Seller Status",
	"Total Transactions",
	"Link",
}

func row(p *domain.EnrichedProduct) []string {
	return []string{
		p.Title,
		strconv.FormatFloat(p.Price, 'f', -1, 64),
		strconv.Itoa(p.AvailableQuantity),
		p.Condition,
		domain.FormatCount(p.Visits),
		domain.FormatRating(p.Rating.Average),
		strconv.Itoa(p.Rating.ReviewCount),
		p.Rating.Levels.String(),
		domain.OrUnavailable(p.Seller.LevelID),
		domain.OrUnavailable(p.Seller.PowerSellerStatus),
		domain.FormatCount(p.Seller.TransactionsTotal),
		p.Permalink,
	}
}

// Filename builds a download filename from the batch's category, e.g.
// "electronics_products.csv".
func Filename(batch *domain.EnrichedBatch, ext string) string {
	slug := strings.ToLower(batch.Category)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, slug)
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "batch"
	}
	return fmt.Sprintf("%s_products.%s", slug, ext)
}
