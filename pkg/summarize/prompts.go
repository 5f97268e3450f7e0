package summarize

import (
	"encoding/json"
	"fmt"

	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// summaryPrompt frames the serialized batch for the model. The four
// numbered aspects are the contract with downstream consumers.
const summaryPrompt = `Analyze the following MercadoLibre product data and provide a concise summary:

%s

The summary must include:
1. An overview of the most popular products.
2. Price trends.
3. Patterns in product ratings and reviews.
4. Any interesting insights about the sellers.

Present the summary in an easy-to-read format with bullet points or short paragraphs.`

// promptRow is the per-product view serialized into the prompt. Field
// order mirrors the tabular export so the model sees the same record
// the user does.
type promptRow struct {
	Title               string  `json:"title"`
	Price               float64 `json:"price"`
	AvailableQuantity   int     `json:"available_quantity"`
	Condition           string  `json:"condition"`
	VisitsLast30Days    string  `json:"visits_last_30_days"`
	Rating              string  `json:"rating"`
	ReviewCount         int     `json:"review_count"`
	RatingDistribution  string  `json:"rating_distribution"`
	SellerLevel         string  `json:"seller_level"`
	PowerSellerStatus   string  `json:"power_seller_status"`
	TotalTransactions   string  `json:"total_transactions"`
	Link                string  `json:"link"`
}

// BuildPrompt serializes a batch into the structured summary prompt.
func BuildPrompt(batch *domain.EnrichedBatch) (string, error) {
	rows := make([]promptRow, 0, len(batch.Products))
	for i := range batch.Products {
		p := &batch.Products[i]
		rows = append(rows, promptRow{
			Title:              p.Title,
			Price:              p.Price,
			AvailableQuantity:  p.AvailableQuantity,
			Condition:          p.Condition,
			VisitsLast30Days:   domain.FormatCount(p.Visits),
			Rating:             domain.FormatRating(p.Rating.Average),
			ReviewCount:        p.Rating.ReviewCount,
			RatingDistribution: p.Rating.Levels.String(),
			SellerLevel:        domain.OrUnavailable(p.Seller.LevelID),
			PowerSellerStatus:  domain.OrUnavailable(p.Seller.PowerSellerStatus),
			TotalTransactions:  domain.FormatCount(p.Seller.TransactionsTotal),
			Link:               p.Permalink,
		})
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing batch for prompt: %w", err)
	}

	return fmt.Sprintf(summaryPrompt, data), nil
}
