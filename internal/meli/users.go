package meli

import (
	"context"
	"strconv"

	"github.com/donaldgifford/meli-product-tracker/internal/metrics"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// SellerReputation returns the seller's reputation from the users API.
// Every request-level failure is swallowed and converted into a fully
// defaulted reputation value: an unreachable seller endpoint degrades
// one product's seller fields, nothing more.
func (c *Client) SellerReputation(ctx context.Context, sellerID int64) domain.SellerReputation {
	var resp userResponse
	if err := c.get(ctx, "/users/"+strconv.FormatInt(sellerID, 10), nil, &resp); err != nil {
		c.log.Debug("seller reputation lookup failed, degrading to defaults",
			"seller_id", sellerID,
			"error", err,
		)
		metrics.SubqueryFailuresTotal.WithLabelValues("seller").Inc()
		return domain.SellerReputation{}
	}

	rep := resp.SellerReputation
	return domain.SellerReputation{
		LevelID:               rep.LevelID,
		PowerSellerStatus:     rep.PowerSellerStatus,
		TransactionsTotal:     rep.Transactions.Total,
		TransactionsCompleted: rep.Transactions.Completed,
		TransactionsCanceled:  rep.Transactions.Canceled,
	}
}
