package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/meli-product-tracker/internal/meli"
	"github.com/donaldgifford/meli-product-tracker/internal/metrics"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

const defaultSubqueryTimeout = 10 * time.Second

// Enricher augments a single catalog entry with visits, ratings, and
// seller reputation. The three sub-queries run concurrently, each under
// its own deadline; a failed or timed-out sub-query degrades only its
// own fields.
type Enricher struct {
	market  meli.MarketClient
	timeout time.Duration
	log     *slog.Logger
}

// EnricherOption configures the Enricher.
type EnricherOption func(*Enricher)

// WithSubqueryTimeout sets the per-sub-query deadline.
func WithSubqueryTimeout(d time.Duration) EnricherOption {
	return func(e *Enricher) {
		e.timeout = d
	}
}

// WithEnricherLogger sets a custom logger.
func WithEnricherLogger(l *slog.Logger) EnricherOption {
	return func(e *Enricher) {
		e.log = l
	}
}

// NewEnricher creates an Enricher over a market client.
func NewEnricher(market meli.MarketClient, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		market:  market,
		timeout: defaultSubqueryTimeout,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich validates a catalog entry and merges the three sub-query
// results into a flat EnrichedProduct. A missing item id or seller id
// fails fast with *meli.MalformedItemError before any network call.
func (e *Enricher) Enrich(
	ctx context.Context,
	index int,
	item *meli.SearchItem,
) (domain.EnrichedProduct, error) {
	if item.ID == "" {
		return domain.EnrichedProduct{}, &meli.MalformedItemError{
			Index:  index,
			ItemID: item.ID,
			Reason: "missing item id",
		}
	}
	if item.Seller == nil || item.Seller.ID == 0 {
		return domain.EnrichedProduct{}, &meli.MalformedItemError{
			Index:  index,
			ItemID: item.ID,
			Reason: "missing seller id",
		}
	}

	product := domain.EnrichedProduct{
		ProductSummary: meli.ToProduct(item),
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		subCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		visits, err := e.market.ItemVisits(subCtx, item.ID)
		if err != nil {
			e.log.Debug("visits lookup degraded", "item", item.ID, "error", err)
			metrics.SubqueryFailuresTotal.WithLabelValues("visits").Inc()
			return
		}
		product.Visits = &visits
	}()

	go func() {
		defer wg.Done()
		subCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		rating, err := e.market.ItemReviews(subCtx, item.ID)
		if err != nil {
			e.log.Debug("reviews lookup degraded", "item", item.ID, "error", err)
			metrics.SubqueryFailuresTotal.WithLabelValues("reviews").Inc()
			return
		}
		product.Rating = rating
	}()

	go func() {
		defer wg.Done()
		subCtx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		// SellerReputation degrades internally; it never errors.
		product.Seller = e.market.SellerReputation(subCtx, item.Seller.ID)
	}()

	wg.Wait()

	metrics.EnrichedItemsTotal.Inc()

	return product, nil
}
