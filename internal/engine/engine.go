// Package engine orchestrates the fetch-and-enrich pipeline: catalog
// retrieval, bounded-concurrency per-item enrichment, ordered batch
// assembly, session state, and scheduled refreshes.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/meli-product-tracker/internal/meli"
	"github.com/donaldgifford/meli-product-tracker/internal/metrics"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

const defaultWorkers = 5

// ProgressFunc receives monotonic pipeline progress. done counts items
// fully processed (enriched or skipped) out of total.
type ProgressFunc func(done, total int)

// Engine runs the enrichment pipeline for one category at a time.
type Engine struct {
	market   meli.MarketClient
	enricher *Enricher
	tokens   meli.TokenProvider
	log      *slog.Logger

	workers  int
	progress ProgressFunc
	nowFunc  func() time.Time
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(market meli.MarketClient, enricher *Enricher, opts ...EngineOption) *Engine {
	eng := &Engine{
		market:   market,
		enricher: enricher,
		log:      slog.Default(),
		workers:  defaultWorkers,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithWorkers sets the enrichment worker pool size.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTokenProvider makes Run warm the credential cache before fetching
// the catalog, so credential failures surface as their own error.
func WithTokenProvider(tp meli.TokenProvider) EngineOption {
	return func(e *Engine) {
		e.tokens = tp
	}
}

// WithProgress registers a progress callback. Reports are serialized
// and strictly increasing.
func WithProgress(fn ProgressFunc) EngineOption {
	return func(e *Engine) {
		e.progress = fn
	}
}

// WithEngineNowFunc overrides the time function for testing.
func WithEngineNowFunc(f func() time.Time) EngineOption {
	return func(e *Engine) {
		e.nowFunc = f
	}
}

// Run fetches the top products for a category and enriches each one.
// Credential and catalog failures are fatal; per-item sub-query
// failures degrade fields, and malformed catalog entries land in the
// batch's skipped list. Products keep catalog order regardless of
// enrichment completion order.
func (eng *Engine) Run(
	ctx context.Context,
	category string,
	categoryID string,
	limit int,
) (*domain.EnrichedBatch, error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		metrics.PipelineDuration.Observe(time.Since(start).Seconds())
		metrics.PipelineRunsTotal.WithLabelValues(outcome).Inc()
	}()

	if eng.tokens != nil {
		if _, err := eng.tokens.Token(ctx); err != nil {
			outcome = "error"
			return nil, fmt.Errorf("obtaining access token: %w", err)
		}
	}

	items, err := eng.market.SearchTop(ctx, categoryID, limit)
	if err != nil {
		outcome = "error"
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	eng.log.Info("catalog fetched",
		"category", category,
		"category_id", categoryID,
		"items", len(items),
	)

	results := make([]*domain.EnrichedProduct, len(items))

	var (
		mu      sync.Mutex
		skipped []domain.SkippedItem
		done    int
	)

	total := len(items)
	metrics.PipelineProgress.Set(0)

	report := func(i int, product *domain.EnrichedProduct, skip *domain.SkippedItem) {
		mu.Lock()
		defer mu.Unlock()

		if product != nil {
			results[i] = product
		}
		if skip != nil {
			skipped = append(skipped, *skip)
		}

		done++
		if total > 0 {
			metrics.PipelineProgress.Set(float64(done) / float64(total))
		}
		if eng.progress != nil {
			eng.progress(done, total)
		}
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	for range eng.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				eng.runItem(ctx, i, &items[i], report)
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		outcome = "error"
		return nil, ctx.Err()
	}

	products := make([]domain.EnrichedProduct, 0, total)
	for _, r := range results {
		if r != nil {
			products = append(products, *r)
		}
	}

	sort.Slice(skipped, func(a, b int) bool {
		return skipped[a].Index < skipped[b].Index
	})

	batch := &domain.EnrichedBatch{
		ID:         uuid.NewString(),
		Category:   category,
		CategoryID: categoryID,
		Limit:      limit,
		FetchedAt:  eng.nowFunc(),
		Products:   products,
		Skipped:    skipped,
	}

	eng.log.Info("pipeline run complete",
		"batch", batch.ID,
		"category", category,
		"products", len(products),
		"skipped", len(skipped),
		"degraded", batch.DegradedCount(),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return batch, nil
}

func (eng *Engine) runItem(
	ctx context.Context,
	i int,
	item *meli.SearchItem,
	report func(int, *domain.EnrichedProduct, *domain.SkippedItem),
) {
	product, err := eng.enricher.Enrich(ctx, i, item)
	if err != nil {
		reason := err.Error()
		if mie, ok := meli.AsMalformedItemError(err); ok {
			reason = mie.Reason
		}
		eng.log.Warn("catalog entry skipped",
			"index", i,
			"item", item.ID,
			"reason", reason,
		)
		metrics.MalformedItemsTotal.Inc()
		report(i, nil, &domain.SkippedItem{Index: i, ItemID: item.ID, Reason: reason})
		return
	}

	report(i, &product, nil)
}
