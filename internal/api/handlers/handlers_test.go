package handlers_test

import (
	"context"
	"io"

	"github.com/donaldgifford/meli-product-tracker/pkg/summarize"
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// fakeRunner is a hand-written PipelineRunner double.
type fakeRunner struct {
	batch *domain.EnrichedBatch
	err   error

	lastCategory   string
	lastCategoryID string
	lastLimit      int
}

func (f *fakeRunner) Run(
	_ context.Context,
	category, categoryID string,
	limit int,
) (*domain.EnrichedBatch, error) {
	f.lastCategory = category
	f.lastCategoryID = categoryID
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.batch, nil
}

// fakeSummary is a hand-written SummaryService double replaying canned
// fragments.
type fakeSummary struct {
	fragments []string
	err       error

	lastModel  string
	lastTokens int
}

func (f *fakeSummary) Summarize(
	_ context.Context,
	_ *domain.EnrichedBatch,
	modelID string,
	maxTokens int,
) (*summarize.Stream, error) {
	f.lastModel = modelID
	f.lastTokens = maxTokens
	if f.err != nil {
		return nil, f.err
	}

	i := 0
	recv := func() (string, error) {
		if i >= len(f.fragments) {
			return "", io.EOF
		}
		frag := f.fragments[i]
		i++
		return frag, nil
	}
	return summarize.NewStream(recv, nil), nil
}

func (*fakeSummary) Backend() string { return "fake" }

func enrichedBatch() *domain.EnrichedBatch {
	visits := int64(1200)
	avg := 4.6

	return &domain.EnrichedBatch{
		ID:         "batch-1",
		Category:   "Electronics",
		CategoryID: "MLC1000",
		Limit:      2,
		Products: []domain.EnrichedProduct{
			{
				ProductSummary: domain.ProductSummary{
					ID:        "MLC100",
					Title:     "Smart TV 55",
					Price:     349990,
					Condition: "new",
					SellerID:  42,
					Permalink: "https://articulo.mercadolibre.cl/MLC100",
				},
				Visits: &visits,
				Rating: domain.RatingInfo{Average: &avg, ReviewCount: 12},
				Seller: domain.SellerReputation{LevelID: "5_green"},
			},
			{
				ProductSummary: domain.ProductSummary{
					ID:        "MLC200",
					Title:     "Parlante Bluetooth",
					Price:     19990,
					Condition: "new",
					SellerID:  43,
					Permalink: "https://articulo.mercadolibre.cl/MLC200",
				},
			},
		},
		Skipped: []domain.SkippedItem{
			{Index: 2, ItemID: "MLC300", Reason: "missing seller id"},
		},
	}
}
