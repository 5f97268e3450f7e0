// Package domain defines the core business types for meli-product-tracker.
package domain

import (
	"fmt"
	"time"
)

// ValueUnavailable is the display sentinel for fields whose source
// sub-query failed or returned nothing.
const ValueUnavailable = "N/A"

// ProductSummary is one catalog entry as returned by the MercadoLibre
// search API. Immutable once fetched.
type ProductSummary struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Price             float64 `json:"price"`
	AvailableQuantity int     `json:"available_quantity"`
	SoldQuantity      int     `json:"sold_quantity"`
	Condition         string  `json:"condition"`
	SellerID          int64   `json:"seller_id"`
	Permalink         string  `json:"permalink"`
}

// RatingLevels is the five-bucket star histogram for a product's reviews.
type RatingLevels struct {
	OneStar   int `json:"one_star"`
	TwoStar   int `json:"two_star"`
	ThreeStar int `json:"three_star"`
	FourStar  int `json:"four_star"`
	FiveStar  int `json:"five_star"`
}

// String renders the histogram in the fixed 1..5 star order.
func (r RatingLevels) String() string {
	return fmt.Sprintf(
		"1★: %d | 2★: %d | 3★: %d | 4★: %d | 5★: %d",
		r.OneStar, r.TwoStar, r.ThreeStar, r.FourStar, r.FiveStar,
	)
}

// RatingInfo holds a product's review data. A nil Average means the
// review lookup failed or the product has no reviews.
type RatingInfo struct {
	Average     *float64     `json:"average,omitempty"`
	ReviewCount int          `json:"review_count"`
	Levels      RatingLevels `json:"levels"`
}

// SellerReputation holds a seller's reputation data. All fields may be
// unavailable when the seller lookup fails; that never aborts enrichment
// of the owning product. The upstream API never populates its
// positive/neutral/negative rating fields, so they are not modeled here.
type SellerReputation struct {
	LevelID               string `json:"level_id,omitempty"`
	PowerSellerStatus     string `json:"power_seller_status,omitempty"`
	TransactionsTotal     *int64 `json:"transactions_total,omitempty"`
	TransactionsCompleted *int64 `json:"transactions_completed,omitempty"`
	TransactionsCanceled  *int64 `json:"transactions_canceled,omitempty"`
}

// Degraded reports whether the reputation carries no data at all,
// i.e. the seller sub-query failed or returned an empty object.
func (s SellerReputation) Degraded() bool {
	return s.LevelID == "" && s.PowerSellerStatus == "" &&
		s.TransactionsTotal == nil && s.TransactionsCompleted == nil &&
		s.TransactionsCanceled == nil
}

// EnrichedProduct is one catalog entry merged with its independently
// sourced metrics. A nil Visits means the visit lookup failed.
type EnrichedProduct struct {
	ProductSummary

	Visits *int64           `json:"visits,omitempty"`
	Rating RatingInfo       `json:"rating"`
	Seller SellerReputation `json:"seller_reputation"`
}

// SkippedItem records one malformed catalog entry that was excluded
// from a batch.
type SkippedItem struct {
	Index  int    `json:"index"`
	ItemID string `json:"item_id,omitempty"`
	Reason string `json:"reason"`
}

// EnrichedBatch is an ordered set of enriched products for one category
// fetch. Order equals catalog ranking order, not completion order.
// Batches are replaced wholesale, never mutated.
type EnrichedBatch struct {
	ID         string            `json:"id"`
	Category   string            `json:"category"`
	CategoryID string            `json:"category_id"`
	Limit      int               `json:"limit"`
	FetchedAt  time.Time         `json:"fetched_at"`
	Products   []EnrichedProduct `json:"products"`
	Skipped    []SkippedItem     `json:"skipped,omitempty"`
}

// DegradedCount returns the number of products with at least one
// unavailable metric.
func (b *EnrichedBatch) DegradedCount() int {
	var n int
	for i := range b.Products {
		p := &b.Products[i]
		if p.Visits == nil || p.Rating.Average == nil || p.Seller.Degraded() {
			n++
		}
	}
	return n
}

// FormatCount renders an optional counter, using the unavailable
// sentinel for nil.
func FormatCount(v *int64) string {
	if v == nil {
		return ValueUnavailable
	}
	return fmt.Sprintf("%d", *v)
}

// FormatRating renders an optional rating average, using the unavailable
// sentinel for nil.
func FormatRating(v *float64) string {
	if v == nil {
		return ValueUnavailable
	}
	return fmt.Sprintf("%.1f", *v)
}

// OrUnavailable returns s, or the unavailable sentinel when s is empty.
func OrUnavailable(s string) string {
	if s == "" {
		return ValueUnavailable
	}
	return s
}
