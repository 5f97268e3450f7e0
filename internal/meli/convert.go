package meli

import (
	domain "github.com/donaldgifford/meli-product-tracker/pkg/types"
)

// ToProducts converts search API items into domain product summaries,
// preserving order.
func ToProducts(items []SearchItem) []domain.ProductSummary {
	products := make([]domain.ProductSummary, 0, len(items))
	for i := range items {
		products = append(products, ToProduct(&items[i]))
	}
	return products
}

// ToProduct converts one search API item into a domain product summary.
// Absent numeric fields stay at zero so derived arithmetic is always
// well-defined.
func ToProduct(item *SearchItem) domain.ProductSummary {
	p := domain.ProductSummary{
		ID:                item.ID,
		Title:             item.Title,
		Price:             item.Price,
		AvailableQuantity: item.AvailableQuantity,
		SoldQuantity:      item.SoldQuantity,
		Condition:         item.Condition,
		Permalink:         item.Permalink,
	}
	if item.Seller != nil {
		p.SellerID = item.Seller.ID
	}
	return p
}
