package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/meli-product-tracker/internal/meli"
)

// CategoriesHandler serves the curated category table.
type CategoriesHandler struct{}

// NewCategoriesHandler creates a new CategoriesHandler.
func NewCategoriesHandler() *CategoriesHandler {
	return &CategoriesHandler{}
}

// Category is one selectable category.
type Category struct {
	Name string `json:"name" example:"Electronics"`
	ID   string `json:"id" example:"MLC1000"`
}

// CategoriesOutput is the response body for the categories endpoint.
type CategoriesOutput struct {
	Body struct {
		Categories []Category `json:"categories" doc:"Selectable categories, sorted by name"`
	}
}

// List returns the category table in stable name order.
func (*CategoriesHandler) List(_ context.Context, _ *struct{}) (*CategoriesOutput, error) {
	names := meli.CategoryNames()

	out := &CategoriesOutput{}
	out.Body.Categories = make([]Category, 0, len(names))
	for _, name := range names {
		id, _ := meli.CategoryID(name)
		out.Body.Categories = append(out.Body.Categories, Category{Name: name, ID: id})
	}
	return out, nil
}

// RegisterCategoriesRoutes registers category endpoints with the Huma API.
func RegisterCategoriesRoutes(api huma.API, h *CategoriesHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns the curated category table, sorted by name.",
		Tags:        []string{"categories"},
	}, h.List)
}
