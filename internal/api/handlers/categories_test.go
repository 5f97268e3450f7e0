package handlers_test

import (
	"encoding/json"
	"net/http"
	"sort"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/meli-product-tracker/internal/api/handlers"
	"github.com/donaldgifford/meli-product-tracker/internal/meli"
)

func TestCategoriesHandler_List(t *testing.T) {
	t.Parallel()

	h := handlers.NewCategoriesHandler()
	_, api := humatest.New(t)
	handlers.RegisterCategoriesRoutes(api, h)

	resp := api.Get("/api/v1/categories")
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		Categories []handlers.Category `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))

	require.Len(t, out.Categories, len(meli.Categories))

	names := make([]string, 0, len(out.Categories))
	for _, c := range out.Categories {
		names = append(names, c.Name)
		wantID, ok := meli.CategoryID(c.Name)
		require.True(t, ok)
		assert.Equal(t, wantID, c.ID)
	}
	assert.True(t, sort.StringsAreSorted(names))
}
