package handlers_test

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/meli-product-tracker/internal/api/handlers"
	"github.com/donaldgifford/meli-product-tracker/internal/engine"
)

func TestBatchHandler_Get_NoBatch(t *testing.T) {
	t.Parallel()

	h := handlers.NewBatchHandler(engine.NewSession(""))
	_, api := humatest.New(t)
	handlers.RegisterBatchRoutes(api, h)

	resp := api.Get("/api/v1/batch")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "no batch fetched yet")
}

func TestBatchHandler_Get(t *testing.T) {
	t.Parallel()

	session := engine.NewSession("")
	session.SetBatch(enrichedBatch())

	h := handlers.NewBatchHandler(session)
	_, api := humatest.New(t)
	handlers.RegisterBatchRoutes(api, h)

	resp := api.Get("/api/v1/batch")
	require.Equal(t, http.StatusOK, resp.Code)

	body := resp.Body.String()
	assert.Contains(t, body, `"id":"batch-1"`)
	assert.Contains(t, body, `"Smart TV 55"`)
	assert.Contains(t, body, `"missing seller id"`)
	// Second product has every enrichment field unavailable.
	assert.Contains(t, body, `"degraded":1`)
}
