package handlers_test

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/donaldgifford/meli-product-tracker/internal/api/handlers"
	"github.com/donaldgifford/meli-product-tracker/internal/engine"
)

func TestExportHandler_NoBatch(t *testing.T) {
	t.Parallel()

	h := handlers.NewExportHandler(engine.NewSession(""))
	e := echo.New()

	for _, handler := range []echo.HandlerFunc{h.CSV, h.XLSX} {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
}

func TestExportHandler_CSV(t *testing.T) {
	t.Parallel()

	session := engine.NewSession("")
	session.SetBatch(enrichedBatch())

	h := handlers.NewExportHandler(session)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/csv", http.NoBody)
	rec := httptest.NewRecorder()
	require.NoError(t, h.CSV(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t,
		rec.Header().Get(echo.HeaderContentDisposition),
		`electronics_products.csv`,
	)

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Title", records[0][0])
	assert.Equal(t, "Smart TV 55", records[1][0])
}

func TestExportHandler_XLSX(t *testing.T) {
	t.Parallel()

	session := engine.NewSession("")
	session.SetBatch(enrichedBatch())

	h := handlers.NewExportHandler(session)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/xlsx", http.NoBody)
	rec := httptest.NewRecorder()
	require.NoError(t, h.XLSX(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t,
		rec.Header().Get(echo.HeaderContentDisposition),
		`electronics_products.xlsx`,
	)

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Smart TV 55", rows[1][0])
}
