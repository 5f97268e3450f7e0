package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/meli-product-tracker/internal/engine"
	"github.com/donaldgifford/meli-product-tracker/internal/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the session batch as downloadable CSV or XLSX.
// Raw echo handlers: file downloads don't fit huma's JSON envelope.
type ExportHandler struct {
	session *engine.Session
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(session *engine.Session) *ExportHandler {
	return &ExportHandler{session: session}
}

// CSV serves the current batch as a CSV attachment.
func (h *ExportHandler) CSV(c echo.Context) error {
	batch := h.session.Batch()
	if batch == nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "no batch fetched yet",
		})
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, batch); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "export failed: " + err.Error(),
		})
	}

	setAttachment(c, export.Filename(batch, "csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// XLSX serves the current batch as an Excel attachment.
func (h *ExportHandler) XLSX(c echo.Context) error {
	batch := h.session.Batch()
	if batch == nil {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "no batch fetched yet",
		})
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, batch); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "export failed: " + err.Error(),
		})
	}

	setAttachment(c, export.Filename(batch, "xlsx"))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func setAttachment(c echo.Context, filename string) {
	c.Response().Header().Set(
		echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", filename),
	)
}
