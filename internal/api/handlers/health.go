// Package handlers implements HTTP handlers for the meli-product-tracker API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/meli-product-tracker/internal/meli"
)

// HealthHandler provides health and readiness endpoints.
type HealthHandler struct {
	tokens meli.TokenProvider
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(tokens meli.TokenProvider) *HealthHandler {
	return &HealthHandler{tokens: tokens}
}

// Healthz returns 200 if the process is running.
func (*HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz returns 200 if a MercadoLibre access token can be served, 503
// otherwise. The token is cached, so after the first success this does
// not hit the network.
func (h *HealthHandler) Readyz(c echo.Context) error {
	if _, err := h.tokens.Token(c.Request().Context()); err != nil {
		return c.JSON(
			http.StatusServiceUnavailable,
			map[string]string{"status": "unavailable"},
		)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
