package meli

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success HTTP response from the MercadoLibre API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercadolibre API error (status %d): %s", e.StatusCode, e.Body)
}

// IsAuth reports whether the response indicates an invalid or expired
// credential.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized ||
		e.StatusCode == http.StatusForbidden
}

// IsAuthError reports whether err wraps an authentication-failure APIError.
func IsAuthError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.IsAuth()
}

// MalformedItemError marks a catalog entry that cannot be enriched because
// it is missing a required key. It isolates to that single item; the
// owning batch is never aborted by it.
type MalformedItemError struct {
	Index  int
	ItemID string
	Reason string
}

// AsMalformedItemError unwraps err into a *MalformedItemError, when it
// is one.
func AsMalformedItemError(err error) (*MalformedItemError, bool) {
	var mie *MalformedItemError
	ok := errors.As(err, &mie)
	return mie, ok
}

func (e *MalformedItemError) Error() string {
	id := e.ItemID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("malformed catalog entry %s at index %d: %s", id, e.Index, e.Reason)
}
