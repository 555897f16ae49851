// Package httpapi exposes the JSON HTTP boundary of the storefront.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mmynk/standout/internal/service"
	"github.com/mmynk/standout/internal/storage"
)

// jsonError represents a JSON error payload.
type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, jsonError{Error: message, Details: details})
}

// writeDomainError maps domain errors onto HTTP responses:
// validation 400, insufficient stock 409 (naming the product), missing
// records 404, anything else 500.
func writeDomainError(w http.ResponseWriter, err error) {
	var stockErr *storage.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidQuantity):
		WriteJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.As(err, &stockErr):
		WriteJSONError(w, http.StatusConflict, "insufficient_stock", stockErr.Error())
	case errors.Is(err, storage.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
	}
}
