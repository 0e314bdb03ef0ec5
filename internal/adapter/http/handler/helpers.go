package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/contaec/contaledger/internal/adapter/http/dto"
	"github.com/contaec/contaledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	var (
		notConfigured *domain.AccountNotConfiguredError
		incomplete    *domain.IncompleteInvoiceError
		unbalanced    *domain.UnbalancedEntryError
	)

	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, domain.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvoiceNotSent),
		errors.Is(err, domain.ErrInvoiceNotPosted):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTotalMismatch),
		errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrAccountRejectsMovement):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notConfigured),
		errors.As(err, &incomplete),
		errors.As(err, &unbalanced):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
