package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/gofintrack/internal/adapter/http/dto"
	"github.com/iho/gofintrack/internal/adapter/http/middleware"
	"github.com/iho/gofintrack/internal/domain"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

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

// writeDomainError maps err to a status and writes it. Internal errors do
// not leak their details.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := mapDomainError(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, message, "internal error")
		return
	}
	writeError(w, status, message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidDescription),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrNoteTooLong),
		errors.Is(err, domain.ErrMissingOwner),
		errors.Is(err, domain.ErrInvalidIDFormat):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// requireOwner returns the authenticated owner ID or writes 401.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner, ok := middleware.GetOwnerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing owner")
		return "", false
	}
	return owner.ID, true
}
