package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rlopes/contas/internal/adapter/http/dto"
	"github.com/rlopes/contas/internal/domain"
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

// writeDomainError writes an error response with the status derived from
// the domain error. A rejected overpayment carries the attempted and
// available amounts so callers can show the shortfall.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	var exceeds *domain.ExceedsBalanceError
	if errors.As(err, &exceeds) {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:     message,
			Message:   err.Error(),
			Attempted: exceeds.Attempted.StringFixed(2),
			Available: exceeds.Available.StringFixed(2),
		})
		return
	}

	writeError(w, mapDomainError(err), message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEntryNotFound),
		errors.Is(err, domain.ErrSettlementNotFound),
		errors.Is(err, domain.ErrContactNotFound),
		errors.Is(err, domain.ErrPaymentTermNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrContactInUse),
		errors.Is(err, domain.ErrPaymentTermInUse):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSettlementExceedsBalance),
		errors.Is(err, domain.ErrFaceValueBelowPaid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrSettlementMismatch),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidDocument),
		errors.Is(err, domain.ErrInvalidInstallment),
		errors.Is(err, domain.ErrInvalidFaceValue),
		errors.Is(err, domain.ErrInvalidMoneyScale),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrPaymentBelowMinimum),
		errors.Is(err, domain.ErrMissingSettlementDate),
		errors.Is(err, domain.ErrNoteTooLong),
		errors.Is(err, domain.ErrContactRequired),
		errors.Is(err, domain.ErrEntryRequired),
		errors.Is(err, domain.ErrPaymentTermRequired),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidEmail):
		return http.StatusBadRequest
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
