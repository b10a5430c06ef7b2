package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rlopes/contas/internal/adapter/http/dto"
	"github.com/rlopes/contas/internal/domain"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"entry not found", domain.ErrEntryNotFound, http.StatusNotFound},
		{"settlement not found", domain.ErrSettlementNotFound, http.StatusNotFound},
		{"contact in use", domain.ErrContactInUse, http.StatusConflict},
		{"payment term in use", domain.ErrPaymentTermInUse, http.StatusConflict},
		{"exceeds balance", domain.ErrSettlementExceedsBalance, http.StatusUnprocessableEntity},
		{"face value below paid", domain.ErrFaceValueBelowPaid, http.StatusUnprocessableEntity},
		{"below minimum", domain.ErrPaymentBelowMinimum, http.StatusBadRequest},
		{"invalid document", domain.ErrInvalidDocument, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Fatalf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWriteDomainErrorIncludesAmounts(t *testing.T) {
	rec := httptest.NewRecorder()

	err := &domain.ExceedsBalanceError{
		Attempted: decimal.RequireFromString("40.01"),
		Available: decimal.RequireFromString("40"),
	}
	writeDomainError(rec, err, "failed to record settlement")

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Attempted != "40.01" || resp.Available != "40.00" {
		t.Fatalf("expected fixed-scale amounts, got %+v", resp)
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&bad=x", nil)

	if got := parseIntQuery(req, "limit", 20); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := parseIntQuery(req, "missing", 20); got != 20 {
		t.Fatalf("expected default 20, got %d", got)
	}
	if got := parseIntQuery(req, "bad", 20); got != 20 {
		t.Fatalf("expected default for invalid value, got %d", got)
	}
}
