package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rlopes/contas/internal/adapter/http/dto"
	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/usecase"
)

// PaymentTermService defines the behavior needed by PaymentTermHandler.
type PaymentTermService interface {
	CreatePaymentTerm(ctx context.Context, input usecase.CreatePaymentTermInput) (*domain.PaymentTerm, error)
	GetPaymentTerm(ctx context.Context, id string) (*domain.PaymentTerm, error)
	UpdatePaymentTerm(ctx context.Context, id string, input usecase.UpdatePaymentTermInput) (*domain.PaymentTerm, error)
	DeletePaymentTerm(ctx context.Context, id string) error
	ListPaymentTerms(ctx context.Context, input usecase.ListPaymentTermsInput) ([]*domain.PaymentTerm, error)
}

// PaymentTermHandler handles payment term HTTP requests.
type PaymentTermHandler struct {
	termUC PaymentTermService
}

// NewPaymentTermHandler creates a new PaymentTermHandler.
func NewPaymentTermHandler(termUC PaymentTermService) *PaymentTermHandler {
	return &PaymentTermHandler{termUC: termUC}
}

// Create creates a new payment term.
func (h *PaymentTermHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentTermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	term, err := h.termUC.CreatePaymentTerm(r.Context(), req.ToCreateInput())
	if err != nil {
		writeDomainError(w, err, "failed to create payment term")
		return
	}

	writeJSON(w, http.StatusCreated, dto.PaymentTermFromDomain(term))
}

// Get retrieves a payment term by ID.
func (h *PaymentTermHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment term ID", "")
		return
	}

	term, err := h.termUC.GetPaymentTerm(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get payment term")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentTermFromDomain(term))
}

// Update updates a payment term.
func (h *PaymentTermHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment term ID", "")
		return
	}

	var req dto.PaymentTermRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	term, err := h.termUC.UpdatePaymentTerm(r.Context(), id, req.ToUpdateInput())
	if err != nil {
		writeDomainError(w, err, "failed to update payment term")
		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentTermFromDomain(term))
}

// Delete deletes a payment term. Terms referenced by settlements answer 409.
func (h *PaymentTermHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment term ID", "")
		return
	}

	if err := h.termUC.DeletePaymentTerm(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete payment term")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists payment terms.
func (h *PaymentTermHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	terms, err := h.termUC.ListPaymentTerms(r.Context(), usecase.ListPaymentTermsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list payment terms", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListPaymentTermsResponse{
		PaymentTerms: dto.PaymentTermsFromDomain(terms),
		Total:        int64(len(terms)),
	})
}
