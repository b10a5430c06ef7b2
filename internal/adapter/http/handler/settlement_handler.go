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

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	RecordSettlement(ctx context.Context, entryID string, input usecase.RecordSettlementInput) (*domain.Settlement, error)
	UpdateSettlement(ctx context.Context, entryID, settlementID string, input usecase.RecordSettlementInput) (*domain.Settlement, error)
	ReverseSettlement(ctx context.Context, entryID, settlementID string) error
	ListSettlements(ctx context.Context, entryID string) ([]*domain.Settlement, error)
	GetSettlement(ctx context.Context, entryID, settlementID string) (*domain.Settlement, error)
}

// SettlementHandler handles settlement HTTP requests for one entry kind.
// The kind scoping keeps payable settlements off receivable routes; the
// balance rule itself is enforced inside the use case transaction.
type SettlementHandler struct {
	settlementUC SettlementService
	entryUC      EntryService
	kind         domain.EntryKind
}

// NewSettlementHandler creates a new SettlementHandler bound to a kind.
func NewSettlementHandler(settlementUC SettlementService, entryUC EntryService, kind domain.EntryKind) *SettlementHandler {
	return &SettlementHandler{
		settlementUC: settlementUC,
		entryUC:      entryUC,
		kind:         kind,
	}
}

// Record records a payment against an entry.
func (h *SettlementHandler) Record(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.entryForRequest(w, r)
	if !ok {
		return
	}

	var req dto.SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settlement, err := h.settlementUC.RecordSettlement(r.Context(), entryID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to record settlement")
		return
	}

	writeJSON(w, http.StatusCreated, dto.SettlementFromDomain(settlement))
}

// Update edits an existing settlement.
func (h *SettlementHandler) Update(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.entryForRequest(w, r)
	if !ok {
		return
	}

	settlementID := chi.URLParam(r, "settlementID")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	var req dto.SettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	settlement, err := h.settlementUC.UpdateSettlement(r.Context(), entryID, settlementID, req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to update settlement")
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(settlement))
}

// Reverse deletes a settlement, reopening the entry when the remaining
// paid total drops below the face value.
func (h *SettlementHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.entryForRequest(w, r)
	if !ok {
		return
	}

	settlementID := chi.URLParam(r, "settlementID")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	if err := h.settlementUC.ReverseSettlement(r.Context(), entryID, settlementID); err != nil {
		writeDomainError(w, err, "failed to reverse settlement")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists an entry's settlements.
func (h *SettlementHandler) List(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.entryForRequest(w, r)
	if !ok {
		return
	}

	settlements, err := h.settlementUC.ListSettlements(r.Context(), entryID)
	if err != nil {
		writeDomainError(w, err, "failed to list settlements")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListSettlementsResponse{
		Settlements: dto.SettlementsFromDomain(settlements),
		Total:       int64(len(settlements)),
	})
}

// Get retrieves one settlement of an entry.
func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.entryForRequest(w, r)
	if !ok {
		return
	}

	settlementID := chi.URLParam(r, "settlementID")
	if settlementID == "" {
		writeError(w, http.StatusBadRequest, "missing settlement ID", "")
		return
	}

	settlement, err := h.settlementUC.GetSettlement(r.Context(), entryID, settlementID)
	if err != nil {
		writeDomainError(w, err, "failed to get settlement")
		return
	}

	writeJSON(w, http.StatusOK, dto.SettlementFromDomain(settlement))
}

// entryForRequest resolves the entry ID and hides entries of the other
// kind behind a 404.
func (h *SettlementHandler) entryForRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	entryID := chi.URLParam(r, "id")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return "", false
	}

	if _, err := h.entryUC.GetEntry(r.Context(), h.kind, entryID); err != nil {
		writeDomainError(w, err, "failed to get entry")
		return "", false
	}

	return entryID, true
}
