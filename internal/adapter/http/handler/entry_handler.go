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

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	CreateEntry(ctx context.Context, kind domain.EntryKind, input usecase.CreateEntryInput) (*domain.LedgerEntry, error)
	GetEntry(ctx context.Context, kind domain.EntryKind, id string) (*usecase.EntryWithBalance, error)
	ListEntries(ctx context.Context, kind domain.EntryKind, input usecase.ListEntriesInput) ([]*domain.LedgerEntry, error)
	UpdateEntry(ctx context.Context, kind domain.EntryKind, id string, input usecase.UpdateEntryInput) (*domain.LedgerEntry, error)
	DeleteEntry(ctx context.Context, kind domain.EntryKind, id string) error
	CheckIntegrity(ctx context.Context) ([]string, error)
}

// EntryHandler handles ledger entry HTTP requests for one entry kind.
// Receivable and payable route trees each get their own instance.
type EntryHandler struct {
	entryUC EntryService
	kind    domain.EntryKind
}

// NewEntryHandler creates a new EntryHandler bound to a kind.
func NewEntryHandler(entryUC EntryService, kind domain.EntryKind) *EntryHandler {
	return &EntryHandler{entryUC: entryUC, kind: kind}
}

// Create creates a new ledger entry.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.CreateEntry(r.Context(), h.kind, req.ToCreateInput())
	if err != nil {
		writeDomainError(w, err, "failed to create entry")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Get retrieves an entry with its paid total and outstanding balance.
func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	balance, err := h.entryUC.GetEntry(r.Context(), h.kind, id)
	if err != nil {
		writeDomainError(w, err, "failed to get entry")
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryBalanceFromDomain(balance))
}

// List lists entries of the handler's kind.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.entryUC.ListEntries(r.Context(), h.kind, usecase.ListEntriesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// Update updates an entry's own fields.
func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.entryUC.UpdateEntry(r.Context(), h.kind, id, req.ToUpdateInput())
	if err != nil {
		writeDomainError(w, err, "failed to update entry")
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete deletes an entry and its settlements.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.entryUC.DeleteEntry(r.Context(), h.kind, id); err != nil {
		writeDomainError(w, err, "failed to delete entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Integrity reports entries whose settlements exceed the face value.
func (h *EntryHandler) Integrity(w http.ResponseWriter, r *http.Request) {
	overshot, err := h.entryUC.CheckIntegrity(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check integrity", err.Error())
		return
	}

	if overshot == nil {
		overshot = []string{}
	}

	writeJSON(w, http.StatusOK, dto.IntegrityResponse{
		Overshot: overshot,
		Healthy:  len(overshot) == 0,
	})
}
