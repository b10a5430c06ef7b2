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

// ContactService defines the behavior needed by ContactHandler.
type ContactService interface {
	CreateContact(ctx context.Context, input usecase.CreateContactInput) (*domain.Contact, error)
	GetContact(ctx context.Context, id string) (*domain.Contact, error)
	UpdateContact(ctx context.Context, id string, input usecase.UpdateContactInput) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id string) error
	ListContacts(ctx context.Context, input usecase.ListContactsInput) ([]*domain.Contact, error)
}

// ContactHandler handles contact HTTP requests.
type ContactHandler struct {
	contactUC ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactUC ContactService) *ContactHandler {
	return &ContactHandler{contactUC: contactUC}
}

// Create creates a new contact.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	contact, err := h.contactUC.CreateContact(r.Context(), req.ToCreateInput())
	if err != nil {
		writeDomainError(w, err, "failed to create contact")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ContactFromDomain(contact))
}

// Get retrieves a contact by ID.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing contact ID", "")
		return
	}

	contact, err := h.contactUC.GetContact(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get contact")
		return
	}

	writeJSON(w, http.StatusOK, dto.ContactFromDomain(contact))
}

// Update updates a contact.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing contact ID", "")
		return
	}

	var req dto.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	contact, err := h.contactUC.UpdateContact(r.Context(), id, req.ToUpdateInput())
	if err != nil {
		writeDomainError(w, err, "failed to update contact")
		return
	}

	writeJSON(w, http.StatusOK, dto.ContactFromDomain(contact))
}

// Delete deletes a contact. Contacts referenced by entries answer 409.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing contact ID", "")
		return
	}

	if err := h.contactUC.DeleteContact(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete contact")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	contacts, err := h.contactUC.ListContacts(r.Context(), usecase.ListContactsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list contacts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListContactsResponse{
		Contacts: dto.ContactsFromDomain(contacts),
		Total:    int64(len(contacts)),
	})
}
