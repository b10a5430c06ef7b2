package usecase

import (
	"context"
	"time"

	"github.com/rlopes/contas/internal/domain"
)

// ContactUseCase handles counterparty registry logic.
type ContactUseCase struct {
	contactRepo ContactRepository
	idGen       IDGenerator
}

// NewContactUseCase creates a new ContactUseCase.
func NewContactUseCase(contactRepo ContactRepository, idGen IDGenerator) *ContactUseCase {
	return &ContactUseCase{
		contactRepo: contactRepo,
		idGen:       idGen,
	}
}

// CreateContactInput represents input for creating a contact.
type CreateContactInput struct {
	Name  string
	Email string
	Phone string
}

// CreateContact creates a new contact.
func (uc *ContactUseCase) CreateContact(ctx context.Context, input CreateContactInput) (*domain.Contact, error) {
	now := time.Now().UTC()

	contact := &domain.Contact{
		ID:        uc.idGen.Generate(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	if err := uc.contactRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// GetContact retrieves a contact by ID.
func (uc *ContactUseCase) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	return uc.contactRepo.GetByID(ctx, id)
}

// UpdateContactInput represents input for updating a contact.
type UpdateContactInput struct {
	Name   string
	Email  string
	Phone  string
	Active bool
}

// UpdateContact updates a contact.
func (uc *ContactUseCase) UpdateContact(ctx context.Context, id string, input UpdateContactInput) (*domain.Contact, error) {
	contact, err := uc.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.Name = input.Name
	contact.Email = input.Email
	contact.Phone = input.Phone
	contact.Active = input.Active
	contact.UpdatedAt = time.Now().UTC()

	if err := contact.Validate(); err != nil {
		return nil, err
	}

	if err := uc.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	return contact, nil
}

// DeleteContact deletes a contact. Deletion is restricted while ledger
// entries reference the contact; the repository surfaces that as
// domain.ErrContactInUse.
func (uc *ContactUseCase) DeleteContact(ctx context.Context, id string) error {
	if _, err := uc.contactRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.contactRepo.Delete(ctx, id)
}

// ListContactsInput represents input for listing contacts.
type ListContactsInput struct {
	Limit  int
	Offset int
}

// ListContacts lists contacts with pagination.
func (uc *ContactUseCase) ListContacts(ctx context.Context, input ListContactsInput) ([]*domain.Contact, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.contactRepo.List(ctx, limit, offset)
}
