package usecase

import (
	"context"
	"time"

	"github.com/rlopes/contas/internal/domain"
)

// PaymentTermUseCase handles the payment-terms registry.
type PaymentTermUseCase struct {
	paymentTermRepo PaymentTermRepository
	idGen           IDGenerator
}

// NewPaymentTermUseCase creates a new PaymentTermUseCase.
func NewPaymentTermUseCase(paymentTermRepo PaymentTermRepository, idGen IDGenerator) *PaymentTermUseCase {
	return &PaymentTermUseCase{
		paymentTermRepo: paymentTermRepo,
		idGen:           idGen,
	}
}

// CreatePaymentTermInput represents input for creating a payment term.
type CreatePaymentTermInput struct {
	Name             string
	InstallmentCount int
}

// CreatePaymentTerm creates a new payment term.
func (uc *PaymentTermUseCase) CreatePaymentTerm(ctx context.Context, input CreatePaymentTermInput) (*domain.PaymentTerm, error) {
	now := time.Now().UTC()

	installments := input.InstallmentCount
	if installments == 0 {
		installments = 1
	}

	term := &domain.PaymentTerm{
		ID:               uc.idGen.Generate(),
		Name:             input.Name,
		InstallmentCount: installments,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := term.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentTermRepo.Create(ctx, term); err != nil {
		return nil, err
	}

	return term, nil
}

// GetPaymentTerm retrieves a payment term by ID.
func (uc *PaymentTermUseCase) GetPaymentTerm(ctx context.Context, id string) (*domain.PaymentTerm, error) {
	return uc.paymentTermRepo.GetByID(ctx, id)
}

// UpdatePaymentTermInput represents input for updating a payment term.
type UpdatePaymentTermInput struct {
	Name             string
	InstallmentCount int
}

// UpdatePaymentTerm updates a payment term.
func (uc *PaymentTermUseCase) UpdatePaymentTerm(ctx context.Context, id string, input UpdatePaymentTermInput) (*domain.PaymentTerm, error) {
	term, err := uc.paymentTermRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	term.Name = input.Name
	term.InstallmentCount = input.InstallmentCount
	term.UpdatedAt = time.Now().UTC()

	if err := term.Validate(); err != nil {
		return nil, err
	}

	if err := uc.paymentTermRepo.Update(ctx, term); err != nil {
		return nil, err
	}

	return term, nil
}

// DeletePaymentTerm deletes a payment term. Deletion is restricted while
// settlements reference the term; the repository surfaces that as
// domain.ErrPaymentTermInUse.
func (uc *PaymentTermUseCase) DeletePaymentTerm(ctx context.Context, id string) error {
	if _, err := uc.paymentTermRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return uc.paymentTermRepo.Delete(ctx, id)
}

// ListPaymentTermsInput represents input for listing payment terms.
type ListPaymentTermsInput struct {
	Limit  int
	Offset int
}

// ListPaymentTerms lists payment terms with pagination.
func (uc *PaymentTermUseCase) ListPaymentTerms(ctx context.Context, input ListPaymentTermsInput) ([]*domain.PaymentTerm, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.paymentTermRepo.List(ctx, limit, offset)
}
