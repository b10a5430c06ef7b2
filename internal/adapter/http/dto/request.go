package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rlopes/contas/internal/usecase"
)

// EntryRequest represents a request to create or update a ledger entry.
type EntryRequest struct {
	Document    string          `json:"document"`
	Installment int             `json:"installment"`
	ContactID   string          `json:"contact_id"`
	IssueDate   *time.Time      `json:"issue_date,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	FaceValue   decimal.Decimal `json:"face_value"`
	Note        string          `json:"note,omitempty"`
}

// ToCreateInput converts to use case input.
func (r *EntryRequest) ToCreateInput() usecase.CreateEntryInput {
	input := usecase.CreateEntryInput{
		Document:    r.Document,
		Installment: r.Installment,
		ContactID:   r.ContactID,
		FaceValue:   r.FaceValue,
		Note:        r.Note,
	}
	if r.IssueDate != nil {
		input.IssueDate = *r.IssueDate
	}
	if r.DueDate != nil {
		input.DueDate = *r.DueDate
	}
	return input
}

// ToUpdateInput converts to use case input.
func (r *EntryRequest) ToUpdateInput() usecase.UpdateEntryInput {
	input := usecase.UpdateEntryInput{
		Document:    r.Document,
		Installment: r.Installment,
		ContactID:   r.ContactID,
		FaceValue:   r.FaceValue,
		Note:        r.Note,
	}
	if r.IssueDate != nil {
		input.IssueDate = *r.IssueDate
	}
	if r.DueDate != nil {
		input.DueDate = *r.DueDate
	}
	return input
}

// SettlementRequest represents a request to record or edit a settlement.
type SettlementRequest struct {
	PaymentTermID  string          `json:"payment_term_id"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
	PenaltyAmount  decimal.Decimal `json:"penalty_amount"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	SettlementDate *time.Time      `json:"settlement_date,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SettlementRequest) ToUseCaseInput() usecase.RecordSettlementInput {
	input := usecase.RecordSettlementInput{
		PaymentTermID:  r.PaymentTermID,
		InterestAmount: r.InterestAmount,
		PenaltyAmount:  r.PenaltyAmount,
		DiscountAmount: r.DiscountAmount,
		PaidAmount:     r.PaidAmount,
	}
	if r.SettlementDate != nil {
		input.SettlementDate = *r.SettlementDate
	}
	return input
}

// ContactRequest represents a request to create or update a contact.
type ContactRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

// ToCreateInput converts to use case input.
func (r *ContactRequest) ToCreateInput() usecase.CreateContactInput {
	return usecase.CreateContactInput{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
	}
}

// ToUpdateInput converts to use case input. A missing active flag keeps
// the contact active.
func (r *ContactRequest) ToUpdateInput() usecase.UpdateContactInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return usecase.UpdateContactInput{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Active: active,
	}
}

// PaymentTermRequest represents a request to create or update a payment term.
type PaymentTermRequest struct {
	Name             string `json:"name"`
	InstallmentCount int    `json:"installment_count"`
}

// ToCreateInput converts to use case input.
func (r *PaymentTermRequest) ToCreateInput() usecase.CreatePaymentTermInput {
	return usecase.CreatePaymentTermInput{
		Name:             r.Name,
		InstallmentCount: r.InstallmentCount,
	}
}

// ToUpdateInput converts to use case input.
func (r *PaymentTermRequest) ToUpdateInput() usecase.UpdatePaymentTermInput {
	return usecase.UpdatePaymentTermInput{
		Name:             r.Name,
		InstallmentCount: r.InstallmentCount,
	}
}
