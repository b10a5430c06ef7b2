package dto

import (
	"time"

	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/usecase"
)

// Monetary amounts leave the API as strings with exactly two decimal
// places, so "40.00" and "40" never diverge between clients.

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Document    string    `json:"document"`
	Installment int       `json:"installment"`
	ContactID   string    `json:"contact_id"`
	IssueDate   time.Time `json:"issue_date"`
	DueDate     time.Time `json:"due_date"`
	FaceValue   string    `json:"face_value"`
	Note        string    `json:"note,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:          e.ID,
		Kind:        string(e.Kind),
		Document:    e.Document,
		Installment: e.Installment,
		ContactID:   e.ContactID,
		IssueDate:   e.IssueDate,
		DueDate:     e.DueDate,
		FaceValue:   e.FaceValue.StringFixed(2),
		Note:        e.Note,
		Status:      string(e.Status),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// EntryBalanceResponse is an entry together with its derived amounts.
type EntryBalanceResponse struct {
	EntryResponse

	TotalPaid   string `json:"total_paid"`
	Outstanding string `json:"outstanding"`
}

// EntryBalanceFromDomain converts an entry with balance to a response.
func EntryBalanceFromDomain(b *usecase.EntryWithBalance) *EntryBalanceResponse {
	return &EntryBalanceResponse{
		EntryResponse: *EntryFromDomain(b.Entry),
		TotalPaid:     b.TotalPaid.StringFixed(2),
		Outstanding:   b.Outstanding.StringFixed(2),
	}
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// SettlementResponse represents a settlement in API responses.
type SettlementResponse struct {
	ID             string    `json:"id"`
	EntryID        string    `json:"entry_id"`
	PaymentTermID  string    `json:"payment_term_id"`
	InterestAmount string    `json:"interest_amount"`
	PenaltyAmount  string    `json:"penalty_amount"`
	DiscountAmount string    `json:"discount_amount"`
	PaidAmount     string    `json:"paid_amount"`
	SettlementDate time.Time `json:"settlement_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// SettlementFromDomain converts a domain settlement to a response.
func SettlementFromDomain(s *domain.Settlement) *SettlementResponse {
	return &SettlementResponse{
		ID:             s.ID,
		EntryID:        s.EntryID,
		PaymentTermID:  s.PaymentTermID,
		InterestAmount: s.InterestAmount.StringFixed(2),
		PenaltyAmount:  s.PenaltyAmount.StringFixed(2),
		DiscountAmount: s.DiscountAmount.StringFixed(2),
		PaidAmount:     s.PaidAmount.StringFixed(2),
		SettlementDate: s.SettlementDate,
		CreatedAt:      s.CreatedAt,
	}
}

// SettlementsFromDomain converts domain settlements to responses.
func SettlementsFromDomain(settlements []*domain.Settlement) []*SettlementResponse {
	result := make([]*SettlementResponse, len(settlements))
	for i, s := range settlements {
		result[i] = SettlementFromDomain(s)
	}
	return result
}

// ListSettlementsResponse wraps an entry's settlements.
type ListSettlementsResponse struct {
	Settlements []*SettlementResponse `json:"settlements"`
	Total       int64                 `json:"total"`
}

// ContactResponse represents a contact in API responses.
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactFromDomain converts a domain contact to a response.
func ContactFromDomain(c *domain.Contact) *ContactResponse {
	return &ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ContactsFromDomain converts domain contacts to responses.
func ContactsFromDomain(contacts []*domain.Contact) []*ContactResponse {
	result := make([]*ContactResponse, len(contacts))
	for i, c := range contacts {
		result[i] = ContactFromDomain(c)
	}
	return result
}

// ListContactsResponse wraps a page of contacts.
type ListContactsResponse struct {
	Contacts []*ContactResponse `json:"contacts"`
	Total    int64              `json:"total"`
}

// PaymentTermResponse represents a payment term in API responses.
type PaymentTermResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	InstallmentCount int       `json:"installment_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// PaymentTermFromDomain converts a domain payment term to a response.
func PaymentTermFromDomain(p *domain.PaymentTerm) *PaymentTermResponse {
	return &PaymentTermResponse{
		ID:               p.ID,
		Name:             p.Name,
		InstallmentCount: p.InstallmentCount,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

// PaymentTermsFromDomain converts domain payment terms to responses.
func PaymentTermsFromDomain(terms []*domain.PaymentTerm) []*PaymentTermResponse {
	result := make([]*PaymentTermResponse, len(terms))
	for i, p := range terms {
		result[i] = PaymentTermFromDomain(p)
	}
	return result
}

// ListPaymentTermsResponse wraps a page of payment terms.
type ListPaymentTermsResponse struct {
	PaymentTerms []*PaymentTermResponse `json:"payment_terms"`
	Total        int64                  `json:"total"`
}

// IntegrityResponse reports entries whose settlements exceed the face value.
type IntegrityResponse struct {
	Overshot []string `json:"overshot"`
	Healthy  bool     `json:"healthy"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	Attempted string `json:"attempted,omitempty"`
	Available string `json:"available,omitempty"`
}
