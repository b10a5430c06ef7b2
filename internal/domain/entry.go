package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes receivables from payables. Both kinds share the
// same settlement algorithm; the kind only selects the counterparty role
// and the minimum payment rule.
type EntryKind string

const (
	KindReceivable EntryKind = "receivable"
	KindPayable    EntryKind = "payable"
)

// Valid reports whether the kind is one of the known values.
func (k EntryKind) Valid() bool {
	return k == KindReceivable || k == KindPayable
}

// EntryStatus is the settlement state of a ledger entry.
type EntryStatus string

const (
	StatusOpen    EntryStatus = "open"
	StatusSettled EntryStatus = "settled"
)

// LedgerEntry represents a billable document (an invoice installment to
// receive, or a bill installment to pay).
type LedgerEntry struct {
	ID          string
	Kind        EntryKind
	Document    string
	Installment int
	ContactID   string
	IssueDate   time.Time
	DueDate     time.Time
	FaceValue   decimal.Decimal
	Note        string
	Status      EntryStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TotalPaid folds the paid amount over the entry's settlements. Returns
// exact zero when there are none.
func TotalPaid(settlements []*Settlement) decimal.Decimal {
	total := decimal.Zero
	for _, s := range settlements {
		total = total.Add(s.PaidAmount)
	}
	return total
}

// OutstandingBalance returns face value minus total paid. A negative result
// means stored data already violates the settlement invariant; callers treat
// that as an integrity alarm, not a normal state.
func (e *LedgerEntry) OutstandingBalance(totalPaid decimal.Decimal) decimal.Decimal {
	return e.FaceValue.Sub(totalPaid)
}

// StatusFor derives the entry status from the total paid so far.
func (e *LedgerEntry) StatusFor(totalPaid decimal.Decimal) EntryStatus {
	if e.FaceValue.Sub(totalPaid).LessThanOrEqual(decimal.Zero) {
		return StatusSettled
	}
	return StatusOpen
}

// Validate checks entry fields at creation/update time.
func (e *LedgerEntry) Validate() error {
	if !e.Kind.Valid() {
		return ErrInvalidKind
	}
	if err := ValidateDocument(e.Document); err != nil {
		return err
	}
	if e.Installment < 1 {
		return ErrInvalidInstallment
	}
	if e.ContactID == "" {
		return ErrContactRequired
	}
	if err := ValidateMoneyScale(e.FaceValue); err != nil {
		return err
	}
	if e.FaceValue.LessThan(minFaceValue) {
		return ErrInvalidFaceValue
	}
	return ValidateNote(e.Note)
}

var minFaceValue = decimal.NewFromFloat(0.01)
