package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement represents a partial or full payment applied against a ledger
// entry.
type Settlement struct {
	ID             string
	EntryID        string
	PaymentTermID  string
	InterestAmount decimal.Decimal
	PenaltyAmount  decimal.Decimal
	DiscountAmount decimal.Decimal
	PaidAmount     decimal.Decimal
	SettlementDate time.Time
	CreatedAt      time.Time
}

// SettlementRules holds the per-kind knobs of the settlement validator.
// The receivable/payable split in the books is a configuration difference,
// not two algorithms.
type SettlementRules struct {
	MinimumPayment decimal.Decimal
}

// DefaultSettlementRules returns the standard rules: payments of at least
// one cent.
func DefaultSettlementRules() SettlementRules {
	return SettlementRules{MinimumPayment: decimal.NewFromFloat(0.01)}
}

// ValidateFields checks the settlement's own fields against the rules.
// The cross-entity balance check lives in ValidateAgainstBalance.
func (s *Settlement) ValidateFields(rules SettlementRules) error {
	if s.EntryID == "" {
		return ErrEntryRequired
	}
	if s.PaymentTermID == "" {
		return ErrPaymentTermRequired
	}
	if s.SettlementDate.IsZero() {
		return ErrMissingSettlementDate
	}
	for _, amount := range []decimal.Decimal{s.InterestAmount, s.PenaltyAmount, s.DiscountAmount, s.PaidAmount} {
		if err := ValidateMoneyScale(amount); err != nil {
			return err
		}
	}
	if s.InterestAmount.IsNegative() || s.PenaltyAmount.IsNegative() || s.DiscountAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if s.PaidAmount.LessThan(rules.MinimumPayment) {
		return ErrPaymentBelowMinimum
	}
	return nil
}

// ValidateAgainstBalance enforces the core invariant: the paid amount may
// never exceed the entry's outstanding balance. paidElsewhere is the sum of
// paid amounts over the entry's other settlements, excluding the candidate
// itself when it is being edited.
func (s *Settlement) ValidateAgainstBalance(entry *LedgerEntry, paidElsewhere decimal.Decimal) error {
	available := entry.OutstandingBalance(paidElsewhere)
	if available.IsNegative() {
		available = decimal.Zero
	}
	if s.PaidAmount.GreaterThan(available) {
		return &ExceedsBalanceError{Attempted: s.PaidAmount, Available: available}
	}
	return nil
}
