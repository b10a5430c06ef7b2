package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Not-found errors
	ErrEntryNotFound       = errors.New("ledger entry not found")
	ErrSettlementNotFound  = errors.New("settlement not found")
	ErrContactNotFound     = errors.New("contact not found")
	ErrPaymentTermNotFound = errors.New("payment term not found")

	// Referential integrity errors
	ErrContactInUse     = errors.New("contact is referenced by ledger entries")
	ErrPaymentTermInUse = errors.New("payment term is referenced by settlements")

	// Settlement errors
	ErrSettlementExceedsBalance = errors.New("settlement exceeds outstanding balance")
	ErrSettlementMismatch       = errors.New("settlement does not belong to entry")

	// Field validation errors
	ErrInvalidKind           = errors.New("invalid entry kind")
	ErrInvalidDocument       = errors.New("document must be alphanumeric")
	ErrInvalidInstallment    = errors.New("installment must be at least 1")
	ErrInvalidFaceValue      = errors.New("face value must be at least 0.01")
	ErrInvalidMoneyScale     = errors.New("amount must have at most 2 decimal places")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrPaymentBelowMinimum   = errors.New("paid amount below minimum payment")
	ErrMissingSettlementDate = errors.New("settlement date is required")
	ErrNoteTooLong           = errors.New("note exceeds maximum length")
	ErrContactRequired       = errors.New("contact is required")
	ErrEntryRequired         = errors.New("ledger entry is required")
	ErrPaymentTermRequired   = errors.New("payment term is required")
	ErrInvalidName           = errors.New("name is required")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrFaceValueBelowPaid    = errors.New("face value cannot be lower than amount already paid")
)

// ExceedsBalanceError reports a settlement that would overshoot the entry's
// outstanding balance, carrying both amounts for user-facing messaging.
type ExceedsBalanceError struct {
	Attempted decimal.Decimal
	Available decimal.Decimal
}

func (e *ExceedsBalanceError) Error() string {
	return fmt.Sprintf("paid amount %s exceeds outstanding balance %s",
		e.Attempted.StringFixed(2), e.Available.StringFixed(2))
}

// Is makes the typed error match the ErrSettlementExceedsBalance sentinel.
func (e *ExceedsBalanceError) Is(target error) bool {
	return target == ErrSettlementExceedsBalance
}
