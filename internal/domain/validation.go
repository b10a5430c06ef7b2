package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDocumentLength = 20
	MaxNoteLength     = 500
	MoneyScale        = 2
)

var documentRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateDocument validates a billable document identifier.
func ValidateDocument(document string) error {
	document = strings.TrimSpace(document)

	if document == "" {
		return fmt.Errorf("%w: document cannot be empty", ErrInvalidDocument)
	}

	if len(document) > MaxDocumentLength {
		return fmt.Errorf("%w: document exceeds %d characters", ErrInvalidDocument, MaxDocumentLength)
	}

	if !documentRegex.MatchString(document) {
		return ErrInvalidDocument
	}

	return nil
}

// ValidateNote validates the optional free-text note.
func ValidateNote(note string) error {
	if len(note) > MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrNoteTooLong, MaxNoteLength)
	}

	return nil
}

// ValidateMoneyScale rejects amounts carrying more than 2 fractional
// digits. Monetary values enter the system already at cent precision, so
// no arithmetic downstream ever needs to round.
func ValidateMoneyScale(amount decimal.Decimal) error {
	if amount.Exponent() < -MoneyScale {
		return fmt.Errorf("%w: got %s", ErrInvalidMoneyScale, amount.String())
	}

	return nil
}

// ValidateEmail validates email format. Empty is allowed; contacts are not
// required to have one.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if email == "" {
		return nil
	}

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 100
	const defaultPageSize = 20

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
