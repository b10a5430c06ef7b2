package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateDocument(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		if err := ValidateDocument("NF1042A"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty document rejected", func(t *testing.T) {
		err := ValidateDocument("   ")
		if !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument, got %v", err)
		}
	})

	t.Run("document too long", func(t *testing.T) {
		tooLong := strings.Repeat("9", MaxDocumentLength+1)
		err := ValidateDocument(tooLong)
		if !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument, got %v", err)
		}
	})

	t.Run("punctuation rejected", func(t *testing.T) {
		err := ValidateDocument("NF-1042")
		if !errors.Is(err, ErrInvalidDocument) {
			t.Fatalf("expected ErrInvalidDocument, got %v", err)
		}
	})
}

func TestValidateNote(t *testing.T) {
	t.Parallel()

	if err := ValidateNote(""); err != nil {
		t.Fatalf("empty note should pass, got %v", err)
	}

	if err := ValidateNote(strings.Repeat("a", MaxNoteLength)); err != nil {
		t.Fatalf("note at limit should pass, got %v", err)
	}

	if err := ValidateNote(strings.Repeat("a", MaxNoteLength+1)); !errors.Is(err, ErrNoteTooLong) {
		t.Fatalf("expected ErrNoteTooLong, got %v", err)
	}
}

func TestValidateMoneyScale(t *testing.T) {
	t.Parallel()

	for _, ok := range []string{"0", "0.1", "10.05", "1000000.99", "-3.50"} {
		if err := ValidateMoneyScale(decimal.RequireFromString(ok)); err != nil {
			t.Errorf("%s should pass, got %v", ok, err)
		}
	}

	for _, bad := range []string{"0.001", "10.055", "99.999"} {
		if err := ValidateMoneyScale(decimal.RequireFromString(bad)); !errors.Is(err, ErrInvalidMoneyScale) {
			t.Errorf("%s should fail with ErrInvalidMoneyScale, got %v", bad, err)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail(""); err != nil {
		t.Fatalf("empty email should pass, got %v", err)
	}

	if err := ValidateEmail("billing@example.com"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := ValidateEmail("not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	t.Parallel()

	limit, offset := ValidatePagination(0, -5)
	if limit != 20 || offset != 0 {
		t.Fatalf("expected defaults 20/0, got %d/%d", limit, offset)
	}

	limit, _ = ValidatePagination(500, 0)
	if limit != 100 {
		t.Fatalf("expected clamp to 100, got %d", limit)
	}
}
