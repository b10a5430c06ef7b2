package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSettlement_ValidateFields(t *testing.T) {
	rules := DefaultSettlementRules()

	valid := func() *Settlement {
		return &Settlement{
			EntryID:        "entry-1",
			PaymentTermID:  "term-1",
			PaidAmount:     decimal.RequireFromString("50.00"),
			SettlementDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Settlement)
		errorType error
	}{
		{
			name:   "valid settlement",
			mutate: func(s *Settlement) {},
		},
		{
			name:      "missing entry",
			mutate:    func(s *Settlement) { s.EntryID = "" },
			errorType: ErrEntryRequired,
		},
		{
			name:      "missing payment term",
			mutate:    func(s *Settlement) { s.PaymentTermID = "" },
			errorType: ErrPaymentTermRequired,
		},
		{
			name:      "missing settlement date",
			mutate:    func(s *Settlement) { s.SettlementDate = time.Time{} },
			errorType: ErrMissingSettlementDate,
		},
		{
			name:      "zero paid amount rejected",
			mutate:    func(s *Settlement) { s.PaidAmount = decimal.Zero },
			errorType: ErrPaymentBelowMinimum,
		},
		{
			name:      "negative interest rejected",
			mutate:    func(s *Settlement) { s.InterestAmount = decimal.RequireFromString("-1.00") },
			errorType: ErrNegativeAmount,
		},
		{
			name:      "negative discount rejected",
			mutate:    func(s *Settlement) { s.DiscountAmount = decimal.RequireFromString("-0.01") },
			errorType: ErrNegativeAmount,
		},
		{
			name:      "sub-cent paid amount rejected",
			mutate:    func(s *Settlement) { s.PaidAmount = decimal.RequireFromString("10.005") },
			errorType: ErrInvalidMoneyScale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)

			err := s.ValidateFields(rules)

			if tt.errorType == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, tt.errorType) {
				t.Errorf("expected %v, got %v", tt.errorType, err)
			}
		})
	}
}

func TestSettlement_ValidateFields_MinimumPaymentToggle(t *testing.T) {
	// Payables may relax the one-cent floor via configuration.
	rules := SettlementRules{MinimumPayment: decimal.Zero}

	s := &Settlement{
		EntryID:        "entry-1",
		PaymentTermID:  "term-1",
		PaidAmount:     decimal.Zero,
		SettlementDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	if err := s.ValidateFields(rules); err != nil {
		t.Fatalf("expected zero payment to pass with relaxed rules, got %v", err)
	}
}

func TestSettlement_ValidateAgainstBalance(t *testing.T) {
	entry := &LedgerEntry{FaceValue: decimal.RequireFromString("100.00")}

	t.Run("paid amount within balance passes", func(t *testing.T) {
		s := &Settlement{PaidAmount: decimal.RequireFromString("60.00")}
		if err := s.ValidateAgainstBalance(entry, decimal.RequireFromString("40.00")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("paid amount exactly at balance passes", func(t *testing.T) {
		s := &Settlement{PaidAmount: decimal.RequireFromString("100.00")}
		if err := s.ValidateAgainstBalance(entry, decimal.Zero); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("one cent over balance fails", func(t *testing.T) {
		s := &Settlement{PaidAmount: decimal.RequireFromString("60.01")}

		err := s.ValidateAgainstBalance(entry, decimal.RequireFromString("40.00"))
		if !errors.Is(err, ErrSettlementExceedsBalance) {
			t.Fatalf("expected ErrSettlementExceedsBalance, got %v", err)
		}

		var exceeds *ExceedsBalanceError
		if !errors.As(err, &exceeds) {
			t.Fatalf("expected *ExceedsBalanceError, got %T", err)
		}

		if !exceeds.Attempted.Equal(decimal.RequireFromString("60.01")) {
			t.Errorf("expected attempted 60.01, got %s", exceeds.Attempted)
		}

		if !exceeds.Available.Equal(decimal.RequireFromString("60.00")) {
			t.Errorf("expected available 60.00, got %s", exceeds.Available)
		}
	})

	t.Run("edit validates excluding own prior contribution", func(t *testing.T) {
		// faceValue=100, one settlement paid=40. Raising that settlement to
		// 95 must pass: only payments elsewhere count against the balance.
		s := &Settlement{PaidAmount: decimal.RequireFromString("95.00")}
		if err := s.ValidateAgainstBalance(entry, decimal.Zero); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("negative raw balance is reported as zero available", func(t *testing.T) {
		s := &Settlement{PaidAmount: decimal.RequireFromString("0.01")}

		err := s.ValidateAgainstBalance(entry, decimal.RequireFromString("120.00"))

		var exceeds *ExceedsBalanceError
		if !errors.As(err, &exceeds) {
			t.Fatalf("expected *ExceedsBalanceError, got %v", err)
		}

		if !exceeds.Available.Equal(decimal.Zero) {
			t.Errorf("expected available reported as zero, got %s", exceeds.Available)
		}
	})
}
