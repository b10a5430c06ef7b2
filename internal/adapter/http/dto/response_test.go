package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/usecase"
)

func TestMonetaryFieldsSerializeWithTwoDecimals(t *testing.T) {
	entry := &domain.LedgerEntry{
		ID:        "ent-1",
		Kind:      domain.KindReceivable,
		FaceValue: decimal.RequireFromString("250"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	balance := EntryBalanceFromDomain(&usecase.EntryWithBalance{
		Entry:       entry,
		TotalPaid:   decimal.RequireFromString("100.1"),
		Outstanding: decimal.RequireFromString("149.9"),
	})

	raw, err := json.Marshal(balance)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for _, want := range []string{`"face_value":"250.00"`, `"total_paid":"100.10"`, `"outstanding":"149.90"`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("expected %s in %s", want, raw)
		}
	}
}

func TestSettlementFromDomainFormatsAllAmounts(t *testing.T) {
	s := &domain.Settlement{
		ID:             "stl-1",
		EntryID:        "ent-1",
		InterestAmount: decimal.RequireFromString("1.5"),
		PenaltyAmount:  decimal.Zero,
		DiscountAmount: decimal.RequireFromString("0.5"),
		PaidAmount:     decimal.RequireFromString("101"),
	}

	resp := SettlementFromDomain(s)

	if resp.InterestAmount != "1.50" || resp.PenaltyAmount != "0.00" ||
		resp.DiscountAmount != "0.50" || resp.PaidAmount != "101.00" {
		t.Fatalf("expected fixed-scale amounts, got %+v", resp)
	}
}
