package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSettlementRequestAcceptsStringAndNumberAmounts(t *testing.T) {
	var req SettlementRequest
	payload := `{"payment_term_id":"term-1","paid_amount":"40.01","interest_amount":2.5}`

	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if !req.PaidAmount.Equal(decimal.RequireFromString("40.01")) {
		t.Fatalf("expected paid amount 40.01, got %s", req.PaidAmount)
	}
	if !req.InterestAmount.Equal(decimal.RequireFromString("2.5")) {
		t.Fatalf("expected interest 2.5, got %s", req.InterestAmount)
	}
}

func TestSettlementRequestDefaultsDateToZero(t *testing.T) {
	req := SettlementRequest{PaymentTermID: "term-1"}

	input := req.ToUseCaseInput()
	if !input.SettlementDate.IsZero() {
		t.Fatalf("expected zero settlement date, got %v", input.SettlementDate)
	}

	date := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
	req.SettlementDate = &date
	if got := req.ToUseCaseInput().SettlementDate; !got.Equal(date) {
		t.Fatalf("expected %v, got %v", date, got)
	}
}

func TestEntryRequestOptionalDates(t *testing.T) {
	req := EntryRequest{
		Document:  "NF1001",
		ContactID: "contact-1",
		FaceValue: decimal.RequireFromString("250.00"),
	}

	input := req.ToCreateInput()
	if !input.IssueDate.IsZero() || !input.DueDate.IsZero() {
		t.Fatalf("expected zero dates when omitted, got %v %v", input.IssueDate, input.DueDate)
	}
}

func TestContactRequestActiveDefaultsTrue(t *testing.T) {
	req := ContactRequest{Name: "ACME"}

	if !req.ToUpdateInput().Active {
		t.Fatalf("expected missing active flag to default to true")
	}

	inactive := false
	req.Active = &inactive
	if req.ToUpdateInput().Active {
		t.Fatalf("expected explicit false to be honored")
	}
}
