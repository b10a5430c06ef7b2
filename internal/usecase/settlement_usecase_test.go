package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/usecase"
	"github.com/rlopes/contas/internal/usecase/mocks"
)

type settlementFixture struct {
	uc             *usecase.SettlementUseCase
	entryRepo      *mocks.MockEntryRepository
	settlementRepo *mocks.MockSettlementRepository
	termRepo       *mocks.MockPaymentTermRepository
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	entryRepo := mocks.NewMockEntryRepository()
	settlementRepo := mocks.NewMockSettlementRepository()
	termRepo := mocks.NewMockPaymentTermRepository()
	termRepo.Seed(&domain.PaymentTerm{ID: "term-1", Name: "cash", InstallmentCount: 1})

	uc := usecase.NewSettlementUseCase(
		mocks.NewMockTransactionManager(),
		entryRepo,
		settlementRepo,
		termRepo,
		mocks.NewMockIDGenerator("stl"),
		nil,
		nil,
		nil,
	)

	return &settlementFixture{
		uc:             uc,
		entryRepo:      entryRepo,
		settlementRepo: settlementRepo,
		termRepo:       termRepo,
	}
}

func (f *settlementFixture) seedEntry(id, faceValue string) *domain.LedgerEntry {
	entry := &domain.LedgerEntry{
		ID:          id,
		Kind:        domain.KindReceivable,
		Document:    "NF1042",
		Installment: 1,
		ContactID:   "contact-1",
		FaceValue:   decimal.RequireFromString(faceValue),
		Status:      domain.StatusOpen,
	}
	f.entryRepo.Seed(entry)
	return entry
}

func settlementInput(paid string) usecase.RecordSettlementInput {
	return usecase.RecordSettlementInput{
		PaymentTermID:  "term-1",
		PaidAmount:     decimal.RequireFromString(paid),
		SettlementDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestSettlementUseCase_RecordSettlement(t *testing.T) {
	ctx := context.Background()

	t.Run("partial settlement keeps entry open", func(t *testing.T) {
		f := newSettlementFixture(t)
		entry := f.seedEntry("entry-1", "250.00")

		settlement, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("100.00"))
		require.NoError(t, err)
		assert.Equal(t, "entry-1", settlement.EntryID)
		assert.Equal(t, domain.StatusOpen, entry.Status)
	})

	t.Run("exact balance settles the entry", func(t *testing.T) {
		f := newSettlementFixture(t)
		entry := f.seedEntry("entry-1", "100.00")

		_, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("100.00"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSettled, entry.Status)
	})

	t.Run("one cent over balance is rejected and persists nothing", func(t *testing.T) {
		f := newSettlementFixture(t)
		entry := f.seedEntry("entry-1", "100.00")

		_, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("60.00"))
		require.NoError(t, err)

		_, err = f.uc.RecordSettlement(ctx, "entry-1", settlementInput("40.01"))
		require.ErrorIs(t, err, domain.ErrSettlementExceedsBalance)

		var exceeds *domain.ExceedsBalanceError
		require.ErrorAs(t, err, &exceeds)
		assert.True(t, exceeds.Attempted.Equal(decimal.RequireFromString("40.01")))
		assert.True(t, exceeds.Available.Equal(decimal.RequireFromString("40.00")))

		settlements, err := f.uc.ListSettlements(ctx, "entry-1")
		require.NoError(t, err)
		require.Len(t, settlements, 1)
		assert.Equal(t, domain.StatusOpen, entry.Status)
	})

	t.Run("unknown entry", func(t *testing.T) {
		f := newSettlementFixture(t)

		_, err := f.uc.RecordSettlement(ctx, "missing", settlementInput("10.00"))
		require.ErrorIs(t, err, domain.ErrEntryNotFound)
	})

	t.Run("unknown payment term", func(t *testing.T) {
		f := newSettlementFixture(t)
		f.seedEntry("entry-1", "100.00")

		input := settlementInput("10.00")
		input.PaymentTermID = "missing"

		_, err := f.uc.RecordSettlement(ctx, "entry-1", input)
		require.ErrorIs(t, err, domain.ErrPaymentTermNotFound)
	})

	t.Run("zero payment rejected under default rules", func(t *testing.T) {
		f := newSettlementFixture(t)
		f.seedEntry("entry-1", "100.00")

		_, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("0.00"))
		require.ErrorIs(t, err, domain.ErrPaymentBelowMinimum)
	})
}

func TestSettlementUseCase_UpdateSettlement(t *testing.T) {
	ctx := context.Background()

	t.Run("upward edit validated excluding own contribution", func(t *testing.T) {
		// faceValue=100, one settlement paid=40, outstanding=60. Editing that
		// settlement to 95 must succeed: 95 <= 100, not 95 <= 60.
		f := newSettlementFixture(t)
		f.seedEntry("entry-1", "100.00")

		created, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("40.00"))
		require.NoError(t, err)

		updated, err := f.uc.UpdateSettlement(ctx, "entry-1", created.ID, settlementInput("95.00"))
		require.NoError(t, err)
		assert.True(t, updated.PaidAmount.Equal(decimal.RequireFromString("95.00")))
	})

	t.Run("edit beyond face value still rejected", func(t *testing.T) {
		f := newSettlementFixture(t)
		f.seedEntry("entry-1", "100.00")

		created, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("40.00"))
		require.NoError(t, err)

		_, err = f.uc.UpdateSettlement(ctx, "entry-1", created.ID, settlementInput("100.01"))
		require.ErrorIs(t, err, domain.ErrSettlementExceedsBalance)
	})

	t.Run("edit to full face value settles the entry", func(t *testing.T) {
		f := newSettlementFixture(t)
		entry := f.seedEntry("entry-1", "100.00")

		created, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("40.00"))
		require.NoError(t, err)

		_, err = f.uc.UpdateSettlement(ctx, "entry-1", created.ID, settlementInput("100.00"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusSettled, entry.Status)
	})

	t.Run("settlement of another entry is rejected", func(t *testing.T) {
		f := newSettlementFixture(t)
		f.seedEntry("entry-1", "100.00")
		f.seedEntry("entry-2", "100.00")

		created, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("40.00"))
		require.NoError(t, err)

		_, err = f.uc.UpdateSettlement(ctx, "entry-2", created.ID, settlementInput("50.00"))
		require.ErrorIs(t, err, domain.ErrSettlementMismatch)
	})
}

func TestSettlementUseCase_ReverseSettlement(t *testing.T) {
	ctx := context.Background()

	t.Run("reversing the settling payment reopens the entry", func(t *testing.T) {
		f := newSettlementFixture(t)
		entry := f.seedEntry("entry-1", "100.00")

		created, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("100.00"))
		require.NoError(t, err)
		require.Equal(t, domain.StatusSettled, entry.Status)

		require.NoError(t, f.uc.ReverseSettlement(ctx, "entry-1", created.ID))
		assert.Equal(t, domain.StatusOpen, entry.Status)

		settlements, err := f.uc.ListSettlements(ctx, "entry-1")
		require.NoError(t, err)
		assert.Empty(t, settlements)
	})

	t.Run("unknown settlement", func(t *testing.T) {
		f := newSettlementFixture(t)
		f.seedEntry("entry-1", "100.00")

		err := f.uc.ReverseSettlement(ctx, "entry-1", "missing")
		require.ErrorIs(t, err, domain.ErrSettlementNotFound)
	})
}

func TestSettlementUseCase_SequenceScenario(t *testing.T) {
	// faceValue=250.00 -> settle 100.00 (open) -> settle 150.00 (settled)
	// -> settle 0.01 fails -> reverse second settlement (open, 150.00 due).
	ctx := context.Background()
	f := newSettlementFixture(t)
	entry := f.seedEntry("entry-1", "250.00")

	_, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("100.00"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusOpen, entry.Status)

	second, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput("150.00"))
	require.NoError(t, err)
	require.Equal(t, domain.StatusSettled, entry.Status)

	_, err = f.uc.RecordSettlement(ctx, "entry-1", settlementInput("0.01"))
	require.ErrorIs(t, err, domain.ErrSettlementExceedsBalance)

	require.NoError(t, f.uc.ReverseSettlement(ctx, "entry-1", second.ID))
	require.Equal(t, domain.StatusOpen, entry.Status)

	settlements, err := f.uc.ListSettlements(ctx, "entry-1")
	require.NoError(t, err)
	totalPaid := domain.TotalPaid(settlements)
	assert.True(t, totalPaid.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, entry.OutstandingBalance(totalPaid).Equal(decimal.RequireFromString("150.00")))
}

func TestSettlementUseCase_PerKindRules(t *testing.T) {
	ctx := context.Background()

	entryRepo := mocks.NewMockEntryRepository()
	settlementRepo := mocks.NewMockSettlementRepository()
	termRepo := mocks.NewMockPaymentTermRepository()
	termRepo.Seed(&domain.PaymentTerm{ID: "term-1", Name: "cash", InstallmentCount: 1})

	// Payables run with a relaxed minimum, receivables with the default.
	rules := map[domain.EntryKind]domain.SettlementRules{
		domain.KindReceivable: domain.DefaultSettlementRules(),
		domain.KindPayable:    {MinimumPayment: decimal.Zero},
	}

	uc := usecase.NewSettlementUseCase(
		mocks.NewMockTransactionManager(),
		entryRepo,
		settlementRepo,
		termRepo,
		mocks.NewMockIDGenerator("stl"),
		nil,
		rules,
		nil,
	)

	entryRepo.Seed(&domain.LedgerEntry{
		ID:        "pay-1",
		Kind:      domain.KindPayable,
		Document:  "DUP77",
		ContactID: "contact-1",
		FaceValue: decimal.RequireFromString("80.00"),
		Status:    domain.StatusOpen,
	})
	entryRepo.Seed(&domain.LedgerEntry{
		ID:        "rec-1",
		Kind:      domain.KindReceivable,
		Document:  "NF88",
		ContactID: "contact-1",
		FaceValue: decimal.RequireFromString("80.00"),
		Status:    domain.StatusOpen,
	})

	_, err := uc.RecordSettlement(ctx, "pay-1", settlementInput("0.00"))
	require.NoError(t, err, "payable accepts zero payment under relaxed rules")

	_, err = uc.RecordSettlement(ctx, "rec-1", settlementInput("0.00"))
	require.ErrorIs(t, err, domain.ErrPaymentBelowMinimum)
}

func TestSettlementUseCase_InvariantHolds(t *testing.T) {
	// Whatever mix of accepted operations runs, total paid never exceeds
	// the face value.
	ctx := context.Background()
	f := newSettlementFixture(t)
	entry := f.seedEntry("entry-1", "500.00")

	amounts := []string{"120.00", "200.00", "99.99", "300.00", "80.01", "0.01"}
	for _, amount := range amounts {
		_, err := f.uc.RecordSettlement(ctx, "entry-1", settlementInput(amount))
		if err != nil {
			require.True(t, errors.Is(err, domain.ErrSettlementExceedsBalance))
		}

		settlements, listErr := f.uc.ListSettlements(ctx, "entry-1")
		require.NoError(t, listErr)
		require.True(t, domain.TotalPaid(settlements).LessThanOrEqual(entry.FaceValue))
	}
}
