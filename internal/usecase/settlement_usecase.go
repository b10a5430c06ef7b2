package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/infrastructure/metrics"
)

// SettlementUseCase handles the settlement lifecycle: recording partial or
// full payments against ledger entries and reversing them. All mutations run
// inside one transaction holding a row lock on the entry so two concurrent
// settlements cannot both pass validation against a stale balance.
type SettlementUseCase struct {
	txManager       TransactionManager
	entryRepo       EntryRepository
	settlementRepo  SettlementRepository
	paymentTermRepo PaymentTermRepository
	idGen           IDGenerator
	retrier         Retrier
	rules           map[domain.EntryKind]domain.SettlementRules
	metrics         *metrics.Metrics
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	settlementRepo SettlementRepository,
	paymentTermRepo PaymentTermRepository,
	idGen IDGenerator,
	retrier Retrier,
	rules map[domain.EntryKind]domain.SettlementRules,
	m *metrics.Metrics,
) *SettlementUseCase {
	if rules == nil {
		rules = map[domain.EntryKind]domain.SettlementRules{
			domain.KindReceivable: domain.DefaultSettlementRules(),
			domain.KindPayable:    domain.DefaultSettlementRules(),
		}
	}

	return &SettlementUseCase{
		txManager:       txManager,
		entryRepo:       entryRepo,
		settlementRepo:  settlementRepo,
		paymentTermRepo: paymentTermRepo,
		idGen:           idGen,
		retrier:         retrier,
		rules:           rules,
		metrics:         m,
	}
}

// RecordSettlementInput represents input for recording a settlement.
type RecordSettlementInput struct {
	PaymentTermID  string
	InterestAmount decimal.Decimal
	PenaltyAmount  decimal.Decimal
	DiscountAmount decimal.Decimal
	PaidAmount     decimal.Decimal
	SettlementDate time.Time
}

// RecordSettlement records a payment against a ledger entry. The balance
// read, the validation, and the write happen inside one transaction with
// the entry row locked.
func (uc *SettlementUseCase) RecordSettlement(ctx context.Context, entryID string, input RecordSettlementInput) (*domain.Settlement, error) {
	start := time.Now()

	if _, err := uc.paymentTermRepo.GetByID(ctx, input.PaymentTermID); err != nil {
		return nil, err
	}

	var settlement *domain.Settlement
	err := uc.retry(ctx, func() error {
		var err error
		settlement, err = uc.recordSettlementTx(ctx, entryID, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}

	return settlement, nil
}

func (uc *SettlementUseCase) recordSettlementTx(ctx context.Context, entryID string, input RecordSettlementInput) (*domain.Settlement, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, entryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	settlement := &domain.Settlement{
		ID:             uc.idGen.Generate(),
		EntryID:        entry.ID,
		PaymentTermID:  input.PaymentTermID,
		InterestAmount: input.InterestAmount,
		PenaltyAmount:  input.PenaltyAmount,
		DiscountAmount: input.DiscountAmount,
		PaidAmount:     input.PaidAmount,
		SettlementDate: input.SettlementDate,
		CreatedAt:      now,
	}

	if err := settlement.ValidateFields(uc.rulesFor(entry.Kind)); err != nil {
		return nil, err
	}

	totalPaid, err := uc.settlementRepo.SumPaidForEntry(txCtx, tx, entry.ID, "")
	if err != nil {
		return nil, err
	}

	if err := uc.checkBalance(settlement, entry, totalPaid); err != nil {
		return nil, err
	}

	if err := uc.settlementRepo.Create(txCtx, tx, settlement); err != nil {
		return nil, err
	}

	status, err := uc.applyStatus(txCtx, tx, entry, totalPaid.Add(settlement.PaidAmount), now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		kind := string(entry.Kind)
		uc.metrics.SettlementsRecorded.WithLabelValues(kind).Inc()
		amount, _ := settlement.PaidAmount.Float64()
		uc.metrics.SettlementAmount.WithLabelValues(kind).Observe(amount)
		if status == domain.StatusSettled {
			uc.metrics.EntriesSettled.WithLabelValues(kind).Inc()
		}
	}

	return settlement, nil
}

// UpdateSettlement edits an existing settlement. The balance check excludes
// the record being edited, so raising a settlement up to the full face
// value is accepted.
func (uc *SettlementUseCase) UpdateSettlement(ctx context.Context, entryID, settlementID string, input RecordSettlementInput) (*domain.Settlement, error) {
	if _, err := uc.paymentTermRepo.GetByID(ctx, input.PaymentTermID); err != nil {
		return nil, err
	}

	var settlement *domain.Settlement
	err := uc.retry(ctx, func() error {
		var err error
		settlement, err = uc.updateSettlementTx(ctx, entryID, settlementID, input)
		return err
	})

	return settlement, err
}

func (uc *SettlementUseCase) updateSettlementTx(ctx context.Context, entryID, settlementID string, input RecordSettlementInput) (*domain.Settlement, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, entryID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.settlementRepo.GetByID(txCtx, settlementID)
	if err != nil {
		return nil, err
	}

	if existing.EntryID != entry.ID {
		return nil, domain.ErrSettlementMismatch
	}

	settlement := &domain.Settlement{
		ID:             existing.ID,
		EntryID:        entry.ID,
		PaymentTermID:  input.PaymentTermID,
		InterestAmount: input.InterestAmount,
		PenaltyAmount:  input.PenaltyAmount,
		DiscountAmount: input.DiscountAmount,
		PaidAmount:     input.PaidAmount,
		SettlementDate: input.SettlementDate,
		CreatedAt:      existing.CreatedAt,
	}

	if err := settlement.ValidateFields(uc.rulesFor(entry.Kind)); err != nil {
		return nil, err
	}

	paidElsewhere, err := uc.settlementRepo.SumPaidForEntry(txCtx, tx, entry.ID, settlement.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.checkBalance(settlement, entry, paidElsewhere); err != nil {
		return nil, err
	}

	if err := uc.settlementRepo.Update(txCtx, tx, settlement); err != nil {
		return nil, err
	}

	if _, err := uc.applyStatus(txCtx, tx, entry, paidElsewhere.Add(settlement.PaidAmount), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return settlement, nil
}

// ReverseSettlement deletes a settlement and re-derives the entry status.
// Reversal is unconditional: removing a payment can only lower the total
// paid, so no balance validation is needed.
func (uc *SettlementUseCase) ReverseSettlement(ctx context.Context, entryID, settlementID string) error {
	return uc.retry(ctx, func() error {
		return uc.reverseSettlementTx(ctx, entryID, settlementID)
	})
}

func (uc *SettlementUseCase) reverseSettlementTx(ctx context.Context, entryID, settlementID string) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(txCtx)

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, entryID)
	if err != nil {
		return err
	}

	settlement, err := uc.settlementRepo.GetByID(txCtx, settlementID)
	if err != nil {
		return err
	}

	if settlement.EntryID != entry.ID {
		return domain.ErrSettlementMismatch
	}

	if err := uc.settlementRepo.Delete(txCtx, tx, settlement.ID); err != nil {
		return err
	}

	totalPaid, err := uc.settlementRepo.SumPaidForEntry(txCtx, tx, entry.ID, settlement.ID)
	if err != nil {
		return err
	}

	status, err := uc.applyStatus(txCtx, tx, entry, totalPaid, time.Now().UTC())
	if err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		kind := string(entry.Kind)
		uc.metrics.SettlementsReversed.WithLabelValues(kind).Inc()
		if entry.Status == domain.StatusSettled && status == domain.StatusOpen {
			uc.metrics.EntriesReopen.WithLabelValues(kind).Inc()
		}
	}

	return nil
}

// ListSettlements lists settlements for an entry.
func (uc *SettlementUseCase) ListSettlements(ctx context.Context, entryID string) ([]*domain.Settlement, error) {
	if _, err := uc.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}

	return uc.settlementRepo.ListByEntry(ctx, entryID)
}

// GetSettlement retrieves one settlement of an entry.
func (uc *SettlementUseCase) GetSettlement(ctx context.Context, entryID, settlementID string) (*domain.Settlement, error) {
	settlement, err := uc.settlementRepo.GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	if settlement.EntryID != entryID {
		return nil, domain.ErrSettlementNotFound
	}

	return settlement, nil
}

func (uc *SettlementUseCase) checkBalance(settlement *domain.Settlement, entry *domain.LedgerEntry, paidElsewhere decimal.Decimal) error {
	if entry.OutstandingBalance(paidElsewhere).IsNegative() {
		// Stored settlements already overshoot the face value. The
		// validation below still rejects the candidate; the alarm is for
		// operators.
		log.Error().
			Str("entry_id", entry.ID).
			Str("face_value", entry.FaceValue.StringFixed(2)).
			Str("total_paid", paidElsewhere.StringFixed(2)).
			Msg("entry overshoots face value, data integrity violated")
	}

	err := settlement.ValidateAgainstBalance(entry, paidElsewhere)
	if err != nil && uc.metrics != nil && errors.Is(err, domain.ErrSettlementExceedsBalance) {
		uc.metrics.SettlementsRejected.WithLabelValues(string(entry.Kind)).Inc()
	}

	return err
}

func (uc *SettlementUseCase) applyStatus(ctx context.Context, tx Transaction, entry *domain.LedgerEntry, totalPaid decimal.Decimal, now time.Time) (domain.EntryStatus, error) {
	status := entry.StatusFor(totalPaid)
	if status == entry.Status {
		return status, nil
	}

	return status, uc.entryRepo.UpdateStatus(ctx, tx, entry.ID, status, now)
}

func (uc *SettlementUseCase) rulesFor(kind domain.EntryKind) domain.SettlementRules {
	if rules, ok := uc.rules[kind]; ok {
		return rules
	}

	return domain.DefaultSettlementRules()
}

func (uc *SettlementUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}
