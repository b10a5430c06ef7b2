package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/infrastructure/metrics"
)

// EntryUseCase handles ledger entry business logic. Entries are only ever
// mutated directly through these operations; their paid total moves through
// the settlement lifecycle instead.
type EntryUseCase struct {
	txManager      TransactionManager
	entryRepo      EntryRepository
	settlementRepo SettlementRepository
	contactRepo    ContactRepository
	idGen          IDGenerator
	cache          Cache
	metrics        *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	settlementRepo SettlementRepository,
	contactRepo ContactRepository,
	idGen IDGenerator,
	cache Cache,
	m *metrics.Metrics,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:      txManager,
		entryRepo:      entryRepo,
		settlementRepo: settlementRepo,
		contactRepo:    contactRepo,
		idGen:          idGen,
		cache:          cache,
		metrics:        m,
	}
}

// CreateEntryInput represents input for creating a ledger entry.
type CreateEntryInput struct {
	Document    string
	Installment int
	ContactID   string
	IssueDate   time.Time
	DueDate     time.Time
	FaceValue   decimal.Decimal
	Note        string
}

// CreateEntry creates a new open ledger entry.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, kind domain.EntryKind, input CreateEntryInput) (*domain.LedgerEntry, error) {
	now := time.Now().UTC()

	installment := input.Installment
	if installment == 0 {
		installment = 1
	}

	issueDate := input.IssueDate
	if issueDate.IsZero() {
		issueDate = now
	}

	dueDate := input.DueDate
	if dueDate.IsZero() {
		dueDate = now
	}

	entry := &domain.LedgerEntry{
		ID:          uc.idGen.Generate(),
		Kind:        kind,
		Document:    input.Document,
		Installment: installment,
		ContactID:   input.ContactID,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		FaceValue:   input.FaceValue,
		Note:        input.Note,
		Status:      domain.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.contactRepo.GetByID(ctx, entry.ContactID); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.WithLabelValues(string(kind)).Inc()
	}

	return entry, nil
}

// EntryWithBalance bundles an entry with its derived amounts.
type EntryWithBalance struct {
	Entry       *domain.LedgerEntry
	TotalPaid   decimal.Decimal
	Outstanding decimal.Decimal
}

// GetEntry retrieves an entry with its computed balance.
func (uc *EntryUseCase) GetEntry(ctx context.Context, kind domain.EntryKind, id string) (*EntryWithBalance, error) {
	entry, err := uc.entryForKind(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	settlements, err := uc.settlementRepo.ListByEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	totalPaid := domain.TotalPaid(settlements)

	return &EntryWithBalance{
		Entry:       entry,
		TotalPaid:   totalPaid,
		Outstanding: entry.OutstandingBalance(totalPaid),
	}, nil
}

// ListEntriesInput represents input for listing entries.
type ListEntriesInput struct {
	Limit  int
	Offset int
}

// ListEntries lists entries of one kind with pagination.
func (uc *EntryUseCase) ListEntries(ctx context.Context, kind domain.EntryKind, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.List(ctx, kind, limit, offset)
}

// UpdateEntryInput represents input for updating an entry.
type UpdateEntryInput struct {
	Document    string
	Installment int
	ContactID   string
	IssueDate   time.Time
	DueDate     time.Time
	FaceValue   decimal.Decimal
	Note        string
}

// UpdateEntry updates an entry's own fields. Lowering the face value below
// the amount already paid is rejected, and the status is re-derived when
// the face value changes.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, kind domain.EntryKind, id string, input UpdateEntryInput) (*domain.LedgerEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	entry, err := uc.entryRepo.GetByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	if entry.Kind != kind {
		return nil, domain.ErrEntryNotFound
	}

	entry.Document = input.Document
	entry.Installment = input.Installment
	entry.ContactID = input.ContactID
	entry.IssueDate = input.IssueDate
	entry.DueDate = input.DueDate
	entry.FaceValue = input.FaceValue
	entry.Note = input.Note
	entry.UpdatedAt = time.Now().UTC()

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.contactRepo.GetByID(txCtx, entry.ContactID); err != nil {
		return nil, err
	}

	totalPaid, err := uc.settlementRepo.SumPaidForEntry(txCtx, tx, entry.ID, "")
	if err != nil {
		return nil, err
	}

	if entry.FaceValue.LessThan(totalPaid) {
		return nil, domain.ErrFaceValueBelowPaid
	}

	entry.Status = entry.StatusFor(totalPaid)

	if err := uc.entryRepo.Update(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry deletes an entry; its settlements are removed with it.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, kind domain.EntryKind, id string) error {
	if _, err := uc.entryForKind(ctx, kind, id); err != nil {
		return err
	}

	return uc.entryRepo.Delete(ctx, id)
}

// CheckIntegrity scans for entries whose recorded settlements exceed the
// face value. A non-empty result means the entry was mutated outside the
// settlement lifecycle. The scan aggregates every settlement row, so the
// result is cached briefly.
func (uc *EntryUseCase) CheckIntegrity(ctx context.Context) ([]string, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, integrityCacheKey); err == nil {
			var ids []string
			if err := json.Unmarshal([]byte(cached), &ids); err == nil {
				return ids, nil
			}
		}
	}

	ids, err := uc.entryRepo.FindOvershot(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if encoded, err := json.Marshal(ids); err == nil {
			_ = uc.cache.Set(ctx, integrityCacheKey, string(encoded), IntegrityCacheTTL)
		}
	}

	return ids, nil
}

// entryForKind retrieves an entry and hides it when the kind does not
// match, so receivable routes never expose payables and vice versa.
func (uc *EntryUseCase) entryForKind(ctx context.Context, kind domain.EntryKind, id string) (*domain.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.Kind != kind {
		return nil, domain.ErrEntryNotFound
	}

	return entry, nil
}
