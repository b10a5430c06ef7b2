package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rlopes/contas/internal/domain"
)

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.LedgerEntry, error)
	Update(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.EntryStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, kind domain.EntryKind, limit, offset int) ([]*domain.LedgerEntry, error)
	FindOvershot(ctx context.Context) ([]string, error)
}

// SettlementRepository defines data access for settlements.
type SettlementRepository interface {
	Create(ctx context.Context, tx Transaction, settlement *domain.Settlement) error
	Update(ctx context.Context, tx Transaction, settlement *domain.Settlement) error
	Delete(ctx context.Context, tx Transaction, id string) error
	GetByID(ctx context.Context, id string) (*domain.Settlement, error)
	ListByEntry(ctx context.Context, entryID string) ([]*domain.Settlement, error)
	// SumPaidForEntry aggregates paid amounts inside the transaction.
	// excludeID, when non-empty, leaves that settlement out of the sum so an
	// in-place edit is not counted against itself.
	SumPaidForEntry(ctx context.Context, tx Transaction, entryID, excludeID string) (decimal.Decimal, error)
}

// ContactRepository defines data access for counterparty contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Contact, error)
}

// PaymentTermRepository defines data access for payment terms.
type PaymentTermRepository interface {
	Create(ctx context.Context, term *domain.PaymentTerm) error
	GetByID(ctx context.Context, id string) (*domain.PaymentTerm, error)
	Update(ctx context.Context, term *domain.PaymentTerm) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]*domain.PaymentTerm, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache is a string cache with TTL semantics.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
