package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rlopes/contas/internal/domain"
	"github.com/rlopes/contas/internal/usecase"
)

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.LedgerEntry

	CreateFunc           func(ctx context.Context, entry *domain.LedgerEntry) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerEntry, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	UpdateStatusFunc     func(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus, updatedAt time.Time) error
	DeleteFunc           func(ctx context.Context, id string) error
	ListFunc             func(ctx context.Context, kind domain.EntryKind, limit, offset int) ([]*domain.LedgerEntry, error)
	FindOvershotFunc     func(ctx context.Context) ([]string, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.LedgerEntry),
	}
}

// Seed stores an entry directly, bypassing any override.
func (m *MockEntryRepository) Seed(entry *domain.LedgerEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
}

func (m *MockEntryRepository) Create(ctx context.Context, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LedgerEntry, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockEntryRepository) Update(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return domain.ErrEntryNotFound
	}
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.EntryStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		e.Status = status
		e.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrEntryNotFound
}

func (m *MockEntryRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return domain.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *MockEntryRepository) List(ctx context.Context, kind domain.EntryKind, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.Kind == kind {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (m *MockEntryRepository) FindOvershot(ctx context.Context) ([]string, error) {
	if m.FindOvershotFunc != nil {
		return m.FindOvershotFunc(ctx)
	}
	return nil, nil
}

// MockSettlementRepository is a mock implementation of SettlementRepository.
type MockSettlementRepository struct {
	mu          sync.RWMutex
	settlements map[string]*domain.Settlement

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error
	UpdateFunc          func(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error
	DeleteFunc          func(ctx context.Context, tx usecase.Transaction, id string) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.Settlement, error)
	ListByEntryFunc     func(ctx context.Context, entryID string) ([]*domain.Settlement, error)
	SumPaidForEntryFunc func(ctx context.Context, tx usecase.Transaction, entryID, excludeID string) (decimal.Decimal, error)
}

func NewMockSettlementRepository() *MockSettlementRepository {
	return &MockSettlementRepository{
		settlements: make(map[string]*domain.Settlement),
	}
}

// Seed stores a settlement directly, bypassing any override.
func (m *MockSettlementRepository) Seed(settlement *domain.Settlement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements[settlement.ID] = settlement
}

func (m *MockSettlementRepository) Create(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, settlement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements[settlement.ID] = settlement
	return nil
}

func (m *MockSettlementRepository) Update(ctx context.Context, tx usecase.Transaction, settlement *domain.Settlement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, settlement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.settlements[settlement.ID]; !ok {
		return domain.ErrSettlementNotFound
	}
	m.settlements[settlement.ID] = settlement
	return nil
}

func (m *MockSettlementRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.settlements[id]; !ok {
		return domain.ErrSettlementNotFound
	}
	delete(m.settlements, id)
	return nil
}

func (m *MockSettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.settlements[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSettlementNotFound
}

func (m *MockSettlementRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.Settlement, error) {
	if m.ListByEntryFunc != nil {
		return m.ListByEntryFunc(ctx, entryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var settlements []*domain.Settlement
	for _, s := range m.settlements {
		if s.EntryID == entryID {
			settlements = append(settlements, s)
		}
	}
	sort.Slice(settlements, func(i, j int) bool { return settlements[i].ID < settlements[j].ID })
	return settlements, nil
}

func (m *MockSettlementRepository) SumPaidForEntry(ctx context.Context, tx usecase.Transaction, entryID, excludeID string) (decimal.Decimal, error) {
	if m.SumPaidForEntryFunc != nil {
		return m.SumPaidForEntryFunc(ctx, tx, entryID, excludeID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, s := range m.settlements {
		if s.EntryID == entryID && s.ID != excludeID {
			total = total.Add(s.PaidAmount)
		}
	}
	return total, nil
}

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mu       sync.RWMutex
	contacts map[string]*domain.Contact

	CreateFunc  func(ctx context.Context, contact *domain.Contact) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Contact, error)
	UpdateFunc  func(ctx context.Context, contact *domain.Contact) error
	DeleteFunc  func(ctx context.Context, id string) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Contact, error)
}

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		contacts: make(map[string]*domain.Contact),
	}
}

// Seed stores a contact directly, bypassing any override.
func (m *MockContactRepository) Seed(contact *domain.Contact) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts[contact.ID] = contact
}

func (m *MockContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, contact)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contacts[contact.ID] = contact
	return nil
}

func (m *MockContactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.contacts[id]; ok {
		return c, nil
	}
	return nil, domain.ErrContactNotFound
}

func (m *MockContactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, contact)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contacts[contact.ID]; !ok {
		return domain.ErrContactNotFound
	}
	m.contacts[contact.ID] = contact
	return nil
}

func (m *MockContactRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.contacts[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(m.contacts, id)
	return nil
}

func (m *MockContactRepository) List(ctx context.Context, limit, offset int) ([]*domain.Contact, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var contacts []*domain.Contact
	for _, c := range m.contacts {
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
	return contacts, nil
}

// MockPaymentTermRepository is a mock implementation of PaymentTermRepository.
type MockPaymentTermRepository struct {
	mu    sync.RWMutex
	terms map[string]*domain.PaymentTerm

	CreateFunc  func(ctx context.Context, term *domain.PaymentTerm) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.PaymentTerm, error)
	UpdateFunc  func(ctx context.Context, term *domain.PaymentTerm) error
	DeleteFunc  func(ctx context.Context, id string) error
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.PaymentTerm, error)
}

func NewMockPaymentTermRepository() *MockPaymentTermRepository {
	return &MockPaymentTermRepository{
		terms: make(map[string]*domain.PaymentTerm),
	}
}

// Seed stores a payment term directly, bypassing any override.
func (m *MockPaymentTermRepository) Seed(term *domain.PaymentTerm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terms[term.ID] = term
}

func (m *MockPaymentTermRepository) Create(ctx context.Context, term *domain.PaymentTerm) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, term)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.terms[term.ID] = term
	return nil
}

func (m *MockPaymentTermRepository) GetByID(ctx context.Context, id string) (*domain.PaymentTerm, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.terms[id]; ok {
		return t, nil
	}
	return nil, domain.ErrPaymentTermNotFound
}

func (m *MockPaymentTermRepository) Update(ctx context.Context, term *domain.PaymentTerm) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, term)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.terms[term.ID]; !ok {
		return domain.ErrPaymentTermNotFound
	}
	m.terms[term.ID] = term
	return nil
}

func (m *MockPaymentTermRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.terms[id]; !ok {
		return domain.ErrPaymentTermNotFound
	}
	delete(m.terms, id)
	return nil
}

func (m *MockPaymentTermRepository) List(ctx context.Context, limit, offset int) ([]*domain.PaymentTerm, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var terms []*domain.PaymentTerm
	for _, t := range m.terms {
		terms = append(terms, t)
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].ID < terms[j].ID })
	return terms, nil
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	t.RolledBack = true
	return nil
}

// MockTransactionManager hands out no-op transactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockCache is an in-memory Cache that ignores TTLs.
type MockCache struct {
	mu     sync.RWMutex
	values map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string]string)}
}

func (c *MockCache) Get(ctx context.Context, key string) (string, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, key)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.values[key]
	if !ok {
		return "", fmt.Errorf("cache miss: %s", key)
	}
	return value, nil
}

func (c *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if c.SetFunc != nil {
		return c.SetFunc(ctx, key, value, ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewMockIDGenerator(prefix string) *MockIDGenerator {
	return &MockIDGenerator{prefix: prefix}
}

func (g *MockIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
