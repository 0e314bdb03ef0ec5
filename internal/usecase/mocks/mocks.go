package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByIDFunc                func(ctx context.Context, id string) (*domain.Account, error)
	GetByCodeFunc              func(ctx context.Context, companyID, code string) (*domain.Account, error)
	SearchMovementAccountsFunc func(ctx context.Context, companyID, codePrefix, nameContains string, limit int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Add seeds the mock with an account.
func (m *MockAccountRepository) Add(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, companyID, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.CompanyID == companyID && acc.Code == code {
			return acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) SearchMovementAccounts(ctx context.Context, companyID, codePrefix, nameContains string, limit int) ([]*domain.Account, error) {
	if m.SearchMovementAccountsFunc != nil {
		return m.SearchMovementAccountsFunc(ctx, companyID, codePrefix, nameContains, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matches []*domain.Account
	for _, acc := range m.accounts {
		if acc.CompanyID != companyID || !acc.CanReceivePosting() {
			continue
		}
		if strings.HasPrefix(acc.Code, codePrefix) || strings.Contains(strings.ToUpper(acc.Name), strings.ToUpper(nameContains)) {
			matches = append(matches, acc)
		}
		if len(matches) >= limit {
			break
		}
	}
	return matches, nil
}

// MockResolutionConfigRepository is a mock implementation of
// ResolutionConfigRepository.
type MockResolutionConfigRepository struct {
	Defaults *domain.AccountDefaults
	Mappings []*domain.TaxAccountMapping

	GetDefaultsFunc   func(ctx context.Context, companyID string) (*domain.AccountDefaults, error)
	GetTaxMappingFunc func(ctx context.Context, companyID string, rate decimal.Decimal) (*domain.TaxAccountMapping, error)
}

func NewMockResolutionConfigRepository() *MockResolutionConfigRepository {
	return &MockResolutionConfigRepository{}
}

func (m *MockResolutionConfigRepository) GetDefaults(ctx context.Context, companyID string) (*domain.AccountDefaults, error) {
	if m.GetDefaultsFunc != nil {
		return m.GetDefaultsFunc(ctx, companyID)
	}
	if m.Defaults != nil && m.Defaults.CompanyID == companyID {
		return m.Defaults, nil
	}
	return nil, nil
}

func (m *MockResolutionConfigRepository) GetTaxMapping(ctx context.Context, companyID string, rate decimal.Decimal) (*domain.TaxAccountMapping, error) {
	if m.GetTaxMappingFunc != nil {
		return m.GetTaxMappingFunc(ctx, companyID, rate)
	}
	for _, mapping := range m.Mappings {
		if mapping.CompanyID == companyID && mapping.TaxRate.Equal(rate) {
			return mapping, nil
		}
	}
	return nil, nil
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository.
type MockInvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*domain.Invoice

	GetByIDFunc func(ctx context.Context, id string) (*domain.Invoice, error)
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		invoices: make(map[string]*domain.Invoice),
	}
}

func (m *MockInvoiceRepository) Add(invoice *domain.Invoice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invoices[invoice.ID] = invoice
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inv, ok := m.invoices[id]; ok {
		return inv, nil
	}
	return nil, domain.ErrInvoiceNotFound
}

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product

	GetByIDsFunc func(ctx context.Context, ids []string) (map[string]*domain.Product, error)
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (m *MockProductRepository) Add(product *domain.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = product
}

func (m *MockProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ctx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]*domain.Product)
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

// MockJournalEntryRepository is an in-memory mock implementation of
// JournalEntryRepository keyed by (company, reference).
type MockJournalEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.JournalEntry

	CreateFunc                  func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	GetByIDFunc                 func(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByReferenceFunc          func(ctx context.Context, companyID, reference string) (*domain.JournalEntry, error)
	GetByReferenceForUpdateFunc func(ctx context.Context, tx usecase.Transaction, companyID, reference string) (*domain.JournalEntry, error)
	SumDebitsAndCreditsFunc     func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockJournalEntryRepository() *MockJournalEntryRepository {
	return &MockJournalEntryRepository{
		entries: make(map[string]*domain.JournalEntry),
	}
}

func refKey(companyID, reference string) string {
	return companyID + "/" + reference
}

func (m *MockJournalEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := refKey(entry.CompanyID, entry.Reference)
	if _, exists := m.entries[key]; exists {
		return domain.ErrDuplicateEntry
	}
	m.entries[key] = entry
	return nil
}

func (m *MockJournalEntryRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, entry := range m.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockJournalEntryRepository) GetByReference(ctx context.Context, companyID, reference string) (*domain.JournalEntry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, companyID, reference)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if entry, ok := m.entries[refKey(companyID, reference)]; ok {
		return entry, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockJournalEntryRepository) GetByReferenceForUpdate(ctx context.Context, tx usecase.Transaction, companyID, reference string) (*domain.JournalEntry, error) {
	if m.GetByReferenceForUpdateFunc != nil {
		return m.GetByReferenceForUpdateFunc(ctx, tx, companyID, reference)
	}
	return m.GetByReference(ctx, companyID, reference)
}

func (m *MockJournalEntryRepository) SumDebitsAndCredits(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.SumDebitsAndCreditsFunc != nil {
		return m.SumDebitsAndCreditsFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, entry := range m.entries {
		debits = debits.Add(entry.TotalDebit())
		credits = credits.Add(entry.TotalCredit())
	}
	return debits, credits, nil
}

// Count returns the number of stored entries.
func (m *MockJournalEntryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.RWMutex
	logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs = append(m.logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.AuditLog
	for _, log := range m.logs {
		if filter.Action != "" && log.Action != filter.Action {
			continue
		}
		if filter.ResourceID != "" && log.ResourceID != filter.ResourceID {
			continue
		}
		result = append(result, log)
	}
	return result, nil
}

// Logs returns a copy of the recorded audit logs.
func (m *MockAuditRepository) Logs() []*domain.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.AuditLog(nil), m.logs...)
}

// MockTransaction is a no-op transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
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

// MockIDGenerator generates sequential IDs for deterministic tests.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return fmt.Sprintf("id-%03d", m.next)
}

// MockRetrier runs the operation once without retrying.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockCache is an in-memory cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
