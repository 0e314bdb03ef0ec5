package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
)

// AccountRepository defines read access to the chart of accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByCode(ctx context.Context, companyID, code string) (*domain.Account, error)
	// SearchMovementAccounts returns active, movement-eligible accounts of a
	// company whose code starts with codePrefix or whose name contains
	// nameContains, ordered by code.
	SearchMovementAccounts(ctx context.Context, companyID, codePrefix, nameContains string, limit int) ([]*domain.Account, error)
}

// ResolutionConfigRepository defines read access to per-company posting
// account configuration.
type ResolutionConfigRepository interface {
	GetDefaults(ctx context.Context, companyID string) (*domain.AccountDefaults, error)
	GetTaxMapping(ctx context.Context, companyID string, rate decimal.Decimal) (*domain.TaxAccountMapping, error)
}

// InvoiceRepository defines read access to invoices. Invoices are owned
// by the invoicing subsystem; the engine never writes them.
type InvoiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
}

// ProductRepository defines read access to products referenced by
// invoice lines.
type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
}

// JournalEntryRepository defines data access for journal entries.
type JournalEntryRepository interface {
	// Create persists a header and its lines inside tx as one unit.
	// Returns domain.ErrDuplicateEntry when the (company, reference)
	// unique constraint is violated.
	Create(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	GetByReference(ctx context.Context, companyID, reference string) (*domain.JournalEntry, error)
	GetByReferenceForUpdate(ctx context.Context, tx Transaction, companyID, reference string) (*domain.JournalEntry, error)
	// SumDebitsAndCredits totals both sides of every line in the ledger.
	SumDebitsAndCredits(ctx context.Context) (debits, credits decimal.Decimal, err error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
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

// Retrier retries an operation on transient database errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for the HTTP layer.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
