package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultTaxRate is the hard fallback when an invoice carries no usable
	// tax rate information (current standard Ecuadorian VAT rate)
	DefaultTaxRate = "15"

	// ResolutionCacheTTL is how long resolved account IDs are cached
	ResolutionCacheTTL = 1 * time.Hour

	// IdempotencyKeyTTL is how long HTTP idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
