package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInconsistentLedger is returned when the ledger is not balanced.
var ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")

// ConsistencyReport summarizes a ledger-wide balance check.
type ConsistencyReport struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
	Consistent   bool
}

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	entries JournalEntryRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(entries JournalEntryRepository) *LedgerUseCase {
	return &LedgerUseCase{entries: entries}
}

// CheckConsistency verifies that total debits equal total credits across
// every journal entry line. Because each entry balances individually,
// any mismatch here means a partially written entry.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	debits, credits, err := uc.entries.SumDebitsAndCredits(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		TotalDebits:  debits,
		TotalCredits: credits,
		Consistent:   debits.Equal(credits),
	}

	if !report.Consistent {
		return report, ErrInconsistentLedger
	}

	return report, nil
}
