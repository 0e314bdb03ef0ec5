package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Document type tags carried on journal entry lines.
const (
	DocumentTypeInvoice   = "INVOICE"
	DocumentTypeRetention = "RETENTION"
	DocumentTypeCost      = "COST"
)

// ReversalPrefix marks the reference of a reversal entry.
const ReversalPrefix = "REV-"

// InvoiceReference returns the deterministic idempotency key for the
// posting of an invoice, e.g. "FAC-101".
func InvoiceReference(invoiceID string) string {
	return "FAC-" + invoiceID
}

// ReversalReference returns the idempotency key of the reversal entry
// for an invoice, e.g. "REV-FAC-101".
func ReversalReference(invoiceID string) string {
	return ReversalPrefix + InvoiceReference(invoiceID)
}

// IsReversalReference reports whether a reference belongs to a reversal entry.
func IsReversalReference(reference string) bool {
	return strings.HasPrefix(reference, ReversalPrefix)
}

// JournalEntryLine is one debit or credit row of a journal entry.
// Conventional lines have exactly one of Debit/Credit non-zero; a
// zero/zero informational line is tolerated but never produced by the
// builder.
type JournalEntryLine struct {
	ID            string
	EntryID       string
	AccountID     string
	AccountCode   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Description   string
	DocumentType  string
	AuxiliaryCode string
	AuxiliaryName string
}

// Reversed returns a copy of the line with debit and credit swapped.
// IDs are cleared so the copy can be persisted as a new row.
func (l *JournalEntryLine) Reversed() *JournalEntryLine {
	return &JournalEntryLine{
		AccountID:     l.AccountID,
		AccountCode:   l.AccountCode,
		Debit:         l.Credit,
		Credit:        l.Debit,
		Description:   l.Description,
		DocumentType:  l.DocumentType,
		AuxiliaryCode: l.AuxiliaryCode,
		AuxiliaryName: l.AuxiliaryName,
	}
}

// JournalEntry is a balanced double-entry bookkeeping record. Reference
// is the unique idempotency key linking back to the source invoice; the
// invoice itself never holds a pointer to the entry.
type JournalEntry struct {
	ID          string
	CompanyID   string
	Date        time.Time
	Reference   string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	Lines       []*JournalEntryLine
}

// TotalDebit sums the debit side of all lines.
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}

// BalanceDelta returns TotalDebit - TotalCredit.
func (e *JournalEntry) BalanceDelta() decimal.Decimal {
	return e.TotalDebit().Sub(e.TotalCredit())
}

// IsBalanced reports whether debits equal credits within TotalTolerance.
func (e *JournalEntry) IsBalanced() bool {
	return e.BalanceDelta().Abs().LessThanOrEqual(TotalTolerance)
}

// Validate checks the balance invariant and returns an
// UnbalancedEntryError carrying the delta when it fails.
func (e *JournalEntry) Validate() error {
	if !e.IsBalanced() {
		return &UnbalancedEntryError{Reference: e.Reference, Delta: e.BalanceDelta()}
	}
	return nil
}

// Reversed builds the mirror entry: same accounts and auxiliary codes,
// debit and credit swapped per line, reference prefixed. The caller
// assigns IDs and timestamps before persisting.
func (e *JournalEntry) Reversed() *JournalEntry {
	lines := make([]*JournalEntryLine, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, l.Reversed())
	}

	return &JournalEntry{
		CompanyID:   e.CompanyID,
		Date:        e.Date,
		Reference:   ReversalPrefix + e.Reference,
		Description: fmt.Sprintf("REVERSION - %s", e.Description),
		Lines:       lines,
	}
}
