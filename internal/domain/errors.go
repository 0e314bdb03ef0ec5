package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Account errors
	ErrAccountNotFound        = errors.New("account not found")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrAccountRejectsMovement = errors.New("account does not accept movement")

	// Invoice errors
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrInvoiceNotPosted = errors.New("invoice has no journal entry to reverse")
	ErrInvoiceNotSent   = errors.New("invoice is not in a postable status")
	ErrInvoiceZeroTotal = errors.New("invoice total must be positive")
	ErrTotalMismatch    = errors.New("invoice total does not equal subtotal plus tax")

	// Journal errors
	ErrEntryNotFound  = errors.New("journal entry not found")
	ErrDuplicateEntry = errors.New("journal entry already exists for reference")
)

// AccountPurpose identifies what a resolved account will be used for.
type AccountPurpose string

const (
	PurposeSales                = AccountPurpose("sales")
	PurposeTax                  = AccountPurpose("tax")
	PurposeVATWithholding       = AccountPurpose("vat_withholding")
	PurposeIncomeTaxWithholding = AccountPurpose("income_tax_withholding")
	PurposeCost                 = AccountPurpose("cost")
	PurposeInventory            = AccountPurpose("inventory")
)

// AccountNotConfiguredError is returned when the resolver exhausts every
// strategy without finding a usable account for a purpose.
type AccountNotConfiguredError struct {
	CompanyID string
	Purpose   AccountPurpose
	Rate      decimal.Decimal
}

func (e *AccountNotConfiguredError) Error() string {
	if e.Rate.IsZero() {
		return fmt.Sprintf("no %s account configured for company %s", e.Purpose, e.CompanyID)
	}
	return fmt.Sprintf("no %s account configured for company %s at rate %s%%", e.Purpose, e.CompanyID, e.Rate)
}

// IncompleteInvoiceError is returned when an invoice is missing data the
// builder needs. Nothing is persisted.
type IncompleteInvoiceError struct {
	InvoiceID string
	Missing   []string
}

func (e *IncompleteInvoiceError) Error() string {
	return fmt.Sprintf("invoice %s is incomplete: missing %v", e.InvoiceID, e.Missing)
}

// UnbalancedEntryError is returned when assembled lines do not balance
// within tolerance. The entry is never persisted.
type UnbalancedEntryError struct {
	Reference string
	Delta     decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry %s does not balance: delta %s", e.Reference, e.Delta)
}

// CostMismatchError reports a logic error where aggregated cost lines do
// not equal aggregated inventory lines.
type CostMismatchError struct {
	InvoiceID      string
	CostTotal      decimal.Decimal
	InventoryTotal decimal.Decimal
}

func (e *CostMismatchError) Error() string {
	return fmt.Sprintf("cost/inventory mismatch for invoice %s: cost %s vs inventory %s",
		e.InvoiceID, e.CostTotal, e.InventoryTotal)
}
