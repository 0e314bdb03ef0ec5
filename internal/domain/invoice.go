package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice. The posting engine
// only reacts to "sent" and "cancelled".
type InvoiceStatus string

const (
	InvoiceStatusDraft     = InvoiceStatus("draft")
	InvoiceStatusSent      = InvoiceStatus("sent")
	InvoiceStatusPaid      = InvoiceStatus("paid")
	InvoiceStatusCancelled = InvoiceStatus("cancelled")
)

// TotalTolerance is the rounding tolerance for monetary invariants.
var TotalTolerance = decimal.NewFromFloat(0.01)

// Customer holds the withholding configuration the engine reads. The
// customer record itself is owned by customer management.
type Customer struct {
	ID                       string
	CompanyID                string
	Name                     string
	WithholdingAgent         bool
	VATWithholdingRate       decimal.Decimal
	IncomeTaxWithholdingRate decimal.Decimal
}

// InvoiceLine is a single billed item.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	ProductID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	DiscountPct decimal.Decimal
	TaxRate     decimal.Decimal
}

// Subtotal returns quantity * unit price net of the line discount,
// unrounded. Rounding happens only where tax is computed.
func (l *InvoiceLine) Subtotal() decimal.Decimal {
	gross := l.Quantity.Mul(l.UnitPrice)
	if l.DiscountPct.IsZero() {
		return gross
	}
	factor := decimal.NewFromInt(1).Sub(l.DiscountPct.Div(decimal.NewFromInt(100)))
	return gross.Mul(factor)
}

// Invoice is the read model the posting engine consumes. It is owned by
// the invoicing subsystem; the engine never writes back to it.
type Invoice struct {
	ID               string
	CompanyID        string
	Customer         *Customer
	Date             time.Time
	Status           InvoiceStatus
	Subtotal         decimal.Decimal
	TaxAmount        decimal.Decimal
	Total            decimal.Decimal
	PaymentAccountID string
	CreatedBy        string
	Lines            []*InvoiceLine
}

// ValidateForPosting checks the completeness requirements of the builder.
// It returns an IncompleteInvoiceError naming every missing field so the
// operator can fix them in one pass.
func (i *Invoice) ValidateForPosting() error {
	var missing []string
	if i.CompanyID == "" {
		missing = append(missing, "company")
	}
	if i.Customer == nil {
		missing = append(missing, "customer")
	}
	if i.PaymentAccountID == "" {
		missing = append(missing, "payment account")
	}
	if !i.Total.IsPositive() {
		missing = append(missing, "total")
	}
	if len(missing) > 0 {
		return &IncompleteInvoiceError{InvoiceID: i.ID, Missing: missing}
	}

	if !i.Total.Sub(i.Subtotal.Add(i.TaxAmount)).Abs().LessThanOrEqual(TotalTolerance) {
		return ErrTotalMismatch
	}

	return nil
}
