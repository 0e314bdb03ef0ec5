package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
)

// Withholding is the amount a withholding-agent customer deducts from
// the invoice and remits to the tax authority on the seller's behalf.
type Withholding struct {
	VAT       decimal.Decimal
	IncomeTax decimal.Decimal
}

// Total returns the combined withheld amount.
func (w Withholding) Total() decimal.Decimal {
	return w.VAT.Add(w.IncomeTax)
}

// IsZero reports whether nothing is withheld.
func (w Withholding) IsZero() bool {
	return w.VAT.IsZero() && w.IncomeTax.IsZero()
}

// WithholdingCalculator computes retention amounts from the customer's
// configured percentages. VAT withholding applies to the tax amount;
// income tax withholding applies to the subtotal, per local convention.
type WithholdingCalculator struct{}

// NewWithholdingCalculator creates a WithholdingCalculator.
func NewWithholdingCalculator() *WithholdingCalculator {
	return &WithholdingCalculator{}
}

// Compute returns the withholding for an invoice's subtotal and tax
// amount. Both amounts are zero unless the customer is a withholding
// agent. Percentages outside [0, 100] are clamped so that the combined
// withholding can never exceed the invoice total.
func (c *WithholdingCalculator) Compute(customer *domain.Customer, subtotal, taxAmount decimal.Decimal) Withholding {
	if customer == nil || !customer.WithholdingAgent {
		return Withholding{VAT: decimal.Zero, IncomeTax: decimal.Zero}
	}

	vatRate := clampPercentage(customer.VATWithholdingRate)
	irRate := clampPercentage(customer.IncomeTaxWithholdingRate)

	return Withholding{
		VAT:       taxAmount.Mul(vatRate).Div(hundred).Round(2),
		IncomeTax: subtotal.Mul(irRate).Div(hundred).Round(2),
	}
}

func clampPercentage(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}
	if rate.GreaterThan(hundred) {
		return hundred
	}
	return rate
}
