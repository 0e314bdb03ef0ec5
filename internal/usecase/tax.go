package usecase

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// TaxBucket is the accumulated base and tax for one rate.
type TaxBucket struct {
	Rate decimal.Decimal
	Base decimal.Decimal
	Tax  decimal.Decimal
}

// TaxBreakdown is the per-rate tax summary of an invoice. Synthetic
// marks breakdowns reconstructed from header totals instead of lines;
// downstream consumers must treat those as best-effort.
type TaxBreakdown struct {
	Buckets   []TaxBucket
	Synthetic bool
}

// TotalTax sums the tax across all buckets.
func (b TaxBreakdown) TotalTax() decimal.Decimal {
	total := decimal.Zero
	for _, bucket := range b.Buckets {
		total = total.Add(bucket.Tax)
	}
	return total
}

// TaxBreakdownCalculator groups invoice line amounts by tax rate.
type TaxBreakdownCalculator struct {
	defaultRate decimal.Decimal
}

// NewTaxBreakdownCalculator creates a calculator with the standard
// hard-default rate.
func NewTaxBreakdownCalculator() *TaxBreakdownCalculator {
	rate, _ := decimal.NewFromString(DefaultTaxRate)
	return &TaxBreakdownCalculator{defaultRate: rate}
}

// ComputeBreakdown accumulates line subtotals and taxes by rate.
// Rounding happens once per line at tax computation; per-rate sums are
// not re-rounded, so rounding error does not compound across lines.
// Rates that accumulate zero tax are dropped.
//
// Invoices without lines but with a header tax amount (legacy imports)
// fall back to a single synthetic bucket at the dominant rate.
func (c *TaxBreakdownCalculator) ComputeBreakdown(invoice *domain.Invoice) TaxBreakdown {
	if len(invoice.Lines) == 0 {
		if invoice.TaxAmount.IsZero() {
			return TaxBreakdown{}
		}
		return TaxBreakdown{
			Synthetic: true,
			Buckets: []TaxBucket{{
				Rate: c.DominantRate(invoice),
				Base: invoice.Subtotal,
				Tax:  invoice.TaxAmount,
			}},
		}
	}

	byRate := make(map[string]*TaxBucket)
	for _, line := range invoice.Lines {
		base := line.Subtotal()
		tax := base.Mul(line.TaxRate).Div(hundred).Round(2)

		key := line.TaxRate.StringFixed(2)
		bucket, ok := byRate[key]
		if !ok {
			bucket = &TaxBucket{Rate: line.TaxRate}
			byRate[key] = bucket
		}
		bucket.Base = bucket.Base.Add(base)
		bucket.Tax = bucket.Tax.Add(tax)
	}

	buckets := make([]TaxBucket, 0, len(byRate))
	for _, bucket := range byRate {
		if bucket.Tax.IsZero() {
			continue
		}
		buckets = append(buckets, *bucket)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Rate.LessThan(buckets[j].Rate)
	})

	return TaxBreakdown{Buckets: buckets}
}

// DominantRate returns the most representative tax rate of an invoice:
// the most frequent non-zero line rate, then the rate implied by the
// header totals, then the hard default. A heuristic, not authoritative;
// used only when line detail is missing.
func (c *TaxBreakdownCalculator) DominantRate(invoice *domain.Invoice) decimal.Decimal {
	counts := make(map[string]int)
	rates := make(map[string]decimal.Decimal)
	for _, line := range invoice.Lines {
		if line.TaxRate.IsZero() {
			continue
		}
		key := line.TaxRate.StringFixed(2)
		counts[key]++
		rates[key] = line.TaxRate
	}

	if len(counts) > 0 {
		var bestKey string
		bestCount := -1
		for key, count := range counts {
			// Ties break toward the higher rate for determinism.
			if count > bestCount || (count == bestCount && rates[key].GreaterThan(rates[bestKey])) {
				bestKey = key
				bestCount = count
			}
		}
		return rates[bestKey]
	}

	if invoice.Subtotal.IsPositive() && invoice.TaxAmount.IsPositive() {
		return invoice.TaxAmount.Div(invoice.Subtotal).Mul(hundred).Round(2)
	}

	return c.defaultRate
}
