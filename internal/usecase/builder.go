package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
)

// BuildResult carries the assembled entry together with everything the
// operator needs to act on: warnings, the computed withholding, and the
// tax breakdown.
type BuildResult struct {
	Entry       *domain.JournalEntry
	Warnings    []Warning
	Withholding Withholding
	Breakdown   TaxBreakdown
}

// JournalEntryBuilder assembles a balanced journal entry draft from an
// invoice. It never persists anything; any failure is reported to the
// caller, which decides whether to retry after fixing data or
// configuration.
type JournalEntryBuilder struct {
	resolver    *AccountResolver
	tax         *TaxBreakdownCalculator
	withholding *WithholdingCalculator
	inventory   *InventoryCostPoster
	products    ProductRepository
	accounts    AccountRepository
	logger      zerolog.Logger
}

// NewJournalEntryBuilder creates a JournalEntryBuilder.
func NewJournalEntryBuilder(
	resolver *AccountResolver,
	tax *TaxBreakdownCalculator,
	withholding *WithholdingCalculator,
	inventory *InventoryCostPoster,
	products ProductRepository,
	accounts AccountRepository,
	logger zerolog.Logger,
) *JournalEntryBuilder {
	return &JournalEntryBuilder{
		resolver:    resolver,
		tax:         tax,
		withholding: withholding,
		inventory:   inventory,
		products:    products,
		accounts:    accounts,
		logger:      logger,
	}
}

// Build validates the invoice, computes tax, withholding and cost
// amounts, and assembles the debit/credit lines. When a configuration
// gap forces a line to be omitted, the omission is recorded as a warning
// and the final balance assertion fails with UnbalancedEntryError — an
// entry missing one side of a posting is never returned as valid.
func (b *JournalEntryBuilder) Build(ctx context.Context, invoice *domain.Invoice) (*BuildResult, error) {
	result := &BuildResult{}

	// Validating
	if err := invoice.ValidateForPosting(); err != nil {
		return nil, err
	}

	paymentAccount, err := b.accounts.GetByID(ctx, invoice.PaymentAccountID)
	if err != nil {
		return nil, fmt.Errorf("payment account: %w", err)
	}
	if err := paymentAccount.ValidateForPosting(); err != nil {
		return nil, fmt.Errorf("payment account %s: %w", paymentAccount.Code, err)
	}

	// Computing
	result.Breakdown = b.tax.ComputeBreakdown(invoice)
	if result.Breakdown.Synthetic {
		result.Warnings = append(result.Warnings, warningf(WarnSyntheticTaxBreakdown,
			"invoice %s has no lines; tax bucket reconstructed from header totals", invoice.ID))
	}

	result.Withholding = b.withholding.Compute(invoice.Customer, invoice.Subtotal, invoice.TaxAmount)

	costLines, costWarnings, err := b.inventory.ComputeCostLines(ctx, invoice)
	if err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, costWarnings...)

	// Assembling
	reference := domain.InvoiceReference(invoice.ID)
	entry := &domain.JournalEntry{
		CompanyID:   invoice.CompanyID,
		Date:        invoice.Date,
		Reference:   reference,
		Description: fmt.Sprintf("VENTA FACTURA %s", reference),
		CreatedBy:   invoice.CreatedBy,
	}
	result.Entry = entry

	b.appendPaymentLine(entry, invoice, paymentAccount, result.Withholding)
	b.appendWithholdingLines(ctx, entry, invoice, result)
	if err := b.appendSalesLines(ctx, entry, invoice, result); err != nil {
		return result, err
	}
	b.appendTaxLines(ctx, entry, invoice, result)
	b.appendCostLines(entry, invoice, costLines)

	// Balanced | Failed
	if err := entry.Validate(); err != nil {
		b.logger.Warn().
			Str("invoice_id", invoice.ID).
			Str("reference", reference).
			Str("delta", entry.BalanceDelta().String()).
			Msg("assembled entry does not balance")

		return result, err
	}

	return result, nil
}

// appendPaymentLine emits the debit to the invoice's selected payment
// account: total minus whatever the customer withholds.
func (b *JournalEntryBuilder) appendPaymentLine(entry *domain.JournalEntry, invoice *domain.Invoice, account *domain.Account, wh Withholding) {
	net := invoice.Total.Sub(wh.Total())
	if !net.IsPositive() {
		return
	}

	entry.Lines = append(entry.Lines, &domain.JournalEntryLine{
		AccountID:     account.ID,
		AccountCode:   account.Code,
		Debit:         net,
		Description:   fmt.Sprintf("COBRO FACTURA %s", entry.Reference),
		DocumentType:  domain.DocumentTypeInvoice,
		AuxiliaryCode: invoice.Customer.ID,
		AuxiliaryName: invoice.Customer.Name,
	})
}

// appendWithholdingLines emits one debit per withholding type with a
// non-zero amount. An unresolvable withholding account drops that line
// and records a warning; the payment debit is never inflated to cover
// the gap, so the entry will fail the balance assertion instead.
func (b *JournalEntryBuilder) appendWithholdingLines(ctx context.Context, entry *domain.JournalEntry, invoice *domain.Invoice, result *BuildResult) {
	if result.Withholding.VAT.IsPositive() {
		rate := b.tax.DominantRate(invoice)
		account, err := b.resolver.ResolveVATWithholdingAccount(ctx, invoice.CompanyID, rate)
		if err != nil {
			result.Warnings = append(result.Warnings, warningf(WarnWithholdingUnresolved,
				"VAT withholding line of %s omitted: %v", result.Withholding.VAT, err))
		} else {
			entry.Lines = append(entry.Lines, &domain.JournalEntryLine{
				AccountID:     account.ID,
				AccountCode:   account.Code,
				Debit:         result.Withholding.VAT,
				Description:   fmt.Sprintf("RETENCION IVA FACTURA %s", entry.Reference),
				DocumentType:  domain.DocumentTypeRetention,
				AuxiliaryCode: invoice.Customer.ID,
				AuxiliaryName: invoice.Customer.Name,
			})
		}
	}

	if result.Withholding.IncomeTax.IsPositive() {
		account, err := b.resolver.ResolveIncomeTaxWithholdingAccount(ctx, invoice.CompanyID)
		if err != nil {
			result.Warnings = append(result.Warnings, warningf(WarnWithholdingUnresolved,
				"income tax withholding line of %s omitted: %v", result.Withholding.IncomeTax, err))
		} else {
			entry.Lines = append(entry.Lines, &domain.JournalEntryLine{
				AccountID:     account.ID,
				AccountCode:   account.Code,
				Debit:         result.Withholding.IncomeTax,
				Description:   fmt.Sprintf("RETENCION IR FACTURA %s", entry.Reference),
				DocumentType:  domain.DocumentTypeRetention,
				AuxiliaryCode: invoice.Customer.ID,
				AuxiliaryName: invoice.Customer.Name,
			})
		}
	}
}

// appendSalesLines emits the sales credit side. When per-product sales
// account overrides exist, one credit is emitted per distinct resolved
// account; otherwise a single credit at the company default covers the
// whole subtotal. Failing to resolve the default sales account is fatal:
// there is no way to assemble the credit side without it.
func (b *JournalEntryBuilder) appendSalesLines(ctx context.Context, entry *domain.JournalEntry, invoice *domain.Invoice, result *BuildResult) error {
	bySalesAccount := make(map[string]decimal.Decimal)

	if len(invoice.Lines) == 0 {
		bySalesAccount[""] = invoice.Subtotal
	} else {
		products, err := b.products.GetByIDs(ctx, collectProductIDs(invoice.Lines))
		if err != nil {
			return err
		}

		for _, line := range invoice.Lines {
			accountID := products[line.ProductID].EffectiveSalesAccountID("")
			bySalesAccount[accountID] = bySalesAccount[accountID].Add(line.Subtotal())
		}
	}

	var defaultAccount *domain.Account
	if _, needsDefault := bySalesAccount[""]; needsDefault {
		account, err := b.resolver.ResolveSalesAccount(ctx, invoice.CompanyID)
		if err != nil {
			return err
		}
		defaultAccount = account
	}

	accountIDs := make([]string, 0, len(bySalesAccount))
	for id := range bySalesAccount {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	for _, id := range accountIDs {
		amount := bySalesAccount[id].Round(2)
		if !amount.IsPositive() {
			continue
		}

		account := defaultAccount
		if id != "" {
			overridden, err := b.accounts.GetByID(ctx, id)
			if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
				return err
			}
			if overridden.CanReceivePosting() {
				account = overridden
			} else {
				// Unusable override falls back to the company default.
				if defaultAccount == nil {
					fallback, err := b.resolver.ResolveSalesAccount(ctx, invoice.CompanyID)
					if err != nil {
						return err
					}
					defaultAccount = fallback
				}
				account = defaultAccount
			}
		}

		entry.Lines = append(entry.Lines, &domain.JournalEntryLine{
			AccountID:    account.ID,
			AccountCode:  account.Code,
			Credit:       amount,
			Description:  fmt.Sprintf("VENTA FACTURA %s", entry.Reference),
			DocumentType: domain.DocumentTypeInvoice,
		})
	}

	return nil
}

// appendTaxLines emits one credit per non-zero rate bucket. A bucket
// whose tax account cannot be resolved is omitted with a warning; the
// resulting imbalance is caught by the final balance assertion.
func (b *JournalEntryBuilder) appendTaxLines(ctx context.Context, entry *domain.JournalEntry, invoice *domain.Invoice, result *BuildResult) {
	for _, bucket := range result.Breakdown.Buckets {
		account, err := b.resolver.ResolveTaxAccount(ctx, invoice.CompanyID, bucket.Rate)
		if err != nil {
			result.Warnings = append(result.Warnings, warningf(WarnTaxAccountUnresolved,
				"tax credit of %s at rate %s%% omitted: %v", bucket.Tax, bucket.Rate, err))

			continue
		}

		entry.Lines = append(entry.Lines, &domain.JournalEntryLine{
			AccountID:    account.ID,
			AccountCode:  account.Code,
			Credit:       bucket.Tax,
			Description:  fmt.Sprintf("IVA %s%% FACTURA %s", bucket.Rate, entry.Reference),
			DocumentType: domain.DocumentTypeInvoice,
		})
	}
}

// appendCostLines adds the COGS debits and inventory credits. These are
// additive to the sale lines: both sides grow by the same amount, so the
// balance invariant is preserved.
func (b *JournalEntryBuilder) appendCostLines(entry *domain.JournalEntry, invoice *domain.Invoice, costLines *CostLines) {
	for _, id := range sortedKeys(costLines.CostByAccount) {
		entry.Lines = append(entry.Lines, &domain.JournalEntryLine{
			AccountID:    id,
			AccountCode:  costLines.AccountCodes[id],
			Debit:        costLines.CostByAccount[id],
			Description:  fmt.Sprintf("COSTO VENTA FACTURA %s", entry.Reference),
			DocumentType: domain.DocumentTypeCost,
		})
	}

	for _, id := range sortedKeys(costLines.InventoryByAccount) {
		entry.Lines = append(entry.Lines, &domain.JournalEntryLine{
			AccountID:    id,
			AccountCode:  costLines.AccountCodes[id],
			Credit:       costLines.InventoryByAccount[id],
			Description:  fmt.Sprintf("SALIDA INVENTARIO FACTURA %s", entry.Reference),
			DocumentType: domain.DocumentTypeCost,
		})
	}
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
