package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
)

// CostLines are the cost-of-goods-sold debits and inventory-reduction
// credits of an invoice, grouped by account ID. The two sides always
// carry the same total.
type CostLines struct {
	CostByAccount      map[string]decimal.Decimal
	InventoryByAccount map[string]decimal.Decimal
	AccountCodes       map[string]string
}

// Total returns the summed cost side.
func (c *CostLines) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range c.CostByAccount {
		total = total.Add(amount)
	}
	return total
}

func (c *CostLines) inventoryTotal() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range c.InventoryByAccount {
		total = total.Add(amount)
	}
	return total
}

// InventoryCostPoster computes COGS/inventory amounts for the stock-
// tracked products on an invoice. A product's cost and inventory lines
// are posted as a pair or not at all, so the balance invariant holds
// locally as well as globally.
type InventoryCostPoster struct {
	products ProductRepository
	accounts AccountRepository
	config   ResolutionConfigRepository
	logger   zerolog.Logger
}

// NewInventoryCostPoster creates an InventoryCostPoster.
func NewInventoryCostPoster(
	products ProductRepository,
	accounts AccountRepository,
	config ResolutionConfigRepository,
	logger zerolog.Logger,
) *InventoryCostPoster {
	return &InventoryCostPoster{
		products: products,
		accounts: accounts,
		config:   config,
		logger:   logger,
	}
}

// ComputeCostLines processes the inventory-tracked lines of an invoice.
// Lines with zero or unset cost are skipped with a warning rather than
// posted as zero-value noise; products whose effective cost or inventory
// account is unusable are skipped entirely.
func (p *InventoryCostPoster) ComputeCostLines(ctx context.Context, invoice *domain.Invoice) (*CostLines, []Warning, error) {
	result := &CostLines{
		CostByAccount:      make(map[string]decimal.Decimal),
		InventoryByAccount: make(map[string]decimal.Decimal),
		AccountCodes:       make(map[string]string),
	}

	productIDs := collectProductIDs(invoice.Lines)
	if len(productIDs) == 0 {
		return result, nil, nil
	}

	products, err := p.products.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}

	defaults, err := p.config.GetDefaults(ctx, invoice.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	var defaultCostID, defaultInventoryID string
	if defaults != nil {
		defaultCostID = defaults.CostAccountID
		defaultInventoryID = defaults.InventoryAccountID
	}

	var warnings []Warning
	for _, line := range invoice.Lines {
		product := products[line.ProductID]
		if product == nil || !product.TracksInventory {
			continue
		}

		cost := line.Quantity.Mul(product.CostPrice).Round(2)
		if !cost.IsPositive() {
			warnings = append(warnings, warningf(WarnProductCostSkipped,
				"product %s has no cost price; cost lines skipped", product.Name))
			p.logger.Warn().
				Str("invoice_id", invoice.ID).
				Str("product_id", product.ID).
				Msg("skipping zero-cost product")

			continue
		}

		costAccount, err := p.usableAccount(ctx, product.EffectiveCostAccountID(defaultCostID))
		if err != nil {
			return nil, nil, err
		}
		inventoryAccount, err := p.usableAccount(ctx, product.EffectiveInventoryAccountID(defaultInventoryID))
		if err != nil {
			return nil, nil, err
		}

		// Never post one side without the other.
		if costAccount == nil || inventoryAccount == nil {
			warnings = append(warnings, warningf(WarnInventoryPairSkipped,
				"product %s has no usable cost/inventory accounts; pair skipped", product.Name))

			continue
		}

		result.CostByAccount[costAccount.ID] = result.CostByAccount[costAccount.ID].Add(cost)
		result.InventoryByAccount[inventoryAccount.ID] = result.InventoryByAccount[inventoryAccount.ID].Add(cost)
		result.AccountCodes[costAccount.ID] = costAccount.Code
		result.AccountCodes[inventoryAccount.ID] = inventoryAccount.Code
	}

	if !result.Total().Equal(result.inventoryTotal()) {
		return nil, warnings, &domain.CostMismatchError{
			InvoiceID:      invoice.ID,
			CostTotal:      result.Total(),
			InventoryTotal: result.inventoryTotal(),
		}
	}

	return result, warnings, nil
}

// usableAccount loads an account and returns nil (without error) when it
// is missing, inactive, or rejects movement.
func (p *InventoryCostPoster) usableAccount(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, nil
	}

	account, err := p.accounts.GetByID(ctx, id)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !account.CanReceivePosting() {
		return nil, nil
	}
	return account, nil
}

func collectProductIDs(lines []*domain.InvoiceLine) []string {
	seen := make(map[string]bool)

	var ids []string
	for _, line := range lines {
		if line.ProductID == "" || seen[line.ProductID] {
			continue
		}
		seen[line.ProductID] = true
		ids = append(ids, line.ProductID)
	}

	return ids
}
