package domain

import "github.com/shopspring/decimal"

// Product is the read model for the items referenced by invoice lines.
// Account fields are optional per-product overrides of the company
// defaults.
type Product struct {
	ID                 string
	CompanyID          string
	Name               string
	TracksInventory    bool
	CostPrice          decimal.Decimal
	SalesAccountID     string
	CostAccountID      string
	InventoryAccountID string
}

// EffectiveSalesAccountID returns the product override, or the fallback
// when none is set.
func (p *Product) EffectiveSalesAccountID(fallback string) string {
	if p != nil && p.SalesAccountID != "" {
		return p.SalesAccountID
	}
	return fallback
}

// EffectiveCostAccountID returns the product override, or the fallback
// when none is set.
func (p *Product) EffectiveCostAccountID(fallback string) string {
	if p != nil && p.CostAccountID != "" {
		return p.CostAccountID
	}
	return fallback
}

// EffectiveInventoryAccountID returns the product override, or the
// fallback when none is set.
func (p *Product) EffectiveInventoryAccountID(fallback string) string {
	if p != nil && p.InventoryAccountID != "" {
		return p.InventoryAccountID
	}
	return fallback
}
