package domain

import "github.com/shopspring/decimal"

// AccountDefaults holds a company's fallback posting accounts. Owned by
// company configuration; read-only to the posting engine.
type AccountDefaults struct {
	CompanyID                         string
	SalesAccountID                    string
	VATWithholdingReceivableAccountID string
	IRWithholdingReceivableAccountID  string
	CostAccountID                     string
	InventoryAccountID                string
}

// TaxAccountMapping maps one tax rate to its tax account and, optionally,
// a rate-specific withholding receivable account.
type TaxAccountMapping struct {
	CompanyID            string
	TaxRate              decimal.Decimal
	TaxAccountID         string
	WithholdingAccountID string
}

// LegacyTaxTable is the deprecated ecosystem-wide fallback from tax rate
// to account code. It is an explicit, versioned value injected into the
// resolver rather than a package constant, so deployments can swap or
// retire it without a code change.
type LegacyTaxTable struct {
	Version string
	Codes   map[string]string // rate (2dp string) -> account code
}

// CodeForRate looks up the legacy account code for a rate.
func (t *LegacyTaxTable) CodeForRate(rate decimal.Decimal) (string, bool) {
	if t == nil || len(t.Codes) == 0 {
		return "", false
	}
	code, ok := t.Codes[rate.StringFixed(2)]
	return code, ok && code != ""
}

// DefaultLegacyTaxTable returns the rate table the original deployments
// shipped with. Kept for compatibility with companies that predate
// per-company tax account mappings.
func DefaultLegacyTaxTable() *LegacyTaxTable {
	return &LegacyTaxTable{
		Version: "2024-ec-iva",
		Codes: map[string]string{
			"5.00":  "2.1.01.05",
			"12.00": "2.1.01.02",
			"15.00": "2.1.01.01",
		},
	}
}
