package usecase

import "fmt"

// Warning codes surfaced to the operator alongside posting results.
const (
	WarnSyntheticTaxBreakdown   = "synthetic_tax_breakdown"
	WarnWithholdingUnresolved   = "withholding_account_unresolved"
	WarnTaxAccountUnresolved    = "tax_account_unresolved"
	WarnProductCostSkipped      = "product_cost_skipped"
	WarnInventoryPairSkipped    = "inventory_pair_skipped"
	WarnReversalWithoutOriginal = "reversal_without_original"
)

// Warning is a structured, non-fatal notice produced while building or
// posting an entry. Warnings are reported, never silently dropped.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func warningf(code, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
