package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
)

// ResolutionConfigRepository implements usecase.ResolutionConfigRepository.
// Absent configuration is not an error: both lookups return nil when the
// company has nothing configured, and the resolver moves on.
type ResolutionConfigRepository struct {
	pool *pgxpool.Pool
}

// NewResolutionConfigRepository creates a new ResolutionConfigRepository.
func NewResolutionConfigRepository(pool *pgxpool.Pool) *ResolutionConfigRepository {
	return &ResolutionConfigRepository{pool: pool}
}

// GetDefaults retrieves the company-level default posting accounts.
func (r *ResolutionConfigRepository) GetDefaults(ctx context.Context, companyID string) (*domain.AccountDefaults, error) {
	query := `
		SELECT company_id,
		       COALESCE(sales_account_id, ''),
		       COALESCE(vat_withholding_account_id, ''),
		       COALESCE(ir_withholding_account_id, ''),
		       COALESCE(cost_account_id, ''),
		       COALESCE(inventory_account_id, '')
		FROM company_account_defaults
		WHERE company_id = $1
	`

	var d domain.AccountDefaults
	err := r.pool.QueryRow(ctx, query, companyID).Scan(
		&d.CompanyID,
		&d.SalesAccountID,
		&d.VATWithholdingReceivableAccountID,
		&d.IRWithholdingReceivableAccountID,
		&d.CostAccountID,
		&d.InventoryAccountID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &d, nil
}

// GetTaxMapping retrieves the rate-specific account mapping.
func (r *ResolutionConfigRepository) GetTaxMapping(ctx context.Context, companyID string, rate decimal.Decimal) (*domain.TaxAccountMapping, error) {
	query := `
		SELECT company_id, tax_rate, tax_account_id, COALESCE(withholding_account_id, '')
		FROM company_tax_account_mappings
		WHERE company_id = $1 AND tax_rate = $2
	`

	var (
		m       domain.TaxAccountMapping
		taxRate pgtype.Numeric
	)
	err := r.pool.QueryRow(ctx, query, companyID, decimalToNumeric(rate)).Scan(
		&m.CompanyID,
		&taxRate,
		&m.TaxAccountID,
		&m.WithholdingAccountID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}
	m.TaxRate = numericToDecimal(taxRate)

	return &m, nil
}
