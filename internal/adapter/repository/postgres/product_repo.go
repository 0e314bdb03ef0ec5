package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contaec/contaledger/internal/domain"
)

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// GetByIDs retrieves products by ID. Unknown IDs are simply absent from
// the result map.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	result := make(map[string]*domain.Product)
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT id, company_id, name, tracks_inventory, cost_price,
		       COALESCE(sales_account_id, ''),
		       COALESCE(cost_account_id, ''),
		       COALESCE(inventory_account_id, '')
		FROM products
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product
		var costPrice pgtype.Numeric
		err := rows.Scan(
			&p.ID,
			&p.CompanyID,
			&p.Name,
			&p.TracksInventory,
			&costPrice,
			&p.SalesAccountID,
			&p.CostAccountID,
			&p.InventoryAccountID,
		)
		if err != nil {
			return nil, err
		}

		p.CostPrice = numericToDecimal(costPrice)
		result[p.ID] = &p
	}

	return result, rows.Err()
}
