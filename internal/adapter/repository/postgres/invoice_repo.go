package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contaec/contaledger/internal/domain"
)

// InvoiceRepository implements usecase.InvoiceRepository. The invoice
// tables belong to the invoicing subsystem; this repository only reads.
type InvoiceRepository struct {
	pool *pgxpool.Pool
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{pool: pool}
}

// GetByID retrieves an invoice with its customer and lines.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `
		SELECT i.id, i.company_id, i.date, i.status,
		       i.subtotal, i.tax_amount, i.total,
		       COALESCE(i.payment_account_id, ''), COALESCE(i.created_by, ''),
		       c.id, c.company_id, c.name, c.withholding_agent,
		       c.vat_withholding_rate, c.ir_withholding_rate
		FROM invoices i
		JOIN customers c ON c.id = i.customer_id
		WHERE i.id = $1
	`

	var inv domain.Invoice
	var customer domain.Customer
	var subtotal, taxAmount, total, vatRate, irRate pgtype.Numeric
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.CompanyID,
		&inv.Date,
		&inv.Status,
		&subtotal,
		&taxAmount,
		&total,
		&inv.PaymentAccountID,
		&inv.CreatedBy,
		&customer.ID,
		&customer.CompanyID,
		&customer.Name,
		&customer.WithholdingAgent,
		&vatRate,
		&irRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	inv.Subtotal = numericToDecimal(subtotal)
	inv.TaxAmount = numericToDecimal(taxAmount)
	inv.Total = numericToDecimal(total)
	customer.VATWithholdingRate = numericToDecimal(vatRate)
	customer.IncomeTaxWithholdingRate = numericToDecimal(irRate)
	inv.Customer = &customer

	lines, err := r.getLines(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines

	return &inv, nil
}

func (r *InvoiceRepository) getLines(ctx context.Context, invoiceID string) ([]*domain.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, COALESCE(product_id, ''), description,
		       quantity, unit_price, discount_pct, tax_rate
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*domain.InvoiceLine
	for rows.Next() {
		var line domain.InvoiceLine
		var qty, price, discountPct, taxRate pgtype.Numeric
		err := rows.Scan(
			&line.ID,
			&line.InvoiceID,
			&line.ProductID,
			&line.Description,
			&qty,
			&price,
			&discountPct,
			&taxRate,
		)
		if err != nil {
			return nil, err
		}

		line.Quantity = numericToDecimal(qty)
		line.UnitPrice = numericToDecimal(price)
		line.DiscountPct = numericToDecimal(discountPct)
		line.TaxRate = numericToDecimal(taxRate)
		lines = append(lines, &line)
	}

	return lines, rows.Err()
}
