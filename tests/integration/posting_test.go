package integration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/adapter/repository/postgres"
	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
	"github.com/contaec/contaledger/tests/testutil"
)

// chart bundles the accounts seeded for a posting scenario.
type chart struct {
	companyID string
	cash      *domain.Account
	sales     *domain.Account
	tax       *domain.Account
	vatWH     *domain.Account
	irWH      *domain.Account
	cost      *domain.Account
	inventory *domain.Account
}

func newEngine(db *testutil.TestDB) *usecase.PostingUseCase {
	pool := db.Pool
	accountRepo := postgres.NewAccountRepository(pool)
	configRepo := postgres.NewResolutionConfigRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	entryRepo := postgres.NewJournalEntryRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)

	logger := zerolog.Nop()
	resolver := usecase.NewAccountResolver(configRepo, accountRepo, domain.DefaultLegacyTaxTable(), nil, logger)
	builder := usecase.NewJournalEntryBuilder(
		resolver,
		usecase.NewTaxBreakdownCalculator(),
		usecase.NewWithholdingCalculator(),
		usecase.NewInventoryCostPoster(productRepo, accountRepo, configRepo, logger),
		productRepo,
		accountRepo,
		logger,
	)

	return usecase.NewPostingUseCase(
		postgres.NewTxManager(pool),
		invoiceRepo,
		entryRepo,
		auditRepo,
		builder,
		postgres.NewULIDGenerator(),
		postgres.NewRetrier(logger),
		logger,
		nil,
	)
}

func newLedger(db *testutil.TestDB) *usecase.LedgerUseCase {
	return usecase.NewLedgerUseCase(postgres.NewJournalEntryRepository(db.Pool))
}

func seedChart(ctx context.Context, db *testutil.TestDB) *chart {
	companyID := testutil.GenerateID()

	c := &chart{
		companyID: companyID,
		cash:      db.CreateTestAccount(ctx, companyID, "1.1.01.01", "CAJA GENERAL"),
		sales:     db.CreateTestAccount(ctx, companyID, "4.1.01.01", "VENTAS LOCALES"),
		tax:       db.CreateTestAccount(ctx, companyID, "2.1.01.01", "IVA POR PAGAR 15%"),
		vatWH:     db.CreateTestAccount(ctx, companyID, "1.1.05.01", "RETENCION IVA CLIENTES"),
		irWH:      db.CreateTestAccount(ctx, companyID, "1.1.05.02", "RETENCION FUENTE CLIENTES"),
		cost:      db.CreateTestAccount(ctx, companyID, "5.1.01.01", "COSTO DE VENTAS"),
		inventory: db.CreateTestAccount(ctx, companyID, "1.1.03.01", "INVENTARIO MERCADERIAS"),
	}

	db.SeedAccountDefaults(ctx, domain.AccountDefaults{
		CompanyID:                         companyID,
		SalesAccountID:                    c.sales.ID,
		VATWithholdingReceivableAccountID: c.vatWH.ID,
		IRWithholdingReceivableAccountID:  c.irWH.ID,
		CostAccountID:                     c.cost.ID,
		InventoryAccountID:                c.inventory.ID,
	})
	db.SeedTaxMapping(ctx, domain.TaxAccountMapping{
		CompanyID:    companyID,
		TaxRate:      decimal.NewFromInt(15),
		TaxAccountID: c.tax.ID,
	})

	return c
}

func seedSentInvoice(ctx context.Context, db *testutil.TestDB, c *chart) *domain.Invoice {
	customer := db.CreateTestCustomer(ctx, c.companyID, "ACME S.A.", false, decimal.Zero, decimal.Zero)

	return db.CreateTestInvoice(ctx, &domain.Invoice{
		CompanyID:        c.companyID,
		Customer:         customer,
		Status:           domain.InvoiceStatusSent,
		Subtotal:         decimal.NewFromInt(100),
		TaxAmount:        decimal.NewFromInt(15),
		Total:            decimal.NewFromInt(115),
		PaymentAccountID: c.cash.ID,
		CreatedBy:        "user-1",
		Lines: []*domain.InvoiceLine{
			{
				Description: "Servicio profesional",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.NewFromInt(100),
				TaxRate:     decimal.NewFromInt(15),
			},
		},
	})
}

func countEntries(ctx context.Context, t *testing.T, db *testutil.TestDB, companyID string) int {
	t.Helper()

	var count int
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM journal_entries WHERE company_id = $1`, companyID).Scan(&count)
	if err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	return count
}

func TestPostInvoice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	uc := newEngine(db)
	c := seedChart(ctx, db)
	invoice := seedSentInvoice(ctx, db, c)

	t.Run("creates a balanced entry", func(t *testing.T) {
		result, err := uc.Post(ctx, invoice.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Created {
			t.Fatalf("expected a new entry")
		}
		if result.Entry.Reference != "FAC-"+invoice.ID {
			t.Fatalf("unexpected reference %s", result.Entry.Reference)
		}
		if err := result.Entry.Validate(); err != nil {
			t.Fatalf("persisted entry does not balance: %v", err)
		}
		if len(result.Warnings) != 0 {
			t.Fatalf("unexpected warnings: %v", result.Warnings)
		}
	})

	t.Run("replay returns the same entry", func(t *testing.T) {
		first, err := uc.Post(ctx, invoice.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Created {
			t.Fatalf("expected replay, got a new entry")
		}

		if got := countEntries(ctx, t, db, c.companyID); got != 1 {
			t.Fatalf("expected 1 entry, got %d", got)
		}
	})

	t.Run("reads back with lines in order", func(t *testing.T) {
		result, err := uc.Post(ctx, invoice.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entry, err := uc.GetEntry(ctx, result.Entry.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entry.Lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(entry.Lines))
		}
		if !entry.Lines[0].Debit.Equal(decimal.NewFromInt(115)) {
			t.Fatalf("expected payment debit first, got %s", entry.Lines[0].Debit)
		}
	})

	t.Run("audit trail records the attempts", func(t *testing.T) {
		logs, err := uc.AuditTrail(ctx, domain.AuditFilter{CompanyID: c.companyID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(logs) < 2 {
			t.Fatalf("expected at least create + replay audit rows, got %d", len(logs))
		}
	})
}

func TestPostBatchIndependence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	uc := newEngine(db)
	c := seedChart(ctx, db)

	good := seedSentInvoice(ctx, db, c)
	draftCustomer := db.CreateTestCustomer(ctx, c.companyID, "Draft Corp", false, decimal.Zero, decimal.Zero)
	draft := db.CreateTestInvoice(ctx, &domain.Invoice{
		CompanyID:        c.companyID,
		Customer:         draftCustomer,
		Status:           domain.InvoiceStatusDraft,
		Subtotal:         decimal.NewFromInt(10),
		TaxAmount:        decimal.Zero,
		Total:            decimal.NewFromInt(10),
		PaymentAccountID: c.cash.ID,
		CreatedBy:        "user-1",
		Lines: []*domain.InvoiceLine{
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	})

	items := uc.PostBatch(ctx, []string{good.ID, draft.ID})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Error != "" || !items[0].Created {
		t.Fatalf("expected first invoice to post, got %+v", items[0])
	}
	if items[1].Error == "" {
		t.Fatalf("expected draft invoice to fail")
	}

	if got := countEntries(ctx, t, db, c.companyID); got != 1 {
		t.Fatalf("expected 1 entry, got %d", got)
	}
}
