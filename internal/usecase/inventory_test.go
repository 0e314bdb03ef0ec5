package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
	"github.com/contaec/contaledger/internal/usecase/mocks"
)

func newCostPoster(products *mocks.MockProductRepository, accounts *mocks.MockAccountRepository, config *mocks.MockResolutionConfigRepository) *usecase.InventoryCostPoster {
	return usecase.NewInventoryCostPoster(products, accounts, config, zerolog.Nop())
}

func TestInventoryCostPoster_ComputeCostLines(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockProductRepository, *mocks.MockAccountRepository, *mocks.MockResolutionConfigRepository)
		invoice       *domain.Invoice
		wantCost      map[string]string
		wantInventory map[string]string
		wantWarnings  []string
	}{
		{
			name: "tracked product posts a cost and inventory pair",
			setupMocks: func(products *mocks.MockProductRepository, accounts *mocks.MockAccountRepository, config *mocks.MockResolutionConfigRepository) {
				products.Add(&domain.Product{
					ID: "p1", CompanyID: "co1", Name: "Widget",
					TracksInventory: true, CostPrice: dec("7.50"),
				})
				accounts.Add(account("acc-cost", "co1", "5.1.01", "COSTO DE VENTAS"))
				accounts.Add(account("acc-inv", "co1", "1.1.06.01", "INVENTARIO"))
				config.Defaults = &domain.AccountDefaults{
					CompanyID: "co1", CostAccountID: "acc-cost", InventoryAccountID: "acc-inv",
				}
			},
			invoice: &domain.Invoice{
				ID: "inv-1", CompanyID: "co1",
				Lines: []*domain.InvoiceLine{line("p1", "4", "20.00", "0", "15")},
			},
			wantCost:      map[string]string{"acc-cost": "30.00"},
			wantInventory: map[string]string{"acc-inv": "30.00"},
		},
		{
			name: "product account overrides beat company defaults",
			setupMocks: func(products *mocks.MockProductRepository, accounts *mocks.MockAccountRepository, config *mocks.MockResolutionConfigRepository) {
				products.Add(&domain.Product{
					ID: "p1", CompanyID: "co1", Name: "Widget",
					TracksInventory: true, CostPrice: dec("5.00"),
					CostAccountID: "acc-cost-own", InventoryAccountID: "acc-inv-own",
				})
				accounts.Add(account("acc-cost-own", "co1", "5.1.02", "COSTO WIDGETS"))
				accounts.Add(account("acc-inv-own", "co1", "1.1.06.02", "INVENTARIO WIDGETS"))
				accounts.Add(account("acc-cost", "co1", "5.1.01", "COSTO DE VENTAS"))
				accounts.Add(account("acc-inv", "co1", "1.1.06.01", "INVENTARIO"))
				config.Defaults = &domain.AccountDefaults{
					CompanyID: "co1", CostAccountID: "acc-cost", InventoryAccountID: "acc-inv",
				}
			},
			invoice: &domain.Invoice{
				ID: "inv-1", CompanyID: "co1",
				Lines: []*domain.InvoiceLine{line("p1", "2", "10.00", "0", "15")},
			},
			wantCost:      map[string]string{"acc-cost-own": "10.00"},
			wantInventory: map[string]string{"acc-inv-own": "10.00"},
		},
		{
			name: "untracked products contribute nothing",
			setupMocks: func(products *mocks.MockProductRepository, accounts *mocks.MockAccountRepository, config *mocks.MockResolutionConfigRepository) {
				products.Add(&domain.Product{
					ID: "p1", CompanyID: "co1", Name: "Consulting",
					TracksInventory: false, CostPrice: dec("50.00"),
				})
			},
			invoice: &domain.Invoice{
				ID: "inv-1", CompanyID: "co1",
				Lines: []*domain.InvoiceLine{line("p1", "1", "100.00", "0", "15")},
			},
			wantCost:      map[string]string{},
			wantInventory: map[string]string{},
		},
		{
			name: "zero cost price skips the pair with a warning",
			setupMocks: func(products *mocks.MockProductRepository, accounts *mocks.MockAccountRepository, config *mocks.MockResolutionConfigRepository) {
				products.Add(&domain.Product{
					ID: "p1", CompanyID: "co1", Name: "Widget",
					TracksInventory: true,
				})
				accounts.Add(account("acc-cost", "co1", "5.1.01", "COSTO DE VENTAS"))
				accounts.Add(account("acc-inv", "co1", "1.1.06.01", "INVENTARIO"))
				config.Defaults = &domain.AccountDefaults{
					CompanyID: "co1", CostAccountID: "acc-cost", InventoryAccountID: "acc-inv",
				}
			},
			invoice: &domain.Invoice{
				ID: "inv-1", CompanyID: "co1",
				Lines: []*domain.InvoiceLine{line("p1", "3", "10.00", "0", "15")},
			},
			wantCost:      map[string]string{},
			wantInventory: map[string]string{},
			wantWarnings:  []string{usecase.WarnProductCostSkipped},
		},
		{
			name: "missing inventory account skips both sides",
			setupMocks: func(products *mocks.MockProductRepository, accounts *mocks.MockAccountRepository, config *mocks.MockResolutionConfigRepository) {
				products.Add(&domain.Product{
					ID: "p1", CompanyID: "co1", Name: "Widget",
					TracksInventory: true, CostPrice: dec("5.00"),
				})
				accounts.Add(account("acc-cost", "co1", "5.1.01", "COSTO DE VENTAS"))
				config.Defaults = &domain.AccountDefaults{CompanyID: "co1", CostAccountID: "acc-cost"}
			},
			invoice: &domain.Invoice{
				ID: "inv-1", CompanyID: "co1",
				Lines: []*domain.InvoiceLine{line("p1", "2", "10.00", "0", "15")},
			},
			wantCost:      map[string]string{},
			wantInventory: map[string]string{},
			wantWarnings:  []string{usecase.WarnInventoryPairSkipped},
		},
		{
			name: "repeated product accumulates on the same accounts",
			setupMocks: func(products *mocks.MockProductRepository, accounts *mocks.MockAccountRepository, config *mocks.MockResolutionConfigRepository) {
				products.Add(&domain.Product{
					ID: "p1", CompanyID: "co1", Name: "Widget",
					TracksInventory: true, CostPrice: dec("2.50"),
				})
				accounts.Add(account("acc-cost", "co1", "5.1.01", "COSTO DE VENTAS"))
				accounts.Add(account("acc-inv", "co1", "1.1.06.01", "INVENTARIO"))
				config.Defaults = &domain.AccountDefaults{
					CompanyID: "co1", CostAccountID: "acc-cost", InventoryAccountID: "acc-inv",
				}
			},
			invoice: &domain.Invoice{
				ID: "inv-1", CompanyID: "co1",
				Lines: []*domain.InvoiceLine{
					line("p1", "2", "10.00", "0", "15"),
					line("p1", "3", "10.00", "0", "15"),
				},
			},
			wantCost:      map[string]string{"acc-cost": "12.50"},
			wantInventory: map[string]string{"acc-inv": "12.50"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := mocks.NewMockProductRepository()
			accounts := mocks.NewMockAccountRepository()
			config := mocks.NewMockResolutionConfigRepository()
			tt.setupMocks(products, accounts, config)

			got, warnings, err := newCostPoster(products, accounts, config).ComputeCostLines(context.Background(), tt.invoice)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertAmounts(t, "cost", got.CostByAccount, tt.wantCost)
			assertAmounts(t, "inventory", got.InventoryByAccount, tt.wantInventory)

			if len(warnings) != len(tt.wantWarnings) {
				t.Fatalf("got %d warnings, want %d: %+v", len(warnings), len(tt.wantWarnings), warnings)
			}
			for i, code := range tt.wantWarnings {
				if warnings[i].Code != code {
					t.Errorf("warning %d code = %q, want %q", i, warnings[i].Code, code)
				}
			}

			if !got.Total().Equal(sumAmounts(tt.wantInventory)) {
				t.Errorf("cost total %s does not mirror inventory total", got.Total())
			}
		})
	}
}

func assertAmounts(t *testing.T, side string, got map[string]decimal.Decimal, want map[string]string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("%s side has %d accounts, want %d: %+v", side, len(got), len(want), got)
	}
	for id, amount := range want {
		if !got[id].Equal(dec(amount)) {
			t.Errorf("%s[%s] = %s, want %s", side, id, got[id], amount)
		}
	}
}

func sumAmounts(amounts map[string]string) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(dec(amount))
	}
	return total
}
