package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
)

func TestWithholdingCalculator_Compute(t *testing.T) {
	calc := usecase.NewWithholdingCalculator()

	tests := []struct {
		name     string
		customer *domain.Customer
		subtotal string
		tax      string
		wantVAT  string
		wantIR   string
	}{
		{
			name: "agent with both rates",
			customer: &domain.Customer{
				WithholdingAgent:         true,
				VATWithholdingRate:       dec("10"),
				IncomeTaxWithholdingRate: dec("1"),
			},
			subtotal: "100.00",
			tax:      "15.00",
			wantVAT:  "1.50",
			wantIR:   "1.00",
		},
		{
			name: "full VAT withholding",
			customer: &domain.Customer{
				WithholdingAgent:   true,
				VATWithholdingRate: dec("100"),
			},
			subtotal: "100.00",
			tax:      "15.00",
			wantVAT:  "15.00",
			wantIR:   "0",
		},
		{
			name: "non-agent withholds nothing regardless of rates",
			customer: &domain.Customer{
				WithholdingAgent:         false,
				VATWithholdingRate:       dec("30"),
				IncomeTaxWithholdingRate: dec("2"),
			},
			subtotal: "100.00",
			tax:      "15.00",
			wantVAT:  "0",
			wantIR:   "0",
		},
		{
			name:     "nil customer withholds nothing",
			customer: nil,
			subtotal: "100.00",
			tax:      "15.00",
			wantVAT:  "0",
			wantIR:   "0",
		},
		{
			name: "rates above 100 are clamped",
			customer: &domain.Customer{
				WithholdingAgent:         true,
				VATWithholdingRate:       dec("150"),
				IncomeTaxWithholdingRate: dec("200"),
			},
			subtotal: "100.00",
			tax:      "15.00",
			wantVAT:  "15.00",
			wantIR:   "100.00",
		},
		{
			name: "negative rates are clamped to zero",
			customer: &domain.Customer{
				WithholdingAgent:         true,
				VATWithholdingRate:       dec("-10"),
				IncomeTaxWithholdingRate: dec("-1"),
			},
			subtotal: "100.00",
			tax:      "15.00",
			wantVAT:  "0",
			wantIR:   "0",
		},
		{
			name: "fractional amounts round to cents",
			customer: &domain.Customer{
				WithholdingAgent:         true,
				VATWithholdingRate:       dec("30"),
				IncomeTaxWithholdingRate: dec("1.75"),
			},
			subtotal: "33.33",
			tax:      "5.00",
			wantVAT:  "1.50",
			wantIR:   "0.58",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.Compute(tt.customer, dec(tt.subtotal), dec(tt.tax))

			if !got.VAT.Equal(dec(tt.wantVAT)) {
				t.Errorf("VAT = %s, want %s", got.VAT, tt.wantVAT)
			}
			if !got.IncomeTax.Equal(dec(tt.wantIR)) {
				t.Errorf("IncomeTax = %s, want %s", got.IncomeTax, tt.wantIR)
			}
		})
	}
}

func TestWithholding_TotalNeverExceedsInvoiceTotal(t *testing.T) {
	calc := usecase.NewWithholdingCalculator()

	customer := &domain.Customer{
		WithholdingAgent:         true,
		VATWithholdingRate:       dec("999"),
		IncomeTaxWithholdingRate: dec("999"),
	}

	subtotal, tax := dec("100.00"), dec("15.00")
	got := calc.Compute(customer, subtotal, tax)

	total := subtotal.Add(tax)
	if got.Total().GreaterThan(total) {
		t.Errorf("withheld %s exceeds invoice total %s", got.Total(), total)
	}
}

func TestWithholding_IsZero(t *testing.T) {
	w := usecase.Withholding{VAT: decimal.Zero, IncomeTax: decimal.Zero}
	if !w.IsZero() {
		t.Error("expected zero withholding")
	}

	w.VAT = dec("0.01")
	if w.IsZero() {
		t.Error("expected non-zero withholding")
	}
}
