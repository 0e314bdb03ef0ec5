package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
	"github.com/contaec/contaledger/internal/usecase/mocks"
)

func TestAccountUseCase_GetAccount(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.Add(account("acc-1", "co1", "1.1.01.01", "CAJA GENERAL"))

	uc := usecase.NewAccountUseCase(repo)
	ctx := context.Background()

	got, err := uc.GetAccount(ctx, "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Code != "1.1.01.01" {
		t.Errorf("code = %q, want 1.1.01.01", got.Code)
	}

	if _, err := uc.GetAccount(ctx, "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("err = %v, want ErrAccountNotFound", err)
	}
}

func TestAccountUseCase_SearchMovementAccounts(t *testing.T) {
	repo := mocks.NewMockAccountRepository()
	repo.Add(account("acc-1", "co1", "4.1.01.01", "VENTAS LOCALES"))
	summary := account("acc-2", "co1", "4.1", "VENTAS")
	summary.AcceptsMovement = false
	repo.Add(summary)

	uc := usecase.NewAccountUseCase(repo)

	got, err := uc.SearchMovementAccounts(context.Background(), usecase.SearchInput{
		CompanyID: "co1",
		Query:     "VENTA",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d accounts, want 1 (summary accounts excluded): %+v", len(got), got)
	}
	if got[0].ID != "acc-1" {
		t.Errorf("account = %q, want acc-1", got[0].ID)
	}
}
