package usecase

import (
	"context"

	"github.com/contaec/contaledger/internal/domain"
)

// AccountUseCase exposes read-only chart-of-accounts lookups for the
// operator UI. The chart itself is maintained elsewhere.
type AccountUseCase struct {
	accounts AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accounts AccountRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accounts.GetByID(ctx, id)
}

// SearchInput represents input for searching movement accounts.
type SearchInput struct {
	CompanyID string
	Query     string
	Limit     int
}

// SearchMovementAccounts finds active, movement-eligible accounts whose
// code starts with or whose name contains the query.
func (uc *AccountUseCase) SearchMovementAccounts(ctx context.Context, input SearchInput) ([]*domain.Account, error) {
	limit, _ := domain.ValidatePagination(input.Limit, 0)
	return uc.accounts.SearchMovementAccounts(ctx, input.CompanyID, input.Query, input.Query, limit)
}
