package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
)

// ResolutionRequest describes one posting account need.
type ResolutionRequest struct {
	CompanyID string
	Purpose   domain.AccountPurpose
	Rate      decimal.Decimal
}

// AccountResolutionStrategy is one step of the ordered fallback chain.
// A strategy returns (nil, nil) when it has no answer; the resolver then
// moves on to the next strategy.
type AccountResolutionStrategy interface {
	Name() string
	Resolve(ctx context.Context, req ResolutionRequest) (*domain.Account, error)
}

// AccountResolver resolves posting accounts through an ordered strategy
// chain: per-rate mapping, company defaults, legacy rate table, then a
// heuristic chart search. Resolution is read-only and deterministic.
type AccountResolver struct {
	strategies []AccountResolutionStrategy
	cache      Cache
	logger     zerolog.Logger
}

// NewAccountResolver builds the resolver with the default strategy order.
// cache may be nil.
func NewAccountResolver(
	configRepo ResolutionConfigRepository,
	accountRepo AccountRepository,
	legacyTable *domain.LegacyTaxTable,
	cache Cache,
	logger zerolog.Logger,
) *AccountResolver {
	return NewAccountResolverWithStrategies(
		[]AccountResolutionStrategy{
			&mappingStrategy{config: configRepo, accounts: accountRepo},
			&defaultsStrategy{config: configRepo, accounts: accountRepo},
			&legacyTableStrategy{table: legacyTable, accounts: accountRepo},
			&heuristicStrategy{accounts: accountRepo},
		},
		cache,
		logger,
	)
}

// NewAccountResolverWithStrategies builds a resolver with an explicit
// strategy order. Used by tests to verify the chain in isolation.
func NewAccountResolverWithStrategies(strategies []AccountResolutionStrategy, cache Cache, logger zerolog.Logger) *AccountResolver {
	return &AccountResolver{strategies: strategies, cache: cache, logger: logger}
}

// ResolveSalesAccount resolves the default sales account of a company.
func (r *AccountResolver) ResolveSalesAccount(ctx context.Context, companyID string) (*domain.Account, error) {
	return r.Resolve(ctx, ResolutionRequest{CompanyID: companyID, Purpose: domain.PurposeSales})
}

// ResolveTaxAccount resolves the tax account for one rate.
func (r *AccountResolver) ResolveTaxAccount(ctx context.Context, companyID string, rate decimal.Decimal) (*domain.Account, error) {
	return r.Resolve(ctx, ResolutionRequest{CompanyID: companyID, Purpose: domain.PurposeTax, Rate: rate})
}

// ResolveVATWithholdingAccount resolves the VAT withholding receivable
// account, preferring the rate-specific mapping.
func (r *AccountResolver) ResolveVATWithholdingAccount(ctx context.Context, companyID string, rate decimal.Decimal) (*domain.Account, error) {
	return r.Resolve(ctx, ResolutionRequest{CompanyID: companyID, Purpose: domain.PurposeVATWithholding, Rate: rate})
}

// ResolveIncomeTaxWithholdingAccount resolves the income tax withholding
// receivable account.
func (r *AccountResolver) ResolveIncomeTaxWithholdingAccount(ctx context.Context, companyID string) (*domain.Account, error) {
	return r.Resolve(ctx, ResolutionRequest{CompanyID: companyID, Purpose: domain.PurposeIncomeTaxWithholding})
}

// Resolve walks the strategy chain and returns the first usable account.
// Accounts that are inactive or reject movement never win; the chain
// simply continues past them.
func (r *AccountResolver) Resolve(ctx context.Context, req ResolutionRequest) (*domain.Account, error) {
	if account := r.fromCache(ctx, req); account != nil {
		return account, nil
	}

	for _, strategy := range r.strategies {
		account, err := strategy.Resolve(ctx, req)
		if err != nil {
			return nil, err
		}

		if account == nil || !account.CanReceivePosting() {
			r.logger.Debug().
				Str("company_id", req.CompanyID).
				Str("purpose", string(req.Purpose)).
				Str("strategy", strategy.Name()).
				Msg("resolution strategy did not match")

			continue
		}

		r.logger.Info().
			Str("company_id", req.CompanyID).
			Str("purpose", string(req.Purpose)).
			Str("rate", req.Rate.String()).
			Str("strategy", strategy.Name()).
			Str("account_code", account.Code).
			Msg("account resolved")

		r.storeInCache(ctx, req, account)

		return account, nil
	}

	return nil, &domain.AccountNotConfiguredError{
		CompanyID: req.CompanyID,
		Purpose:   req.Purpose,
		Rate:      req.Rate,
	}
}

// mappingStrategy resolves from the company's per-rate tax account
// mapping. Most specific, always tried first.
type mappingStrategy struct {
	config   ResolutionConfigRepository
	accounts AccountRepository
}

func (s *mappingStrategy) Name() string { return "tax_mapping" }

func (s *mappingStrategy) Resolve(ctx context.Context, req ResolutionRequest) (*domain.Account, error) {
	if req.Purpose != domain.PurposeTax && req.Purpose != domain.PurposeVATWithholding {
		return nil, nil
	}
	if req.Rate.IsZero() {
		return nil, nil
	}

	mapping, err := s.config.GetTaxMapping(ctx, req.CompanyID, req.Rate)
	if err != nil || mapping == nil {
		return nil, err
	}

	accountID := mapping.TaxAccountID
	if req.Purpose == domain.PurposeVATWithholding {
		accountID = mapping.WithholdingAccountID
	}
	if accountID == "" {
		return nil, nil
	}

	return getAccountIgnoringNotFound(ctx, s.accounts, accountID)
}

// defaultsStrategy resolves from the company-level default accounts.
type defaultsStrategy struct {
	config   ResolutionConfigRepository
	accounts AccountRepository
}

func (s *defaultsStrategy) Name() string { return "company_defaults" }

func (s *defaultsStrategy) Resolve(ctx context.Context, req ResolutionRequest) (*domain.Account, error) {
	defaults, err := s.config.GetDefaults(ctx, req.CompanyID)
	if err != nil || defaults == nil {
		return nil, err
	}

	var accountID string
	switch req.Purpose {
	case domain.PurposeSales:
		accountID = defaults.SalesAccountID
	case domain.PurposeVATWithholding:
		accountID = defaults.VATWithholdingReceivableAccountID
	case domain.PurposeIncomeTaxWithholding:
		accountID = defaults.IRWithholdingReceivableAccountID
	case domain.PurposeCost:
		accountID = defaults.CostAccountID
	case domain.PurposeInventory:
		accountID = defaults.InventoryAccountID
	}
	if accountID == "" {
		return nil, nil
	}

	return getAccountIgnoringNotFound(ctx, s.accounts, accountID)
}

// legacyTableStrategy resolves tax accounts from the deprecated
// ecosystem-wide rate table. Kept for companies that predate per-company
// mappings.
type legacyTableStrategy struct {
	table    *domain.LegacyTaxTable
	accounts AccountRepository
}

func (s *legacyTableStrategy) Name() string { return "legacy_table" }

func (s *legacyTableStrategy) Resolve(ctx context.Context, req ResolutionRequest) (*domain.Account, error) {
	if s.table == nil || req.Purpose != domain.PurposeTax {
		return nil, nil
	}

	code, ok := s.table.CodeForRate(req.Rate)
	if !ok {
		return nil, nil
	}

	account, err := s.accounts.GetByCode(ctx, req.CompanyID, code)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, nil
	}
	return account, err
}

// heuristicStrategy is the last resort: search the company chart for
// movement-eligible accounts matching a known code prefix or name
// substring per purpose.
type heuristicStrategy struct {
	accounts AccountRepository
}

func (s *heuristicStrategy) Name() string { return "chart_search" }

// searchHints map a purpose to the code prefix and name fragment used by
// the chart search.
var searchHints = map[domain.AccountPurpose]struct {
	codePrefix   string
	nameContains string
}{
	domain.PurposeSales:                {"4.1", "VENTA"},
	domain.PurposeTax:                  {"2.1.01", "IVA"},
	domain.PurposeVATWithholding:       {"1.1.05", "RETENCION IVA"},
	domain.PurposeIncomeTaxWithholding: {"1.1.05", "RETENCION"},
	domain.PurposeCost:                 {"5.1", "COSTO"},
	domain.PurposeInventory:            {"1.1.06", "INVENTARIO"},
}

func (s *heuristicStrategy) Resolve(ctx context.Context, req ResolutionRequest) (*domain.Account, error) {
	hints, ok := searchHints[req.Purpose]
	if !ok {
		return nil, nil
	}

	matches, err := s.accounts.SearchMovementAccounts(ctx, req.CompanyID, hints.codePrefix, hints.nameContains, 1)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *AccountResolver) cacheKey(req ResolutionRequest) string {
	return "resolve:" + req.CompanyID + ":" + string(req.Purpose) + ":" + req.Rate.StringFixed(2)
}

// fromCache returns a previously resolved account, or nil. Cache failures
// only cost a walk of the strategy chain, so they are logged and ignored.
func (r *AccountResolver) fromCache(ctx context.Context, req ResolutionRequest) *domain.Account {
	if r.cache == nil {
		return nil
	}

	data, err := r.cache.Get(ctx, r.cacheKey(req))
	if err != nil || len(data) == 0 {
		return nil
	}

	var account domain.Account
	if err := json.Unmarshal(data, &account); err != nil {
		r.logger.Debug().Err(err).Msg("discarding malformed cached resolution")
		return nil
	}
	if !account.CanReceivePosting() {
		return nil
	}

	return &account
}

func (r *AccountResolver) storeInCache(ctx context.Context, req ResolutionRequest, account *domain.Account) {
	if r.cache == nil {
		return
	}

	data, err := json.Marshal(account)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, r.cacheKey(req), data, ResolutionCacheTTL); err != nil {
		r.logger.Debug().Err(err).Msg("failed to cache resolution")
	}
}

func getAccountIgnoringNotFound(ctx context.Context, repo AccountRepository, id string) (*domain.Account, error) {
	account, err := repo.GetByID(ctx, id)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, nil
	}
	return account, err
}
