package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contaec/contaledger/internal/adapter/http/dto"
	"github.com/contaec/contaledger/internal/usecase"
)

// AccountHandler handles chart-of-accounts HTTP requests.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Search finds movement-eligible accounts by code prefix or name.
func (h *AccountHandler) Search(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "company_id is required", "")
		return
	}

	accounts, err := h.accountUC.SearchMovementAccounts(r.Context(), usecase.SearchInput{
		CompanyID: companyID,
		Query:     r.URL.Query().Get("q"),
		Limit:     parseIntQuery(r, "limit", 50),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to search accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}
