package handler

import (
	"errors"
	"net/http"

	"github.com/contaec/contaledger/internal/adapter/http/dto"
	"github.com/contaec/contaledger/internal/usecase"
)

// LedgerHandler handles ledger-wide HTTP requests.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency verifies that ledger-wide debits equal credits. An
// inconsistent ledger answers 409 together with the totals.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) {
			writeJSON(w, http.StatusConflict, dto.ConsistencyFromReport(report))
			return
		}

		writeError(w, http.StatusInternalServerError, "failed to check ledger consistency", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
