package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/contaec/contaledger/internal/adapter/http/dto"
	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
)

// PostingHandler handles invoice posting HTTP requests.
type PostingHandler struct {
	postingUC *usecase.PostingUseCase
}

// NewPostingHandler creates a new PostingHandler.
func NewPostingHandler(postingUC *usecase.PostingUseCase) *PostingHandler {
	return &PostingHandler{postingUC: postingUC}
}

// Post creates the journal entry for a sent invoice. Replaying the call
// answers 200 with the existing entry instead of 201.
func (h *PostingHandler) Post(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	result, err := h.postingUC.Post(r.Context(), invoiceID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to post invoice", err.Error())

		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, dto.PostingFromResult(result))
}

// Reverse creates the mirror entry for a cancelled invoice.
func (h *PostingHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	result, err := h.postingUC.Reverse(r.Context(), invoiceID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to reverse posting", err.Error())

		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, dto.PostingFromResult(result))
}

// PostBatch posts several invoices independently.
func (h *PostingHandler) PostBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(req.InvoiceIDs) == 0 {
		writeError(w, http.StatusBadRequest, "no invoice IDs provided", "")
		return
	}

	items := h.postingUC.PostBatch(r.Context(), req.InvoiceIDs)

	writeJSON(w, http.StatusOK, dto.BatchFromItems(items))
}

// GetEntry retrieves a journal entry by ID.
func (h *PostingHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.postingUC.GetEntry(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get journal entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// GetEntryByReference retrieves a journal entry by its idempotency key,
// e.g. ?company_id=co1&reference=FAC-101.
func (h *PostingHandler) GetEntryByReference(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	reference := r.URL.Query().Get("reference")
	if companyID == "" || reference == "" {
		writeError(w, http.StatusBadRequest, "company_id and reference are required", "")
		return
	}

	entry, err := h.postingUC.GetEntryByReference(r.Context(), companyID, reference)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get journal entry", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// AuditTrail lists recorded posting attempts.
func (h *PostingHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		CompanyID:  r.URL.Query().Get("company_id"),
		Action:     r.URL.Query().Get("action"),
		ResourceID: r.URL.Query().Get("invoice_id"),
		Limit:      parseIntQuery(r, "limit", 50),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	logs, err := h.postingUC.AuditTrail(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit logs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
