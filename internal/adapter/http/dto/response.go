package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// JournalEntryLineResponse represents one debit or credit row.
type JournalEntryLineResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	AccountCode   string          `json:"account_code"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	DocumentType  string          `json:"document_type"`
	AuxiliaryCode string          `json:"auxiliary_code,omitempty"`
	AuxiliaryName string          `json:"auxiliary_name,omitempty"`
}

// JournalEntryResponse represents a journal entry in API responses.
type JournalEntryResponse struct {
	ID          string                      `json:"id"`
	CompanyID   string                      `json:"company_id"`
	Date        time.Time                   `json:"date"`
	Reference   string                      `json:"reference"`
	Description string                      `json:"description"`
	CreatedBy   string                      `json:"created_by,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	TotalDebit  decimal.Decimal             `json:"total_debit"`
	TotalCredit decimal.Decimal             `json:"total_credit"`
	Lines       []*JournalEntryLineResponse `json:"lines"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.JournalEntry) *JournalEntryResponse {
	lines := make([]*JournalEntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = &JournalEntryLineResponse{
			ID:            l.ID,
			AccountID:     l.AccountID,
			AccountCode:   l.AccountCode,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
			DocumentType:  l.DocumentType,
			AuxiliaryCode: l.AuxiliaryCode,
			AuxiliaryName: l.AuxiliaryName,
		}
	}

	return &JournalEntryResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		Date:        e.Date,
		Reference:   e.Reference,
		Description: e.Description,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		TotalDebit:  e.TotalDebit(),
		TotalCredit: e.TotalCredit(),
		Lines:       lines,
	}
}

// PostingResponse represents the outcome of a post or reverse call.
type PostingResponse struct {
	Entry    *JournalEntryResponse `json:"entry,omitempty"`
	Created  bool                  `json:"created"`
	Warnings []usecase.Warning     `json:"warnings,omitempty"`
}

// PostingFromResult converts a use case result to a response.
func PostingFromResult(result *usecase.PostResult) *PostingResponse {
	resp := &PostingResponse{
		Created:  result.Created,
		Warnings: result.Warnings,
	}
	if result.Entry != nil {
		resp.Entry = EntryFromDomain(result.Entry)
	}

	return resp
}

// BatchPostItemResponse represents one invoice's outcome in a batch.
type BatchPostItemResponse struct {
	InvoiceID string            `json:"invoice_id"`
	EntryID   string            `json:"entry_id,omitempty"`
	Created   bool              `json:"created"`
	Warnings  []usecase.Warning `json:"warnings,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// BatchPostResponse represents a batch posting outcome.
type BatchPostResponse struct {
	Items []BatchPostItemResponse `json:"items"`
}

// BatchFromItems converts use case batch items to a response.
func BatchFromItems(items []usecase.BatchPostItem) *BatchPostResponse {
	resp := &BatchPostResponse{Items: make([]BatchPostItemResponse, len(items))}
	for i, item := range items {
		resp.Items[i] = BatchPostItemResponse{
			InvoiceID: item.InvoiceID,
			EntryID:   item.EntryID,
			Created:   item.Created,
			Warnings:  item.Warnings,
			Error:     item.Error,
		}
	}

	return resp
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID              string `json:"id"`
	CompanyID       string `json:"company_id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	IsActive        bool   `json:"is_active"`
	AcceptsMovement bool   `json:"accepts_movement"`
	Level           int    `json:"level"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:              a.ID,
		CompanyID:       a.CompanyID,
		Code:            a.Code,
		Name:            a.Name,
		IsActive:        a.IsActive,
		AcceptsMovement: a.AcceptsMovement,
		Level:           a.Level(),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ConsistencyResponse represents a ledger-wide balance check.
type ConsistencyResponse struct {
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
	Consistent   bool            `json:"consistent"`
}

// ConsistencyFromReport converts a use case report to a response.
func ConsistencyFromReport(report *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		TotalDebits:  report.TotalDebits,
		TotalCredits: report.TotalCredits,
		Consistent:   report.Consistent,
	}
}

// AuditLogResponse represents one recorded posting attempt.
type AuditLogResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	UserID       string    `json:"user_id,omitempty"`
	Action       string    `json:"action"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Reference    string    `json:"reference"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditLogsFromDomain converts domain audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, log := range logs {
		result[i] = &AuditLogResponse{
			ID:           log.ID,
			CompanyID:    log.CompanyID,
			UserID:       log.UserID,
			Action:       log.Action,
			ResourceType: log.ResourceType,
			ResourceID:   log.ResourceID,
			Reference:    log.Reference,
			Status:       log.Status,
			ErrorMessage: log.ErrorMessage,
			CreatedAt:    log.CreatedAt,
		}
	}
	return result
}
