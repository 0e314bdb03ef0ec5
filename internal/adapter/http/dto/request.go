package dto

// BatchPostRequest represents a request to post several invoices.
type BatchPostRequest struct {
	InvoiceIDs []string `json:"invoice_ids"`
}
