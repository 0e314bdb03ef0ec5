package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/invoices/inv-42/posting", "/api/v1/invoices/:id/posting"},
		{"/api/v1/invoices/inv-42/reversal", "/api/v1/invoices/:id/reversal"},
		{"/api/v1/journal-entries/01J5", "/api/v1/journal-entries/:id"},
		{"/api/v1/accounts/acc-1", "/api/v1/accounts/:id"},
		{"/api/v1/accounts/", "/api/v1/accounts/"},
		{"/api/v1/postings/batch", "/api/v1/postings/batch"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Fatalf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
