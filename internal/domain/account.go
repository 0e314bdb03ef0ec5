package domain

import (
	"strings"
	"time"
)

// Account represents a node in a company's chart of accounts.
// Codes are dotted hierarchical strings, e.g. "1.1.02.01".
type Account struct {
	ID              string
	CompanyID       string
	Code            string
	Name            string
	IsActive        bool
	AcceptsMovement bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CanReceivePosting reports whether the account may appear on a journal
// entry line. Only active leaf accounts flagged for movement qualify.
func (a *Account) CanReceivePosting() bool {
	return a != nil && a.IsActive && a.AcceptsMovement
}

// ValidateForPosting returns a typed error when the account cannot be posted to.
func (a *Account) ValidateForPosting() error {
	if a == nil {
		return ErrAccountNotFound
	}
	if !a.IsActive {
		return ErrAccountInactive
	}
	if !a.AcceptsMovement {
		return ErrAccountRejectsMovement
	}
	return nil
}

// Level returns the depth of the account in the chart hierarchy, derived
// from its dotted code. "1" is level 1, "1.1.02.01" is level 4.
func (a *Account) Level() int {
	if a.Code == "" {
		return 0
	}
	return strings.Count(a.Code, ".") + 1
}
