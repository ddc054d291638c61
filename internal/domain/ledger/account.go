// Package ledger holds the accounting data model: accounts, journal entries
// and their lines. Journal entries are immutable once created; corrections are
// expressed as new reversing entries.
package ledger

import (
	"errors"
	"strconv"
	"time"
)

// Common errors
var (
	ErrEmptyAccountCode   = errors.New("account code cannot be empty")
	ErrEmptyAccountName   = errors.New("account name cannot be empty")
	ErrInvalidAccountType = errors.New("invalid account type")
)

// AccountType classifies an account for reporting purposes
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
	AccountTypeEquity    AccountType = "equity"
)

// Valid reports whether t is one of the known account types
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeIncome, AccountTypeExpense, AccountTypeEquity:
		return true
	}
	return false
}

// Account represents a chart-of-accounts entry owned by a company.
// Accounts are never deleted, only deactivated.
type Account struct {
	ID        int64       `json:"id"`
	CompanyID int64       `json:"companyId"`
	Code      string      `json:"code"` // Short code, e.g. "4000" for income, "1000" for cash
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewAccount creates a new active account with the given parameters
func NewAccount(companyID int64, code, name string, accountType AccountType) (*Account, error) {
	if code == "" {
		return nil, ErrEmptyAccountCode
	}
	if name == "" {
		return nil, ErrEmptyAccountName
	}
	if !accountType.Valid() {
		return nil, ErrInvalidAccountType
	}

	now := time.Now().UTC()
	return &Account{
		CompanyID: companyID,
		Code:      code,
		Name:      name,
		Type:      accountType,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ErrAccountNotFound indicates a missing account
type ErrAccountNotFound struct {
	AccountID int64
}

func (e ErrAccountNotFound) Error() string {
	return "account not found: " + strconv.FormatInt(e.AccountID, 10)
}

// Is implements the errors.Is interface for ErrAccountNotFound
func (e ErrAccountNotFound) Is(target error) bool {
	t, ok := target.(ErrAccountNotFound)
	if !ok {
		return false
	}
	// A zero-valued target matches any ErrAccountNotFound
	if t.AccountID == 0 {
		return true
	}
	return e.AccountID == t.AccountID
}

// ErrAccountInactive indicates an attempt to post a new entry against a
// deactivated account
type ErrAccountInactive struct {
	AccountID int64
}

func (e ErrAccountInactive) Error() string {
	return "account is inactive: " + strconv.FormatInt(e.AccountID, 10)
}

// Is implements the errors.Is interface for ErrAccountInactive
func (e ErrAccountInactive) Is(target error) bool {
	t, ok := target.(ErrAccountInactive)
	if !ok {
		return false
	}
	if t.AccountID == 0 {
		return true
	}
	return e.AccountID == t.AccountID
}
