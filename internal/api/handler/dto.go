package handler

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyRequest represents a request to register a new company
type CreateCompanyRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateAccountRequest represents a request to add an account to a company's
// chart of accounts
type CreateAccountRequest struct {
	CompanyID int64  `json:"companyId" binding:"required,gt=0"`
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=asset liability income expense equity"`
}

// JournalLineRequest represents one debit/credit line of a journal entry
type JournalLineRequest struct {
	AccountID int64           `json:"accountId" binding:"required,gt=0"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest represents a request to record a journal entry
type CreateJournalEntryRequest struct {
	CompanyID   int64                `json:"companyId" binding:"required,gt=0"`
	Date        time.Time            `json:"date" binding:"required"`
	Description string               `json:"description"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2"`
}

// PnLQuery represents the query parameters of the profit-and-loss report
type PnLQuery struct {
	CompanyID int64  `form:"companyId" binding:"required,gt=0"`
	From      string `form:"from" binding:"required"`
	To        string `form:"to" binding:"required"`
}

// PnLResponse is the profit-and-loss report payload. Amounts serialize as
// bare JSON numbers.
type PnLResponse struct {
	CompanyID    int64           `json:"companyId"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}
