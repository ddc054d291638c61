// Package summary holds the DailySummary aggregate: per-company, per-day
// running income and expense totals derived from applied events.
package summary

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySummary is one row per (companyId, date). It is created lazily on the
// first applied event for that day and mutated in place by later ones.
type DailySummary struct {
	CompanyID    int64           `json:"companyId"`
	Date         time.Time       `json:"date"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Delta is one journal entry's contribution to a daily summary. Deltas are
// pure additions, so distinct events commute regardless of delivery order.
type Delta struct {
	CompanyID int64
	Date      time.Time
	Income    decimal.Decimal
	Expense   decimal.Decimal
}

// IsZero reports whether applying the delta would leave the summary unchanged
func (d Delta) IsZero() bool {
	return d.Income.IsZero() && d.Expense.IsZero()
}
