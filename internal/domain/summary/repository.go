package summary

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Repository manages daily summary persistence
type Repository interface {
	// Get returns the summary row for (companyID, date), or nil if no event
	// has been applied for that day yet.
	Get(ctx context.Context, companyID int64, date time.Time) (*DailySummary, error)

	// ApplyDelta adds the delta to the (companyId, date) row, creating it if
	// this is the first applied event for that day.
	ApplyDelta(ctx context.Context, delta Delta) error

	// SumRange sums the totals of all rows for the company whose date falls in
	// [from, to] inclusive. Absent rows contribute zero.
	SumRange(ctx context.Context, companyID int64, from, to time.Time) (income, expense decimal.Decimal, err error)

	WithTx(tx pgx.Tx) Repository
}
