package service

import (
	"context"
	"errors"
	"time"

	"github.com/cashflow-dev/cashflow-backend/internal/domain/summary"
)

// ErrInvalidDateRange indicates a reporting range where from is after to
var ErrInvalidDateRange = errors.New("from date must not be after to date")

// ReportServiceImpl implements the ReportService interface
type ReportServiceImpl struct {
	summaryRepo summary.Repository
}

// NewReportService creates a new report service
func NewReportService(summaryRepo summary.Repository) ReportService {
	return &ReportServiceImpl{
		summaryRepo: summaryRepo,
	}
}

// ProfitAndLoss sums the daily summaries over the inclusive date range.
// Days with no activity contribute zero, so a range with no summaries yields
// an all-zero report rather than an error.
func (s *ReportServiceImpl) ProfitAndLoss(ctx context.Context, companyID int64, from, to time.Time) (*PnLReport, error) {
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}

	income, expense, err := s.summaryRepo.SumRange(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	return &PnLReport{
		CompanyID:    companyID,
		From:         from,
		To:           to,
		TotalIncome:  income,
		TotalExpense: expense,
		NetProfit:    income.Sub(expense),
	}, nil
}
