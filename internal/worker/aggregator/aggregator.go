// Package aggregator maps a journal entry's lines into the delta it
// contributes to a daily summary. It is pure: no side effects, no I/O.
package aggregator

import (
	"github.com/cashflow-dev/cashflow-backend/internal/domain/ledger"
	"github.com/cashflow-dev/cashflow-backend/internal/domain/summary"
	"github.com/shopspring/decimal"
)

// ComputeDelta derives the daily summary delta for one journal entry.
// Lines on income accounts contribute credit - debit to the income total;
// lines on expense accounts contribute debit - credit to the expense total.
// Asset, liability and equity lines affect balance sheets, not the summary.
//
// accountTypes must cover every account referenced by the entry's lines;
// a missing account yields ErrAccountNotFound.
func ComputeDelta(entry *ledger.JournalEntry, accountTypes map[int64]ledger.AccountType) (summary.Delta, error) {
	income := decimal.Zero
	expense := decimal.Zero

	for _, line := range entry.Lines {
		accountType, ok := accountTypes[line.AccountID]
		if !ok {
			return summary.Delta{}, ledger.ErrAccountNotFound{AccountID: line.AccountID}
		}

		switch accountType {
		case ledger.AccountTypeIncome:
			income = income.Add(line.Credit.Sub(line.Debit))
		case ledger.AccountTypeExpense:
			expense = expense.Add(line.Debit.Sub(line.Credit))
		}
	}

	return summary.Delta{
		CompanyID: entry.CompanyID,
		Date:      entry.Date,
		Income:    income,
		Expense:   expense,
	}, nil
}
