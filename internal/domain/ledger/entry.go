package ledger

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrTooFewLines     = errors.New("journal entry must have at least two lines")
	ErrNegativeAmount  = errors.New("debit and credit amounts must be non-negative")
	ErrEmptyLineAmount = errors.New("journal line must carry a debit or a credit")
)

// JournalLine is a single debit or credit against an account.
// By convention exactly one of Debit/Credit is non-zero.
type JournalLine struct {
	ID             int64           `json:"id"`
	JournalEntryID int64           `json:"journalEntryId"`
	AccountID      int64           `json:"accountId"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// JournalEntry is a balanced, immutable set of journal lines for one company
// and one calendar date.
type JournalEntry struct {
	ID          int64         `json:"id"`
	CompanyID   int64         `json:"companyId"`
	Date        time.Time     `json:"date"`
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// NewJournalEntry builds a journal entry and enforces the double-entry
// invariant: sum(debit) == sum(credit) across its lines.
func NewJournalEntry(companyID int64, date time.Time, description string, lines []JournalLine) (*JournalEntry, error) {
	if len(lines) < 2 {
		return nil, ErrTooFewLines
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, ErrNegativeAmount
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return nil, ErrEmptyLineAmount
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return nil, ErrUnbalancedEntry{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}

	return &JournalEntry{
		CompanyID:   companyID,
		Date:        date,
		Description: description,
		Lines:       lines,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Totals returns the summed debit and credit across all lines
func (e *JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit = decimal.Zero
	credit = decimal.Zero
	for _, line := range e.Lines {
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	return debit, credit
}

// AccountIDs returns the distinct account ids referenced by the entry's lines
func (e *JournalEntry) AccountIDs() []int64 {
	seen := make(map[int64]struct{}, len(e.Lines))
	var ids []int64
	for _, line := range e.Lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	return ids
}

// ErrUnbalancedEntry indicates a violation of the double-entry balance invariant
type ErrUnbalancedEntry struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e ErrUnbalancedEntry) Error() string {
	return "journal entry is unbalanced: debit " + e.TotalDebit.String() + " != credit " + e.TotalCredit.String()
}

// Is implements the errors.Is interface for ErrUnbalancedEntry
func (e ErrUnbalancedEntry) Is(target error) bool {
	_, ok := target.(ErrUnbalancedEntry)
	return ok
}

// ErrEntryNotFound indicates a missing journal entry
type ErrEntryNotFound struct {
	EntryID int64
}

func (e ErrEntryNotFound) Error() string {
	return "journal entry not found: " + strconv.FormatInt(e.EntryID, 10)
}

// Is implements the errors.Is interface for ErrEntryNotFound
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.EntryID == 0 {
		return true
	}
	return e.EntryID == t.EntryID
}
