package ledger

import (
	"errors"
	"strconv"
	"time"
)

var ErrEmptyCompanyName = errors.New("company name cannot be empty")

// Company owns a chart of accounts and a journal. Every account, entry and
// summary is scoped to exactly one company.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCompany creates a new company with the given name
func NewCompany(name string) (*Company, error) {
	if name == "" {
		return nil, ErrEmptyCompanyName
	}

	return &Company{
		Name:      name,
		CreatedAt: time.Now(),
	}, nil
}

// ErrCompanyNotFound indicates a missing company
type ErrCompanyNotFound struct {
	CompanyID int64
}

func (e ErrCompanyNotFound) Error() string {
	return "company not found: " + strconv.FormatInt(e.CompanyID, 10)
}

// Is implements the errors.Is interface for ErrCompanyNotFound.
// A zero-valued target matches any company id.
func (e ErrCompanyNotFound) Is(target error) bool {
	t, ok := target.(ErrCompanyNotFound)
	if !ok {
		return false
	}
	return t.CompanyID == 0 || t.CompanyID == e.CompanyID
}
