package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerLine is one row of an account's activity, with the running balance
// after the line has been applied.
type LedgerLine struct {
	EntryID     string          `json:"entryID"`
	EntryNumber int64           `json:"entryNumber"`
	EntryDate   time.Time       `json:"entryDate"`
	Reference   string          `json:"reference"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerView is the ledger of a single account over a date window.
// The opening balance is the signed sum of all posted lines strictly before
// the window; lines are ordered by (entry date, entry number).
type LedgerView struct {
	Account        Account         `json:"account"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        time.Time       `json:"endDate"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	TotalDebits    decimal.Decimal `json:"totalDebits"`
	TotalCredits   decimal.Decimal `json:"totalCredits"`
}
