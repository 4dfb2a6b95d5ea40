package dto

import (
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerLineResponse is one row of an account ledger with its running balance.
type LedgerLineResponse struct {
	EntryID     string          `json:"entryID"`
	EntryNumber int64           `json:"entryNumber"`
	Date        string          `json:"date"`
	Reference   string          `json:"reference,omitempty"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// LedgerViewResponse is the ledger of one account over a date window.
type LedgerViewResponse struct {
	Account        AccountResponse      `json:"account"`
	StartDate      string               `json:"startDate"`
	EndDate        string               `json:"endDate"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
	TotalDebits    decimal.Decimal      `json:"totalDebits"`
	TotalCredits   decimal.Decimal      `json:"totalCredits"`
}

// ToLedgerViewResponse converts a domain.LedgerView to its response DTO.
func ToLedgerViewResponse(view *domain.LedgerView) LedgerViewResponse {
	resp := LedgerViewResponse{
		Account:        ToAccountResponse(&view.Account),
		StartDate:      view.StartDate.Format("2006-01-02"),
		EndDate:        view.EndDate.Format("2006-01-02"),
		OpeningBalance: view.OpeningBalance,
		Lines:          make([]LedgerLineResponse, len(view.Lines)),
		ClosingBalance: view.ClosingBalance,
		TotalDebits:    view.TotalDebits,
		TotalCredits:   view.TotalCredits,
	}
	for i, line := range view.Lines {
		resp.Lines[i] = LedgerLineResponse{
			EntryID:     line.EntryID,
			EntryNumber: line.EntryNumber,
			Date:        line.EntryDate.Format("2006-01-02"),
			Reference:   line.Reference,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Balance:     line.Balance,
		}
	}
	return resp
}
