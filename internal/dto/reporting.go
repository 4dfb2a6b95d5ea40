package dto

import (
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response.
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response.
type TrialBalanceResponse struct {
	AsOf   string                    `json:"asOf"`
	Rows   []TrialBalanceRowResponse `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// AccountBalanceResponse represents an account with its balance in a report section.
type AccountBalanceResponse struct {
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
}

// ProfitAndLossResponse represents the profit and loss report response.
type ProfitAndLossResponse struct {
	StartDate string                   `json:"startDate"`
	EndDate   string                   `json:"endDate"`
	Revenue   []AccountBalanceResponse `json:"revenue"`
	Expenses  []AccountBalanceResponse `json:"expenses"`
	Summary   struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
}

// BalanceSheetResponse represents the balance sheet report response.
type BalanceSheetResponse struct {
	AsOf        string                   `json:"asOf"`
	Assets      []AccountBalanceResponse `json:"assets"`
	Liabilities []AccountBalanceResponse `json:"liabilities"`
	Equity      []AccountBalanceResponse `json:"equity"`
	Summary     struct {
		TotalAssets      decimal.Decimal `json:"totalAssets"`
		TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
		TotalEquity      decimal.Decimal `json:"totalEquity"`
		RetainedEarnings decimal.Decimal `json:"retainedEarnings"`
	} `json:"summary"`
}

// DashboardResponse is the condensed report for the dashboard landing page.
type DashboardResponse struct {
	AsOf          string          `json:"asOf"`
	TotalAssets   decimal.Decimal `json:"totalAssets"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	RecentEntries []EntryResponse `json:"recentEntries"`
}

func toAccountBalanceResponses(balances []domain.AccountBalance) []AccountBalanceResponse {
	out := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = AccountBalanceResponse{
			AccountCode: b.AccountCode,
			Name:        b.AccountName,
			Balance:     b.Balance,
		}
	}
	return out
}

// ToTrialBalanceResponse converts a domain trial balance to its response DTO.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: tb.AsOf.Format("2006-01-02"),
		Rows: make([]TrialBalanceRowResponse, len(tb.Rows)),
	}
	for i, row := range tb.Rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	response.Totals.Debit = tb.TotalDebit
	response.Totals.Credit = tb.TotalCredit
	return response
}

// ToProfitAndLossResponse converts a domain P&L report to its response DTO.
func ToProfitAndLossResponse(report *domain.ProfitAndLoss) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		StartDate: report.StartDate.Format("2006-01-02"),
		EndDate:   report.EndDate.Format("2006-01-02"),
		Revenue:   toAccountBalanceResponses(report.Revenue),
		Expenses:  toAccountBalanceResponses(report.Expenses),
	}
	response.Summary.TotalRevenue = report.TotalRevenue
	response.Summary.TotalExpenses = report.TotalExpenses
	response.Summary.NetIncome = report.NetIncome
	return response
}

// ToBalanceSheetResponse converts a domain balance sheet to its response DTO.
func ToBalanceSheetResponse(report *domain.BalanceSheet) BalanceSheetResponse {
	response := BalanceSheetResponse{
		AsOf:        report.AsOf.Format("2006-01-02"),
		Assets:      toAccountBalanceResponses(report.Assets),
		Liabilities: toAccountBalanceResponses(report.Liabilities),
		Equity:      toAccountBalanceResponses(report.Equity),
	}
	response.Summary.TotalAssets = report.TotalAssets
	response.Summary.TotalLiabilities = report.TotalLiabilities
	response.Summary.TotalEquity = report.TotalEquity
	response.Summary.RetainedEarnings = report.RetainedEarnings
	return response
}

// ToDashboardResponse converts a domain dashboard summary to its response DTO.
func ToDashboardResponse(summary *domain.DashboardSummary) DashboardResponse {
	return DashboardResponse{
		AsOf:          summary.AsOf.Format("2006-01-02"),
		TotalAssets:   summary.TotalAssets,
		TotalRevenue:  summary.TotalRevenue,
		TotalExpenses: summary.TotalExpenses,
		NetIncome:     summary.NetIncome,
		RecentEntries: ToEntryResponses(summary.RecentEntries),
	}
}
