package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account row in a trial balance report.
// The account's net balance is shown on its natural side: a net debit balance
// under Debit, a net credit balance under Credit.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account with activity or active status as of a date.
// TotalDebit equals TotalCredit for any as-of date, by construction.
type TrialBalance struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// AccountBalance pairs an account with its net balance for a report section.
type AccountBalance struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}

// ProfitAndLoss summarizes REVENUE and EXPENSE account balances over a window.
type ProfitAndLoss struct {
	StartDate     time.Time        `json:"startDate"`
	EndDate       time.Time        `json:"endDate"`
	Revenue       []AccountBalance `json:"revenue"`
	Expenses      []AccountBalance `json:"expenses"`
	TotalRevenue  decimal.Decimal  `json:"totalRevenue"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
}

// BalanceSheet summarizes ASSET, LIABILITY and EQUITY account balances as of a
// date. RetainedEarnings is the net income accumulated from the start of the
// books through the as-of date, so the accounting equation
// TotalAssets == TotalLiabilities + TotalEquity + RetainedEarnings holds.
type BalanceSheet struct {
	AsOf             time.Time        `json:"asOf"`
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
	RetainedEarnings decimal.Decimal  `json:"retainedEarnings"`
}

// DashboardSummary is the condensed view served to the dashboard landing page.
type DashboardSummary struct {
	AsOf          time.Time       `json:"asOf"`
	TotalAssets   decimal.Decimal `json:"totalAssets"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	RecentEntries []JournalEntry  `json:"recentEntries"`
}
