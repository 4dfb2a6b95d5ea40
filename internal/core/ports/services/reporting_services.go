package services

import (
	"context"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
)

// ReportingService is the statement aggregator facade. All methods are pure
// read-side projections over the posted log and may run concurrently with
// each other and with posting.
type ReportingService interface {
	// TrialBalance lists every account with activity or active status as of
	// the given date; total debits equal total credits by construction.
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// ProfitAndLoss summarizes REVENUE and EXPENSE balances over the window.
	ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error)

	// BalanceSheet summarizes ASSET/LIABILITY/EQUITY balances as of the given
	// date, with retained earnings accumulated from the start of the books.
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error)

	// Dashboard condenses the statements plus recent postings for the UI
	// landing page.
	Dashboard(ctx context.Context, asOf time.Time) (*domain.DashboardSummary, error)
}
