package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
	"github.com/finbooks-io/ledger-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// reportingService derives the financial statements from posted activity.
// All three statements are projections of the same per-account activity
// aggregate, so trial balance, profit and loss, and balance sheet always
// agree with each other and with the ledger.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
	journalRepo   portsrepo.JournalRepository
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		journalRepo:   journalRepo,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// netBalance applies the sign convention to an account's raw activity totals.
func netBalance(activity portsrepo.AccountActivity) decimal.Decimal {
	if activity.AccountType.DebitNormal() {
		return activity.DebitTotal.Sub(activity.CreditTotal)
	}
	return activity.CreditTotal.Sub(activity.DebitTotal)
}

// TrialBalance generates a trial balance as of a specific date. Each account's
// net balance is shown on its natural side; total debits equal total credits
// because every posted entry balances.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetAccountActivity(ctx, time.Time{}, asOf)
	if err != nil {
		logger.Error("Failed to retrieve trial balance activity", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	rows := make(map[string]domain.TrialBalanceRow, len(activity))
	for _, act := range activity {
		row := domain.TrialBalanceRow{
			AccountCode: act.AccountCode,
			AccountName: act.AccountName,
			AccountType: act.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		net := act.DebitTotal.Sub(act.CreditTotal)
		switch {
		case net.IsPositive():
			row.Debit = net
		case net.IsNegative():
			row.Credit = net.Neg()
		}
		rows[act.AccountCode] = row
	}

	// Active accounts with no activity still appear, with zero balances.
	active, err := s.accountRepo.ListAccounts(ctx, true, nil)
	if err != nil {
		logger.Error("Failed to list active accounts for trial balance", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, acc := range active {
		if _, ok := rows[acc.Code]; !ok {
			rows[acc.Code] = domain.TrialBalanceRow{
				AccountCode: acc.Code,
				AccountName: acc.Name,
				AccountType: acc.AccountType,
				Debit:       decimal.Zero,
				Credit:      decimal.Zero,
			}
		}
	}

	report := &domain.TrialBalance{
		AsOf:        asOf,
		Rows:        make([]domain.TrialBalanceRow, 0, len(rows)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccountCode < report.Rows[j].AccountCode
	})

	logger.Info("Trial balance generated",
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// ProfitAndLoss generates a profit and loss report over the window [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, from, to time.Time) (*domain.ProfitAndLoss, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetAccountActivity(ctx, from, to)
	if err != nil {
		logger.Error("Failed to retrieve profit and loss activity", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	report := &domain.ProfitAndLoss{
		StartDate:     from,
		EndDate:       to,
		Revenue:       []domain.AccountBalance{},
		Expenses:      []domain.AccountBalance{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, act := range activity {
		balance := domain.AccountBalance{
			AccountCode: act.AccountCode,
			AccountName: act.AccountName,
			Balance:     netBalance(act),
		}
		switch act.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, balance)
			report.TotalRevenue = report.TotalRevenue.Add(balance.Balance)
		case domain.Expense:
			report.Expenses = append(report.Expenses, balance)
			report.TotalExpenses = report.TotalExpenses.Add(balance.Balance)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)

	logger.Info("Profit and loss generated",
		slog.String("from", from.Format("2006-01-02")),
		slog.String("to", to.Format("2006-01-02")),
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	return report, nil
}

// BalanceSheet generates a balance sheet as of a specific date. Retained
// earnings is the net income accumulated from the start of the books, which
// makes the accounting equation hold exactly.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	activity, err := s.reportingRepo.GetAccountActivity(ctx, time.Time{}, asOf)
	if err != nil {
		logger.Error("Failed to retrieve balance sheet activity", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheet{
		AsOf:             asOf,
		Assets:           []domain.AccountBalance{},
		Liabilities:      []domain.AccountBalance{},
		Equity:           []domain.AccountBalance{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		RetainedEarnings: decimal.Zero,
	}
	for _, act := range activity {
		balance := domain.AccountBalance{
			AccountCode: act.AccountCode,
			AccountName: act.AccountName,
			Balance:     netBalance(act),
		}
		switch act.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, balance)
			report.TotalAssets = report.TotalAssets.Add(balance.Balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, balance)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance.Balance)
		case domain.Equity:
			report.Equity = append(report.Equity, balance)
			report.TotalEquity = report.TotalEquity.Add(balance.Balance)
		case domain.Revenue:
			report.RetainedEarnings = report.RetainedEarnings.Add(balance.Balance)
		case domain.Expense:
			report.RetainedEarnings = report.RetainedEarnings.Sub(balance.Balance)
		}
	}

	logger.Info("Balance sheet generated",
		slog.String("asOf", asOf.Format("2006-01-02")),
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	return report, nil
}

// Dashboard condenses the statements plus recent postings for the UI landing page.
func (s *reportingService) Dashboard(ctx context.Context, asOf time.Time) (*domain.DashboardSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	balanceSheet, err := s.BalanceSheet(ctx, asOf)
	if err != nil {
		return nil, err
	}

	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	pnl, err := s.ProfitAndLoss(ctx, yearStart, asOf)
	if err != nil {
		return nil, err
	}

	posted := domain.Posted
	recent, _, err := s.journalRepo.ListEntries(ctx, 5, nil, &posted)
	if err != nil {
		logger.Error("Failed to list recent entries for dashboard", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list recent entries: %w", err)
	}

	return &domain.DashboardSummary{
		AsOf:          asOf,
		TotalAssets:   balanceSheet.TotalAssets,
		TotalRevenue:  pnl.TotalRevenue,
		TotalExpenses: pnl.TotalExpenses,
		NetIncome:     pnl.NetIncome,
		RecentEntries: recent,
	}, nil
}
