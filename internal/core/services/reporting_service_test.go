package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
	"github.com/finbooks-io/ledger-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetAccountActivity(ctx context.Context, from, to time.Time) ([]portsrepo.AccountActivity, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountActivity), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockJournalRepo   *MockJournalRepository
	service           portssvc.ReportingService
	asOf              time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo, suite.mockJournalRepo)
	suite.asOf = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
}

// bookActivity models a small set of books: a 1000 cash sale and a 250 rent
// payment, all posted through balanced entries.
func (suite *ReportingServiceTestSuite) bookActivity() []portsrepo.AccountActivity {
	return []portsrepo.AccountActivity{
		{AccountCode: "1000", AccountName: "Cash", AccountType: domain.Asset,
			DebitTotal: decimal.NewFromInt(1000), CreditTotal: decimal.NewFromInt(250)},
		{AccountCode: "4000", AccountName: "Sales Revenue", AccountType: domain.Revenue,
			DebitTotal: decimal.Zero, CreditTotal: decimal.NewFromInt(1000)},
		{AccountCode: "5000", AccountName: "Rent Expense", AccountType: domain.Expense,
			DebitTotal: decimal.NewFromInt(250), CreditTotal: decimal.Zero},
	}
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_TotalsAgree() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetAccountActivity", ctx, time.Time{}, suite.asOf).
		Return(suite.bookActivity(), nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, true, (*domain.AccountType)(nil)).
		Return([]domain.Account{}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Len(report.Rows, 3)
	suite.True(report.TotalDebit.Equal(report.TotalCredit), "trial balance must balance")
	suite.True(report.TotalDebit.Equal(decimal.NewFromInt(1000)))

	// Each balance sits on the account's natural side.
	suite.Equal("1000", report.Rows[0].AccountCode)
	suite.True(report.Rows[0].Debit.Equal(decimal.NewFromInt(750)))
	suite.True(report.Rows[0].Credit.IsZero())
	suite.Equal("4000", report.Rows[1].AccountCode)
	suite.True(report.Rows[1].Credit.Equal(decimal.NewFromInt(1000)))
	suite.Equal("5000", report.Rows[2].AccountCode)
	suite.True(report.Rows[2].Debit.Equal(decimal.NewFromInt(250)))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_IncludesIdleActiveAccounts() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetAccountActivity", ctx, time.Time{}, suite.asOf).
		Return([]portsrepo.AccountActivity{}, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, true, (*domain.AccountType)(nil)).
		Return([]domain.Account{
			{Code: "3000", Name: "Owner Equity", AccountType: domain.Equity, IsActive: true},
		}, nil).Once()

	report, err := suite.service.TrialBalance(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.Require().Len(report.Rows, 1)
	suite.Equal("3000", report.Rows[0].AccountCode)
	suite.True(report.Rows[0].Debit.IsZero())
	suite.True(report.Rows[0].Credit.IsZero())
}

func (suite *ReportingServiceTestSuite) TestProfitAndLoss() {
	ctx := context.Background()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.mockReportingRepo.On("GetAccountActivity", ctx, from, suite.asOf).
		Return(suite.bookActivity(), nil).Once()

	report, err := suite.service.ProfitAndLoss(ctx, from, suite.asOf)

	suite.Require().NoError(err)
	suite.Len(report.Revenue, 1)
	suite.Len(report.Expenses, 1)
	suite.True(report.TotalRevenue.Equal(decimal.NewFromInt(1000)))
	suite.True(report.TotalExpenses.Equal(decimal.NewFromInt(250)))
	suite.True(report.NetIncome.Equal(decimal.NewFromInt(750)))
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_AccountingEquationHolds() {
	ctx := context.Background()

	suite.mockReportingRepo.On("GetAccountActivity", ctx, time.Time{}, suite.asOf).
		Return(suite.bookActivity(), nil).Once()

	report, err := suite.service.BalanceSheet(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(report.TotalAssets.Equal(decimal.NewFromInt(750)))
	suite.True(report.TotalLiabilities.IsZero())
	suite.True(report.TotalEquity.IsZero())
	suite.True(report.RetainedEarnings.Equal(decimal.NewFromInt(750)))

	// Assets = Liabilities + Equity + RetainedEarnings
	rhs := report.TotalLiabilities.Add(report.TotalEquity).Add(report.RetainedEarnings)
	suite.True(report.TotalAssets.Equal(rhs))
}

func (suite *ReportingServiceTestSuite) TestDashboard() {
	ctx := context.Background()
	yearStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	posted := domain.Posted

	suite.mockReportingRepo.On("GetAccountActivity", ctx, time.Time{}, suite.asOf).
		Return(suite.bookActivity(), nil).Once()
	suite.mockReportingRepo.On("GetAccountActivity", ctx, yearStart, suite.asOf).
		Return(suite.bookActivity(), nil).Once()
	suite.mockJournalRepo.On("ListEntries", ctx, 5, (*string)(nil), &posted).
		Return([]domain.JournalEntry{{EntryID: "e1", EntryNumber: 1, Status: domain.Posted}}, nil, nil).Once()

	summary, err := suite.service.Dashboard(ctx, suite.asOf)

	suite.Require().NoError(err)
	suite.True(summary.TotalAssets.Equal(decimal.NewFromInt(750)))
	suite.True(summary.NetIncome.Equal(decimal.NewFromInt(750)))
	suite.Len(summary.RecentEntries, 1)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
