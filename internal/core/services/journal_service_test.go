package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
	"github.com/finbooks-io/ledger-backend/internal/core/services"
	"github.com/finbooks-io/ledger-backend/internal/dto"
	"github.com/finbooks-io/ledger-backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveDraft(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateDraft(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteDraft(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockJournalRepository) AppendPostedEntry(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) PromoteDraftEntry(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) AppendReversalEntry(ctx context.Context, entry *domain.JournalEntry, originalEntryID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entry, originalEntryID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken, status)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) SumPostedLines(ctx context.Context, accountCode string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountCode, before)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockJournalRepository) FindPostedLines(ctx context.Context, accountCode string, from, to time.Time) ([]domain.EntryLine, error) {
	args := m.Called(ctx, accountCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLine), args.Error(1)
}

// --- Mock AccountService (as used by JournalService) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountService = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	args := m.Called(ctx, code, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, code string, updaterUserID string) error {
	args := m.Called(ctx, code, updaterUserID)
	return args.Error(0)
}

func (m *MockAccountService) ActivateAccount(ctx context.Context, code string, updaterUserID string) error {
	args := m.Called(ctx, code, updaterUserID)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.JournalService
	cashAccount     domain.Account
	revenueAccount  domain.Account
	expenseAccount  domain.Account
	userID          string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc)

	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		Code:        "4000",
		Name:        "Sales Revenue",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		Code:        "5000",
		Name:        "Rent Expense",
		AccountType: domain.Expense,
		IsActive:    true,
	}
}

func (suite *JournalServiceTestSuite) balancedRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		Date:        "2025-03-10",
		Description: "Cash sale",
		Lines: []dto.EntryLineRequest{
			{AccountCode: suite.cashAccount.Code, Debit: decimal.NewFromInt(100)},
			{AccountCode: suite.revenueAccount.Code, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (suite *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		suite.cashAccount.Code:    suite.cashAccount,
		suite.revenueAccount.Code: suite.revenueAccount,
	}
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest()

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, []string{"1000", "4000"}).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("AppendPostedEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.JournalEntry)
			entry.EntryNumber = 7
			now := time.Now().UTC()
			entry.PostedAt = &now
		}).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal(int64(7), posted.EntryNumber)
	suite.NotNil(posted.PostedAt)
	suite.Equal(suite.userID, posted.CreatedBy)
	suite.Len(posted.Lines, 2)
	suite.True(posted.TotalDebits().Equal(posted.TotalCredits()))

	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_Unbalanced_NothingWritten() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, []string{"1000", "4000"}).Return(suite.accountsMap(), nil).Once()

	posted, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(posted)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, accounting.ErrUnbalancedEntry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "AppendPostedEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_UnknownAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	// Registry only knows the cash account.
	partial := map[string]domain.Account{suite.cashAccount.Code: suite.cashAccount}
	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, []string{"1000", "4000"}).Return(partial, nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, accounting.ErrUnknownAccount)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "AppendPostedEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest()

	inactive := suite.revenueAccount
	inactive.IsActive = false
	accounts := map[string]domain.Account{
		suite.cashAccount.Code: suite.cashAccount,
		inactive.Code:          inactive,
	}
	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, []string{"1000", "4000"}).Return(accounts, nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, accounting.ErrInactiveAccount)
}

func (suite *JournalServiceTestSuite) TestPostEntry_LineWithBothSides() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[0].Credit = decimal.NewFromInt(100)
	req.Lines[0].Debit = decimal.NewFromInt(100)

	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, []string{"1000", "4000"}).Return(suite.accountsMap(), nil).Once()

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, accounting.ErrInvalidLineAmount)
}

func (suite *JournalServiceTestSuite) TestPostEntry_InvalidDate() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Date = "10/03/2025"

	_, err := suite.service.PostEntry(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByCodes", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateDraft_SkipsBalanceCheck() {
	ctx := context.Background()
	req := suite.balancedRequest()
	req.Lines[1].Credit = decimal.NewFromInt(55) // deliberately unbalanced

	suite.mockJournalRepo.On("SaveDraft", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	draft, err := suite.service.CreateDraft(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, draft.Status)
	suite.Zero(draft.EntryNumber)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountsByCodes", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostDraft_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Status:      domain.Draft,
	}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "1000", Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "4000", Credit: decimal.NewFromInt(100)},
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, []string{"1000", "4000"}).Return(suite.accountsMap(), nil).Once()
	suite.mockJournalRepo.On("PromoteDraftEntry", ctx, mock.AnythingOfType("*domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.JournalEntry)
			entry.EntryNumber = 12
		}).Return(nil).Once()

	posted, err := suite.service.PostDraft(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal(int64(12), posted.EntryNumber)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostDraft_AlreadyPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, EntryNumber: 3, Status: domain.Posted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.EntryLine{}, nil).Once()

	_, err := suite.service.PostDraft(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrNotDraft)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PromoteDraftEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestDeleteDraft_PostedEntryRejected() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{EntryID: entryID, EntryNumber: 3, Status: domain.Posted}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(posted, nil).Once()

	err := suite.service.DeleteDraft(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteDraft", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:     entryID,
		EntryNumber: 5,
		EntryDate:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Description: "Rent payment",
		Status:      domain.Posted,
	}
	lines := []domain.EntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "5000", Debit: decimal.NewFromInt(250)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountCode: "1000", Credit: decimal.NewFromInt(250)},
	}
	accounts := map[string]domain.Account{
		suite.cashAccount.Code:    suite.cashAccount,
		suite.expenseAccount.Code: suite.expenseAccount,
	}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockAccountSvc.On("GetAccountsByCodes", ctx, []string{"5000", "1000"}).Return(accounts, nil).Once()
	suite.mockJournalRepo.On("AppendReversalEntry", ctx, mock.AnythingOfType("*domain.JournalEntry"), entryID, suite.userID, mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(*domain.JournalEntry)
			entry.EntryNumber = 6
		}).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.NotEqual(entryID, reversal.EntryID)
	suite.Require().NotNil(reversal.ReversalOfEntryID)
	suite.Equal(entryID, *reversal.ReversalOfEntryID)
	suite.Equal(original.EntryDate, reversal.EntryDate)
	suite.Contains(reversal.Description, "Reversal of entry #5")

	// Debit and credit are swapped line for line.
	suite.Require().Len(reversal.Lines, 2)
	suite.True(reversal.Lines[0].Credit.Equal(decimal.NewFromInt(250)))
	suite.True(reversal.Lines[0].Debit.IsZero())
	suite.True(reversal.Lines[1].Debit.Equal(decimal.NewFromInt(250)))
	suite.True(reversal.Lines[1].Credit.IsZero())

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Draft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{EntryID: entryID, Status: domain.Draft}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.EntryLine{}, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNotPosted)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversedBy := uuid.NewString()
	reversed := &domain.JournalEntry{EntryID: entryID, EntryNumber: 5, Status: domain.Reversed, ReversedByEntryID: &reversedBy}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(reversed, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.EntryLine{}, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "AppendReversalEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_OfReversal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	originalID := uuid.NewString()
	reversal := &domain.JournalEntry{EntryID: entryID, EntryNumber: 6, Status: domain.Posted, ReversalOfEntryID: &originalID}

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(reversal, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return([]domain.EntryLine{}, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrReversalOfReversal)
}

func (suite *JournalServiceTestSuite) TestGetEntry_NotFound() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entryID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetEntry(ctx, entryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()

	suite.mockJournalRepo.On("ListEntries", ctx, 20, (*string)(nil), (*domain.EntryStatus)(nil)).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	page, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(page.Entries)
	suite.Nil(page.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestListEntries_LimitCapped() {
	ctx := context.Background()

	suite.mockJournalRepo.On("ListEntries", ctx, 100, (*string)(nil), (*domain.EntryStatus)(nil)).
		Return([]domain.JournalEntry{}, nil, nil).Once()

	page, err := suite.service.ListEntries(ctx, dto.ListEntriesParams{Limit: 5000})

	suite.Require().NoError(err)
	suite.Empty(page.Entries)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
