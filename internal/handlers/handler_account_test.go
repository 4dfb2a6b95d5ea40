package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
	"github.com/finbooks-io/ledger-backend/internal/dto"
	"github.com/finbooks-io/ledger-backend/internal/handlers"
	"github.com/finbooks-io/ledger-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
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
type AccountHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockAccountSvc *MockAccountService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterCustomValidators()

	suite.mockAccountSvc = new(MockAccountService)
	container := &portssvc.ServiceContainer{Account: suite.mockAccountSvc}

	suite.router = gin.New()
	// IsProduction disables the swagger routes, which the tests don't need.
	handlers.RegisterRoutes(suite.router, &config.Config{IsProduction: true}, container)
}

func (suite *AccountHandlerTestSuite) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	created := &domain.Account{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: time.Now().UTC(), CreatedBy: "system"},
	}

	suite.mockAccountSvc.On("CreateAccount", mock.Anything, reqBody, "system").Return(created, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("1000", resp.Code)
	suite.True(resp.IsActive)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidCodeRejectedByBinding() {
	reqBody := dto.CreateAccountRequest{Code: "bad code!", Name: "Cash", AccountType: domain.Asset}

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidType() {
	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", map[string]string{
		"code": "1000", "name": "Cash", "accountType": "SOMETHING",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Duplicate() {
	reqBody := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}

	suite.mockAccountSvc.On("CreateAccount", mock.Anything, reqBody, "system").
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", reqBody)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ActorHeader() {
	reqBody := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	created := &domain.Account{Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}

	suite.mockAccountSvc.On("CreateAccount", mock.Anything, reqBody, "alex").Return(created, nil).Once()

	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(reqBody))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor", "alex")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockAccountSvc.On("GetAccountByCode", mock.Anything, "9999").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/9999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_TypeFilter() {
	assetType := domain.Asset
	params := dto.ListAccountsParams{ActiveOnly: true, AccountType: &assetType}

	suite.mockAccountSvc.On("ListAccounts", mock.Anything, params).
		Return([]domain.Account{{Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}}, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts?activeOnly=true&type=ASSET", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Accounts, 1)
	suite.Equal("1000", resp.Accounts[0].Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_BadTypeFilter() {
	w := suite.performRequest(http.MethodGet, "/api/v1/accounts?type=NOPE", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "ListAccounts", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount() {
	suite.mockAccountSvc.On("DeactivateAccount", mock.Anything, "1000", "system").Return(nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts/1000/deactivate", nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
