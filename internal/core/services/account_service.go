package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
	"github.com/finbooks-io/ledger-backend/internal/dto"
	"github.com/finbooks-io/ledger-backend/internal/middleware"
)

// accountService owns the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountService {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountService = (*accountService)(nil)

// CreateAccount registers a new account in the chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := time.Now().UTC()
	account := domain.Account{
		Code:        code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Attempt to create account with duplicate code", slog.String("code", code))
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, code)
		}
		logger.Error("Failed to save account", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("code", code), slog.String("type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByCode looks up a single account.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find account", slog.String("code", code), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountsByCodes looks up several accounts at once, keyed by code.
func (s *accountService) GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByCodes(ctx, codes)
}

// ListAccounts retrieves accounts matching the given filters.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, params.ActiveOnly, params.AccountType)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount changes an account's name, description and, while the account
// has no posted activity yet, its classification. Once any posted line
// references the account the classification is locked: changing it would
// invalidate historical statement math.
func (s *accountService) UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil && *req.Name != account.Name {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil && *req.Description != account.Description {
		account.Description = *req.Description
		updated = true
	}
	if req.AccountType != nil && *req.AccountType != account.AccountType {
		if !req.AccountType.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		referenced, err := s.accountRepo.HasPostedLines(ctx, code)
		if err != nil {
			logger.Error("Failed to check posted activity", slog.String("code", code), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to check posted activity: %w", err)
		}
		if referenced {
			logger.Warn("Rejected classification change on referenced account", slog.String("code", code))
			return nil, fmt.Errorf("%w: account %s has posted activity, its classification is immutable", apperrors.ErrConflict, code)
		}
		account.AccountType = *req.AccountType
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("code", code), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("code", code))
	return account, nil
}

// DeactivateAccount retires an account from further posting. Accounts with
// posted history are never deleted, only deactivated.
func (s *accountService) DeactivateAccount(ctx context.Context, code string, updaterUserID string) error {
	return s.setActive(ctx, code, false, updaterUserID)
}

// ActivateAccount re-enables a deactivated account for posting.
func (s *accountService) ActivateAccount(ctx context.Context, code string, updaterUserID string) error {
	return s.setActive(ctx, code, true, updaterUserID)
}

func (s *accountService) setActive(ctx context.Context, code string, active bool, updaterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		return err
	}
	if account.IsActive == active {
		return nil
	}

	if err := s.accountRepo.SetAccountActive(ctx, code, active, updaterUserID, time.Now().UTC()); err != nil {
		logger.Error("Failed to change account active flag", slog.String("code", code), slog.Bool("active", active), slog.String("error", err.Error()))
		return fmt.Errorf("failed to change account active flag: %w", err)
	}

	logger.Info("Account active flag changed", slog.String("code", code), slog.Bool("active", active))
	return nil
}
