package services

import (
	"context"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/finbooks-io/ledger-backend/internal/dto"
)

// AccountService is the account registry facade: it owns the chart of accounts.
type AccountService interface {
	// CreateAccount registers a new account. Fails with apperrors.ErrDuplicate
	// when the code is already taken, apperrors.ErrValidation on bad input.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByCode looks up one account. Fails with apperrors.ErrNotFound.
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// GetAccountsByCodes looks up several accounts at once, keyed by code.
	GetAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts matching the given filters.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error)

	// UpdateAccount changes an account's name and/or description.
	UpdateAccount(ctx context.Context, code string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)

	// DeactivateAccount retires an account from further posting. Historical
	// entries are untouched; the account is never deleted.
	DeactivateAccount(ctx context.Context, code string, updaterUserID string) error

	// ActivateAccount re-enables a deactivated account for posting.
	ActivateAccount(ctx context.Context, code string, updaterUserID string) error
}
