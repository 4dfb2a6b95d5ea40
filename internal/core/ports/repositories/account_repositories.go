package repositories

import (
	"context"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts.
type AccountReader interface {
	// FindAccountByCode retrieves a single account by its code.
	// Returns apperrors.ErrNotFound if no such account exists.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves the given accounts, keyed by code.
	// Missing codes are simply absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves accounts, optionally restricted to active ones
	// and/or a single classification. Results are ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool, accountType *domain.AccountType) ([]domain.Account, error)

	// HasPostedLines reports whether any posted entry line references the account.
	HasPostedLines(ctx context.Context, code string) (bool, error)
}

// AccountWriter defines write operations for the chart of accounts.
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate when
	// the code is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates the mutable fields (name, description) of an account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// SetAccountActive flips the active flag. Historical entries are untouched.
	SetAccountActive(ctx context.Context, code string, active bool, updatedBy string, updatedAt time.Time) error
}

// AccountRepository combines account read and write operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
