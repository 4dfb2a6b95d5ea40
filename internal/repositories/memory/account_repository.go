package memory

import (
	"context"
	"sort"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
)

// AccountRepository is the in-memory chart of accounts.
type AccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepository = (*AccountRepository)(nil)

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.accounts[account.Code]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.accounts[account.Code] = account
	return nil
}

func (r *AccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	account, ok := r.store.accounts[code]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &account, nil
}

func (r *AccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	found := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		if account, ok := r.store.accounts[code]; ok {
			found[code] = account
		}
	}
	return found, nil
}

func (r *AccountRepository) ListAccounts(ctx context.Context, activeOnly bool, accountType *domain.AccountType) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := []domain.Account{}
	for _, account := range r.store.accounts {
		if activeOnly && !account.IsActive {
			continue
		}
		if accountType != nil && account.AccountType != *accountType {
			continue
		}
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (r *AccountRepository) HasPostedLines(ctx context.Context, code string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, entry := range r.store.entries {
		if entry.EntryNumber == 0 {
			continue
		}
		for _, line := range entry.Lines {
			if line.AccountCode == code {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *AccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.accounts[account.Code]
	if !ok {
		return apperrors.ErrNotFound
	}
	existing.Name = account.Name
	existing.Description = account.Description
	existing.AccountType = account.AccountType
	existing.LastUpdatedAt = account.LastUpdatedAt
	existing.LastUpdatedBy = account.LastUpdatedBy
	r.store.accounts[account.Code] = existing
	return nil
}

func (r *AccountRepository) SetAccountActive(ctx context.Context, code string, active bool, updatedBy string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.accounts[code]
	if !ok {
		return apperrors.ErrNotFound
	}
	existing.IsActive = active
	existing.LastUpdatedAt = updatedAt
	existing.LastUpdatedBy = updatedBy
	r.store.accounts[code] = existing
	return nil
}
