package services

import (
	"context"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
)

// LedgerService is the ledger projector facade: account activity with running
// balances, recomputed from the posted log on every call.
type LedgerService interface {
	// View replays the account's posted lines with from <= date <= to in
	// (entry date, entry number) order and returns the opening balance, one
	// row per line with its running balance, and the closing balance.
	// Fails with apperrors.ErrNotFound for an unknown account.
	View(ctx context.Context, accountCode string, from, to time.Time) (*domain.LedgerView, error)
}
