package repositories

import (
	"context"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountActivity carries the raw posted debit and credit totals of one account
// over some window, before any sign convention is applied.
type AccountActivity struct {
	AccountCode string
	AccountName string
	AccountType domain.AccountType
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
}

// ReportingRepository defines aggregate reads over the posted entry log.
// All methods are pure reads on a consistent snapshot; the three statements
// are derived from the same activity query so they necessarily agree.
type ReportingRepository interface {
	// GetAccountActivity returns, for every account with posted activity in
	// from <= entry date <= to, the raw debit and credit totals. A zero from
	// time means "from the start of the books".
	GetAccountActivity(ctx context.Context, from, to time.Time) ([]AccountActivity, error)
}
