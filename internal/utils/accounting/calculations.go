package accounting

import (
	"fmt"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the fixed tolerance for the debit/credit balance check:
// one hundredth of a two-decimal minor currency unit (0.0001). Amounts are
// exact decimals, so the tolerance only absorbs rounding introduced upstream
// by decimal arithmetic (e.g. allocation of a split), never float error.
var BalanceTolerance = decimal.New(1, -4)

// SignedAmount applies the account-type sign convention to a line.
// DEBIT increases ASSET/EXPENSE balances; CREDIT increases
// LIABILITY/EQUITY/REVENUE balances.
func SignedAmount(line domain.EntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountCode)
	}
	if accountType.DebitNormal() {
		return line.Debit.Sub(line.Credit), nil
	}
	return line.Credit.Sub(line.Debit), nil
}

// SumSigned folds the sign convention over a set of lines for one account.
func SumSigned(lines []domain.EntryLine, accountType domain.AccountType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range lines {
		signed, err := SignedAmount(l, accountType)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(signed)
	}
	return total, nil
}
