package accounting

import (
	"errors"
	"fmt"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
)

var (
	ErrTooFewLines       = errors.New("journal entry must have at least two lines")
	ErrUnknownAccount    = errors.New("line references an unknown account")
	ErrInactiveAccount   = errors.New("line references an inactive account")
	ErrInvalidLineAmount = errors.New("line must have exactly one of debit or credit strictly positive")
	ErrUnbalancedEntry   = errors.New("entry debits and credits do not balance")
)

// ValidateEntry checks a candidate entry against the posting preconditions.
// Rules run in order and the first failure wins:
//  1. at least two lines,
//  2. every line's account exists and is active,
//  3. every line has exactly one strictly positive side, the other zero,
//  4. |sum(debits) - sum(credits)| <= BalanceTolerance.
//
// Pure function of the candidate and the supplied account snapshot; no side
// effects. The accounts map is keyed by account code.
func ValidateEntry(entry *domain.JournalEntry, accounts map[string]domain.Account) error {
	if len(entry.Lines) < 2 {
		return ErrTooFewLines
	}

	for _, line := range entry.Lines {
		acc, ok := accounts[line.AccountCode]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownAccount, line.AccountCode)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: %s", ErrInactiveAccount, line.AccountCode)
		}
	}

	for _, line := range entry.Lines {
		if err := validateLineAmounts(line); err != nil {
			return err
		}
	}

	debits := entry.TotalDebits()
	credits := entry.TotalCredits()
	if debits.Sub(credits).Abs().GreaterThan(BalanceTolerance) {
		return fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedEntry, debits.String(), credits.String())
	}

	return nil
}

func validateLineAmounts(line domain.EntryLine) error {
	if line.Debit.IsNegative() || line.Credit.IsNegative() {
		return fmt.Errorf("%w: account %s has a negative amount", ErrInvalidLineAmount, line.AccountCode)
	}
	debitSet := line.Debit.IsPositive()
	creditSet := line.Credit.IsPositive()
	if debitSet == creditSet { // both zero or both positive
		return fmt.Errorf("%w: account %s has debit %s and credit %s",
			ErrInvalidLineAmount, line.AccountCode, line.Debit.String(), line.Credit.String())
	}
	return nil
}
