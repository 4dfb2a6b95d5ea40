package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
	"github.com/finbooks-io/ledger-backend/internal/middleware"
	"github.com/finbooks-io/ledger-backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerService projects account activity from the posted entry log.
// Balances are never stored: every view is recomputed by replaying the log,
// so readers need no locks and repeated reads with no intervening posts are
// identical.
type ledgerService struct {
	accountRepo portsrepo.AccountRepository
	journalRepo portsrepo.JournalRepository
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepository, journalRepo portsrepo.JournalRepository) portssvc.LedgerService {
	return &ledgerService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.LedgerService = (*ledgerService)(nil)

// View computes the account's ledger over the window [from, to].
func (s *ledgerService) View(ctx context.Context, accountCode string, from, to time.Time) (*domain.LedgerView, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if to.Before(from) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			apperrors.ErrValidation, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for ledger view", slog.String("code", accountCode), slog.String("error", err.Error()))
		}
		return nil, err
	}

	// Opening balance: signed sum of everything posted strictly before the window.
	openDebits, openCredits, err := s.journalRepo.SumPostedLines(ctx, accountCode, from)
	if err != nil {
		logger.Error("Failed to sum opening balance", slog.String("code", accountCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	opening := openDebits.Sub(openCredits)
	if !account.AccountType.DebitNormal() {
		opening = openCredits.Sub(openDebits)
	}

	// Replay the window in (entry date, entry number) order; ties on date are
	// broken by entry number so the order is deterministic.
	lines, err := s.journalRepo.FindPostedLines(ctx, accountCode, from, to)
	if err != nil {
		logger.Error("Failed to fetch posted lines", slog.String("code", accountCode), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch posted lines: %w", err)
	}

	view := &domain.LedgerView{
		Account:        *account,
		StartDate:      from,
		EndDate:        to,
		OpeningBalance: opening,
		Lines:          make([]domain.LedgerLine, len(lines)),
		TotalDebits:    decimal.Zero,
		TotalCredits:   decimal.Zero,
	}

	running := opening
	for i, line := range lines {
		signed, err := accounting.SignedAmount(line, account.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to apply sign convention: %w", err)
		}
		running = running.Add(signed)

		view.Lines[i] = domain.LedgerLine{
			EntryID:     line.EntryID,
			EntryNumber: line.EntryNumber,
			EntryDate:   line.EntryDate,
			Reference:   line.Reference,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Balance:     running,
		}
		view.TotalDebits = view.TotalDebits.Add(line.Debit)
		view.TotalCredits = view.TotalCredits.Add(line.Credit)
	}
	view.ClosingBalance = running

	logger.Debug("Ledger view computed",
		slog.String("code", accountCode),
		slog.Int("line_count", len(lines)))
	return view, nil
}
