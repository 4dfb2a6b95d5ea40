package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
	"github.com/finbooks-io/ledger-backend/internal/dto"
	"github.com/finbooks-io/ledger-backend/internal/middleware"
	"github.com/finbooks-io/ledger-backend/internal/utils/accounting"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var (
	ErrNotDraft           = errors.New("entry is not a draft")
	ErrNotPosted          = errors.New("entry is not posted")
	ErrAlreadyReversed    = errors.New("entry has already been reversed")
	ErrReversalOfReversal = errors.New("cannot reverse a reversal entry")
)

// journalService is the posting engine: it validates candidate entries,
// manages the draft lifecycle, and appends posted entries to the log.
type journalService struct {
	accountSvc  portssvc.AccountService
	journalRepo portsrepo.JournalRepository
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountSvc portssvc.AccountService) portssvc.JournalService {
	return &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
}

var _ portssvc.JournalService = (*journalService)(nil)

// buildEntry constructs a domain entry from the request, assigning line IDs.
func (s *journalService) buildEntry(req dto.CreateEntryRequest, entryID string, userID string, now time.Time) (*domain.JournalEntry, error) {
	entryDate, err := req.EntryDate()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.Date)
	}

	entry := &domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		Description: req.Description,
		Reference:   req.Reference,
		Status:      domain.Draft,
		Lines:       make([]domain.EntryLine, len(req.Lines)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for i, lineReq := range req.Lines {
		entry.Lines[i] = domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountCode: lineReq.AccountCode,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			Description: lineReq.Description,
		}
	}
	return entry, nil
}

// validateForPosting runs the full posting precondition check against the
// current registry state. The returned error wraps both
// apperrors.ErrValidation and the specific accounting rule that failed.
func (s *journalService) validateForPosting(ctx context.Context, entry *domain.JournalEntry) error {
	codes := make([]string, 0, len(entry.Lines))
	for _, line := range entry.Lines {
		codes = append(codes, line.AccountCode)
	}

	accounts, err := s.accountSvc.GetAccountsByCodes(ctx, uniqueStrings(codes))
	if err != nil {
		return fmt.Errorf("failed to fetch accounts for validation: %w", err)
	}

	if err := accounting.ValidateEntry(entry, accounts); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	return nil
}

// CreateDraft stores a candidate entry as a DRAFT. Drafts are not validated
// against the balance invariant; that check is a posting precondition.
func (s *journalService) CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.buildEntry(req, uuid.NewString(), creatorUserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveDraft(ctx, *entry); err != nil {
		logger.Error("Failed to save draft entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save draft entry: %w", err)
	}

	logger.Info("Draft entry created", slog.String("entry_id", entry.EntryID))
	return entry, nil
}

// UpdateDraft replaces a draft's header and lines in full.
func (s *journalService) UpdateDraft(ctx context.Context, entryID string, req dto.CreateEntryRequest, updaterUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing.Status != domain.Draft {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNotDraft)
	}

	entry, err := s.buildEntry(req, entryID, updaterUserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = existing.CreatedAt
	entry.CreatedBy = existing.CreatedBy

	if err := s.journalRepo.UpdateDraft(ctx, *entry); err != nil {
		logger.Error("Failed to update draft entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update draft entry: %w", err)
	}

	logger.Info("Draft entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteDraft removes a draft entry. Posted entries are never deleted.
func (s *journalService) DeleteDraft(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if existing.Status != domain.Draft {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNotDraft)
	}

	if err := s.journalRepo.DeleteDraft(ctx, entryID); err != nil {
		logger.Error("Failed to delete draft entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete draft entry: %w", err)
	}

	logger.Info("Draft entry deleted", slog.String("entry_id", entryID))
	return nil
}

// PostEntry validates a candidate entry and appends it to the posted log in
// one step. The append is atomic: on any failure nothing is written.
func (s *journalService) PostEntry(ctx context.Context, req dto.CreateEntryRequest, posterUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.buildEntry(req, uuid.NewString(), posterUserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.validateForPosting(ctx, entry); err != nil {
		return nil, err
	}

	entry.Status = domain.Posted
	if err := s.journalRepo.AppendPostedEntry(ctx, entry); err != nil {
		logger.Error("Failed to append posted entry", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Entry posted", slog.String("entry_id", entry.EntryID), slog.Int64("entry_number", entry.EntryNumber))
	return entry, nil
}

// PostDraft validates an existing draft and promotes it to POSTED.
func (s *journalService) PostDraft(ctx context.Context, entryID string, posterUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.Draft {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNotDraft)
	}

	if err := s.validateForPosting(ctx, entry); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry.Status = domain.Posted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = posterUserID

	if err := s.journalRepo.PromoteDraftEntry(ctx, entry); err != nil {
		logger.Error("Failed to promote draft entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Draft entry posted", slog.String("entry_id", entryID), slog.Int64("entry_number", entry.EntryNumber))
	return entry, nil
}

// ReverseEntry posts a new entry mirroring the original with debit and credit
// swapped, and marks the original REVERSED. The original is never edited.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	switch {
	case original.Status == domain.Draft:
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNotPosted)
	case original.Status == domain.Reversed:
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadyReversed)
	case original.ReversalOfEntryID != nil:
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrReversalOfReversal)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()
	reversal := &domain.JournalEntry{
		EntryID:           reversalID,
		EntryDate:         original.EntryDate,
		Description:       fmt.Sprintf("Reversal of entry #%d: %s", original.EntryNumber, original.Description),
		Reference:         original.Reference,
		Status:            domain.Posted,
		ReversalOfEntryID: &original.EntryID,
		Lines:             make([]domain.EntryLine, len(original.Lines)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for i, line := range original.Lines {
		reversal.Lines[i] = domain.EntryLine{
			LineID:      uuid.NewString(),
			EntryID:     reversalID,
			AccountCode: line.AccountCode,
			Debit:       line.Credit,
			Credit:      line.Debit,
			Description: line.Description,
		}
	}

	// The reversal must itself satisfy the posting preconditions; in
	// particular every referenced account must still be active.
	if err := s.validateForPosting(ctx, reversal); err != nil {
		return nil, err
	}

	if err := s.journalRepo.AppendReversalEntry(ctx, reversal, original.EntryID, userID, now); err != nil {
		logger.Error("Failed to append reversal entry", slog.String("original_entry_id", original.EntryID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", reversalID),
		slog.Int64("entry_number", reversal.EntryNumber))
	return reversal, nil
}

// GetEntry retrieves an entry with its lines populated.
func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a page of entries, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken, params.Status)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
