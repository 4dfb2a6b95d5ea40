package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	"github.com/finbooks-io/ledger-backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// JournalRepository is the in-memory journal and posted log.
type JournalRepository struct {
	store *Store
}

var _ portsrepo.JournalRepository = (*JournalRepository)(nil)

func (r *JournalRepository) SaveDraft(ctx context.Context, entry domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.entries[entry.EntryID]; exists {
		return apperrors.ErrDuplicate
	}
	r.store.entries[entry.EntryID] = copyEntry(&entry)
	return nil
}

func (r *JournalRepository) UpdateDraft(ctx context.Context, entry domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.entries[entry.EntryID]
	if !ok || existing.Status != domain.Draft {
		return apperrors.ErrConflict
	}
	// Keep the original creation audit fields.
	entry.CreatedAt = existing.CreatedAt
	entry.CreatedBy = existing.CreatedBy
	r.store.entries[entry.EntryID] = copyEntry(&entry)
	return nil
}

func (r *JournalRepository) DeleteDraft(ctx context.Context, entryID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.entries[entryID]
	if !ok || existing.Status != domain.Draft {
		return apperrors.ErrConflict
	}
	delete(r.store.entries, entryID)
	return nil
}

func (r *JournalRepository) AppendPostedEntry(ctx context.Context, entry *domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.entries[entry.EntryID]; exists {
		return apperrors.ErrDuplicate
	}

	r.store.lastEntryNumber++
	now := time.Now().UTC()
	entry.EntryNumber = r.store.lastEntryNumber
	entry.PostedAt = &now
	entry.Status = domain.Posted

	r.store.entries[entry.EntryID] = copyEntry(entry)
	return nil
}

func (r *JournalRepository) PromoteDraftEntry(ctx context.Context, entry *domain.JournalEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.entries[entry.EntryID]
	if !ok || existing.Status != domain.Draft {
		return apperrors.ErrConflict
	}

	r.store.lastEntryNumber++
	now := time.Now().UTC()
	existing.EntryNumber = r.store.lastEntryNumber
	existing.PostedAt = &now
	existing.Status = domain.Posted
	existing.LastUpdatedAt = entry.LastUpdatedAt
	existing.LastUpdatedBy = entry.LastUpdatedBy

	entry.EntryNumber = existing.EntryNumber
	entry.PostedAt = existing.PostedAt
	entry.Status = existing.Status
	return nil
}

func (r *JournalRepository) AppendReversalEntry(ctx context.Context, entry *domain.JournalEntry, originalEntryID string, updatedBy string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	original, ok := r.store.entries[originalEntryID]
	if !ok || original.Status != domain.Posted {
		return apperrors.ErrConflict
	}

	r.store.lastEntryNumber++
	now := time.Now().UTC()
	entry.EntryNumber = r.store.lastEntryNumber
	entry.PostedAt = &now
	entry.Status = domain.Posted
	r.store.entries[entry.EntryID] = copyEntry(entry)

	original.Status = domain.Reversed
	original.ReversedByEntryID = &entry.EntryID
	original.LastUpdatedAt = updatedAt
	original.LastUpdatedBy = updatedBy
	return nil
}

func (r *JournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entry, ok := r.store.entries[entryID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	header := copyEntry(entry)
	header.Lines = nil
	return header, nil
}

func (r *JournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entry, ok := r.store.entries[entryID]
	if !ok {
		return []domain.EntryLine{}, nil
	}
	lines := make([]domain.EntryLine, len(entry.Lines))
	copy(lines, entry.Lines)
	return lines, nil
}

func (r *JournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := []domain.JournalEntry{}
	for _, entry := range r.store.entries {
		if status != nil && entry.Status != *status {
			continue
		}
		header := copyEntry(entry)
		header.Lines = nil
		entries = append(entries, *header)
	}
	// Newest first; the entry ID breaks creation-time ties so the order is
	// deterministic and the keyset token resumes without skips or repeats.
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].EntryDate.Equal(entries[j].EntryDate) {
			return entries[i].EntryDate.After(entries[j].EntryDate)
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].EntryID > entries[j].EntryID
	})

	if nextToken != nil {
		entryDate, createdAt, entryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		idx := sort.Search(len(entries), func(i int) bool {
			e := entries[i]
			if !e.EntryDate.Equal(entryDate) {
				return e.EntryDate.Before(entryDate)
			}
			if !e.CreatedAt.Equal(createdAt) {
				return e.CreatedAt.Before(createdAt)
			}
			return e.EntryID < entryID
		})
		entries = entries[idx:]
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		t := pagination.EncodeToken(last.EntryDate, last.CreatedAt, last.EntryID)
		token = &t
	}
	return entries, token, nil
}

// postedLines collects joined lines of posted entries for the account inside
// the window. Callers hold the store lock.
func (r *JournalRepository) postedLines(accountCode string, from, to time.Time, openEndedFrom bool) []domain.EntryLine {
	lines := []domain.EntryLine{}
	for _, entry := range r.store.entries {
		if entry.EntryNumber == 0 {
			continue
		}
		if !openEndedFrom && entry.EntryDate.Before(from) {
			continue
		}
		if entry.EntryDate.After(to) {
			continue
		}
		for _, line := range entry.Lines {
			if line.AccountCode != accountCode {
				continue
			}
			line.EntryDate = entry.EntryDate
			line.EntryNumber = entry.EntryNumber
			line.Reference = entry.Reference
			lines = append(lines, line)
		}
	}
	return lines
}

func (r *JournalRepository) SumPostedLines(ctx context.Context, accountCode string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	debits, credits := decimal.Zero, decimal.Zero
	for _, line := range r.postedLines(accountCode, time.Time{}, before, true) {
		if !line.EntryDate.Before(before) {
			continue
		}
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits, nil
}

func (r *JournalRepository) FindPostedLines(ctx context.Context, accountCode string, from, to time.Time) ([]domain.EntryLine, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	lines := r.postedLines(accountCode, from, to, false)
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].EntryDate.Equal(lines[j].EntryDate) {
			return lines[i].EntryDate.Before(lines[j].EntryDate)
		}
		return lines[i].EntryNumber < lines[j].EntryNumber
	})
	return lines, nil
}
