package services

import (
	"context"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/finbooks-io/ledger-backend/internal/dto"
)

// JournalService is the posting engine facade. It validates candidate entries,
// manages the draft lifecycle and commits entries to the append-only log.
type JournalService interface {
	// CreateDraft stores a candidate entry as a DRAFT without validation
	// beyond basic shape; drafts carry no sequence number.
	CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)

	// UpdateDraft replaces a draft's header and lines. Fails with
	// apperrors.ErrConflict once the entry is posted.
	UpdateDraft(ctx context.Context, entryID string, req dto.CreateEntryRequest, updaterUserID string) (*domain.JournalEntry, error)

	// DeleteDraft removes a draft. Posted entries are never deleted.
	DeleteDraft(ctx context.Context, entryID string) error

	// PostEntry validates a candidate entry and, on success, atomically
	// appends it to the posted log with the next sequence number.
	// Validation failures carry one of the accounting rule errors wrapped in
	// apperrors.ErrValidation.
	PostEntry(ctx context.Context, req dto.CreateEntryRequest, posterUserID string) (*domain.JournalEntry, error)

	// PostDraft validates an existing draft and promotes it to POSTED.
	PostDraft(ctx context.Context, entryID string, posterUserID string) (*domain.JournalEntry, error)

	// ReverseEntry posts a new entry that mirrors the original with debit and
	// credit swapped, links it back, and marks the original REVERSED.
	ReverseEntry(ctx context.Context, entryID string, userID string) (*domain.JournalEntry, error)

	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}
