package repositories

import (
	"context"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryReader defines read operations over journal entries.
type EntryReader interface {
	// FindEntryByID retrieves an entry header by its stable ID.
	// Returns apperrors.ErrNotFound if no such entry exists.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of one entry in stored order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// ListEntries retrieves entries newest first with token pagination,
	// optionally filtered by status. Returns the entries and the next token.
	ListEntries(ctx context.Context, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error)
}

// EntryWriter defines the mutation paths for journal entries. Posted entries
// are append-only: the only permitted mutations of a posted entry are the
// reversal linkage set by AppendReversalEntry.
type EntryWriter interface {
	// SaveDraft persists a new DRAFT entry with its lines.
	SaveDraft(ctx context.Context, entry domain.JournalEntry) error

	// UpdateDraft replaces the header fields and lines of an existing DRAFT.
	// Returns apperrors.ErrConflict if the entry is no longer a draft.
	UpdateDraft(ctx context.Context, entry domain.JournalEntry) error

	// DeleteDraft removes a DRAFT entry and its lines.
	// Returns apperrors.ErrConflict if the entry is no longer a draft.
	DeleteDraft(ctx context.Context, entryID string) error

	// AppendPostedEntry atomically assigns the next sequence number and
	// appends the entry and all of its lines to the posted log. Either the
	// header and every line are recorded or nothing is. On success the
	// entry's EntryNumber and PostedAt are filled in.
	// Returns apperrors.ErrConcurrentModification when a concurrent poster
	// invalidated the append.
	AppendPostedEntry(ctx context.Context, entry *domain.JournalEntry) error

	// PromoteDraftEntry atomically transitions an existing DRAFT to POSTED,
	// assigning the next sequence number, with the same guarantees as
	// AppendPostedEntry. Returns apperrors.ErrConflict if the entry is not a
	// draft.
	PromoteDraftEntry(ctx context.Context, entry *domain.JournalEntry) error

	// AppendReversalEntry atomically appends the reversing entry to the posted
	// log (assigning its sequence number) and marks the original entry
	// REVERSED with the linkage set, as a single unit.
	AppendReversalEntry(ctx context.Context, entry *domain.JournalEntry, originalEntryID string, updatedBy string, updatedAt time.Time) error
}

// LedgerReader defines read operations over posted lines for ledger projection.
// Reads observe a consistent snapshot of the posted log and never block posts.
type LedgerReader interface {
	// SumPostedLines returns the raw debit and credit totals of posted lines
	// for one account with entry date strictly before the given date.
	SumPostedLines(ctx context.Context, accountCode string, before time.Time) (debits, credits decimal.Decimal, err error)

	// FindPostedLines retrieves posted lines for one account with
	// from <= entry date <= to, ordered by (entry date, entry number),
	// each joined with its entry's date, number and reference.
	FindPostedLines(ctx context.Context, accountCode string, from, to time.Time) ([]domain.EntryLine, error)
}

// JournalRepository combines entry reads, writes and ledger projection reads.
type JournalRepository interface {
	EntryReader
	EntryWriter
	LedgerReader
}
