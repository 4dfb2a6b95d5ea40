package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	"github.com/finbooks-io/ledger-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxJournalRepository persists journal entries and their lines. Posted
// entries form an append-only log; sequence numbers come from a single-row
// ledger_sequence table updated inside the posting transaction, which
// serializes concurrent posters and keeps the sequence gap-free.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_number, entry_date, description, reference, status, posted_at,
	reversal_of_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	var entryNumber sql.NullInt64
	var postedAt sql.NullTime
	var reversalOf, reversedBy sql.NullString

	err := row.Scan(
		&e.EntryID,
		&entryNumber,
		&e.EntryDate,
		&e.Description,
		&e.Reference,
		&e.Status,
		&postedAt,
		&reversalOf,
		&reversedBy,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan journal entry: %w", err)
	}

	if entryNumber.Valid {
		e.EntryNumber = entryNumber.Int64
	}
	if postedAt.Valid {
		t := postedAt.Time
		e.PostedAt = &t
	}
	if reversalOf.Valid {
		v := reversalOf.String
		e.ReversalOfEntryID = &v
	}
	if reversedBy.Valid {
		v := reversedBy.String
		e.ReversedByEntryID = &v
	}
	return &e, nil
}

// nextEntryNumber claims the next value of the posting sequence within tx.
// The row update blocks concurrent posters until the transaction finishes,
// so numbers are unique, strictly increasing and gap-free.
func (r *PgxJournalRepository) nextEntryNumber(ctx context.Context, tx pgx.Tx) (int64, error) {
	var number int64
	err := tx.QueryRow(ctx, `
		UPDATE ledger_sequence
		SET last_entry_number = last_entry_number + 1
		WHERE id = 1
		RETURNING last_entry_number;
	`).Scan(&number)
	if err != nil {
		return 0, translateConcurrencyError(err)
	}
	return number, nil
}

func (r *PgxJournalRepository) insertHeader(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	var entryNumber *int64
	if entry.EntryNumber > 0 {
		entryNumber = &entry.EntryNumber
	}
	query := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entryNumber,
		entry.EntryDate,
		entry.Description,
		entry.Reference,
		entry.Status,
		entry.PostedAt,
		entry.ReversalOfEntryID,
		entry.ReversedByEntryID,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", entry.EntryID, translateConcurrencyError(err))
	}
	return nil
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO entry_lines (line_id, entry_id, account_code, debit, credit, description, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for i, line := range entry.Lines {
		batch.Queue(query,
			line.LineID,
			entry.EntryID,
			line.AccountCode,
			line.Debit,
			line.Credit,
			line.Description,
			i,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert lines for entry %s: %w", entry.EntryID, translateConcurrencyError(err))
	}
	return nil
}

// SaveDraft persists a new DRAFT entry with its lines.
func (r *PgxJournalRepository) SaveDraft(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertHeader(ctx, tx, entry); err != nil {
		return err
	}
	if err := r.insertLines(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateDraft replaces the header fields and lines of an existing DRAFT.
func (r *PgxJournalRepository) UpdateDraft(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET entry_date = $2, description = $3, reference = $4, last_updated_at = $5, last_updated_by = $6
		WHERE entry_id = $1 AND status = 'DRAFT';
	`, entry.EntryID, entry.EntryDate, entry.Description, entry.Reference, entry.LastUpdatedAt, entry.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update draft "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entry.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to replace lines for draft "+entry.EntryID, err)
	}
	if err := r.insertLines(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// DeleteDraft removes a DRAFT entry and its lines.
func (r *PgxJournalRepository) DeleteDraft(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines for draft "+entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND status = 'DRAFT';`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete draft "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return r.Commit(ctx, tx)
}

// AppendPostedEntry atomically assigns the next sequence number and appends
// the entry with all of its lines. Either everything is recorded or nothing.
func (r *PgxJournalRepository) AppendPostedEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.nextEntryNumber(ctx, tx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	entry.EntryNumber = number
	entry.PostedAt = &now
	entry.Status = domain.Posted

	if err := r.insertHeader(ctx, tx, *entry); err != nil {
		return err
	}
	if err := r.insertLines(ctx, tx, *entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// PromoteDraftEntry atomically transitions an existing DRAFT to POSTED.
func (r *PgxJournalRepository) PromoteDraftEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.nextEntryNumber(ctx, tx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET entry_number = $2, status = 'POSTED', posted_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND status = 'DRAFT';
	`, entry.EntryID, number, now, entry.LastUpdatedAt, entry.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to promote draft "+entry.EntryID, translateConcurrencyError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	entry.EntryNumber = number
	entry.PostedAt = &now
	entry.Status = domain.Posted
	return nil
}

// AppendReversalEntry appends the reversing entry and marks the original
// REVERSED as a single atomic unit.
func (r *PgxJournalRepository) AppendReversalEntry(ctx context.Context, entry *domain.JournalEntry, originalEntryID string, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	number, err := r.nextEntryNumber(ctx, tx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	entry.EntryNumber = number
	entry.PostedAt = &now
	entry.Status = domain.Posted
	entry.ReversedByEntryID = nil

	if err := r.insertHeader(ctx, tx, *entry); err != nil {
		return err
	}
	if err := r.insertLines(ctx, tx, *entry); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = 'REVERSED', reversed_by_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND status = 'POSTED';
	`, originalEntryID, entry.EntryID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry reversed "+originalEntryID, translateConcurrencyError(err))
	}
	if tag.RowsAffected() == 0 {
		// Someone else reversed it first.
		return apperrors.ErrConflict
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its stable ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	return scanEntry(r.Pool.QueryRow(ctx, query, entryID))
}

// FindLinesByEntryID retrieves the lines of one entry in stored order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_code, debit, credit, description
		FROM entry_lines
		WHERE entry_id = $1
		ORDER BY position;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.EntryLine{}
	for rows.Next() {
		var l domain.EntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountCode, &l.Debit, &l.Credit, &l.Description); err != nil {
			return nil, fmt.Errorf("failed to scan entry line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ListEntries retrieves entries newest first with token pagination.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string, status *domain.EntryStatus) ([]domain.JournalEntry, *string, error) {
	args := []any{limit + 1}
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`

	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if nextToken != nil {
		entryDate, createdAt, entryID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, entryDate, createdAt, entryID)
		query += fmt.Sprintf(" AND (entry_date, created_at, entry_id) < ($%d, $%d, $%d)", len(args)-2, len(args)-1, len(args))
	}
	query += " ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $1;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
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

// SumPostedLines returns the raw debit and credit totals of posted lines for
// one account with entry date strictly before the given date. Entries later
// reversed still count: their effect is offset by the reversal entry itself.
func (r *PgxJournalRepository) SumPostedLines(ctx context.Context, accountCode string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1
		  AND e.entry_number IS NOT NULL
		  AND e.entry_date < $2;
	`
	var debits, credits decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountCode, before).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum posted lines for account %s: %w", accountCode, err)
	}
	return debits, credits, nil
}

// FindPostedLines retrieves posted lines for one account inside the window,
// ordered by (entry date, entry number).
func (r *PgxJournalRepository) FindPostedLines(ctx context.Context, accountCode string, from, to time.Time) ([]domain.EntryLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_code, l.debit, l.credit, l.description,
		       e.entry_date, e.entry_number, e.reference
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1
		  AND e.entry_number IS NOT NULL
		  AND e.entry_date >= $2
		  AND e.entry_date <= $3
		ORDER BY e.entry_date, e.entry_number, l.position;
	`
	rows, err := r.Pool.Query(ctx, query, accountCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines for account %s: %w", accountCode, err)
	}
	defer rows.Close()

	lines := []domain.EntryLine{}
	for rows.Next() {
		var l domain.EntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountCode, &l.Debit, &l.Credit, &l.Description,
			&l.EntryDate, &l.EntryNumber, &l.Reference); err != nil {
			return nil, fmt.Errorf("failed to scan posted line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
