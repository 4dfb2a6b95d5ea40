package pgsql

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxReportingRepository aggregates posted lines for the statement builders.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetAccountActivity returns raw debit and credit totals per account over the
// window. A zero from time means from the start of the books.
func (r *PgxReportingRepository) GetAccountActivity(ctx context.Context, from, to time.Time) ([]portsrepo.AccountActivity, error) {
	query := `
		SELECT a.code, a.name, a.account_type,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.code = l.account_code
		WHERE e.entry_number IS NOT NULL
		  AND ($1::timestamptz IS NULL OR e.entry_date >= $1)
		  AND e.entry_date <= $2
		GROUP BY a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	var fromArg *time.Time
	if !from.IsZero() {
		fromArg = &from
	}

	rows, err := r.Pool.Query(ctx, query, fromArg, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity: %w", err)
	}
	defer rows.Close()

	activity := []portsrepo.AccountActivity{}
	for rows.Next() {
		var a portsrepo.AccountActivity
		if err := rows.Scan(&a.AccountCode, &a.AccountName, &a.AccountType, &a.DebitTotal, &a.CreditTotal); err != nil {
			return nil, fmt.Errorf("failed to scan account activity: %w", err)
		}
		activity = append(activity, a)
	}
	return activity, rows.Err()
}
