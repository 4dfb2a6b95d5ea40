package memory

import (
	"context"
	"sort"
	"time"

	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
)

// ReportingRepository aggregates posted lines for the statement builders.
type ReportingRepository struct {
	store *Store
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

func (r *ReportingRepository) GetAccountActivity(ctx context.Context, from, to time.Time) ([]portsrepo.AccountActivity, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byCode := map[string]*portsrepo.AccountActivity{}
	for _, entry := range r.store.entries {
		if entry.EntryNumber == 0 {
			continue
		}
		if !from.IsZero() && entry.EntryDate.Before(from) {
			continue
		}
		if entry.EntryDate.After(to) {
			continue
		}
		for _, line := range entry.Lines {
			activity, ok := byCode[line.AccountCode]
			if !ok {
				account, found := r.store.accounts[line.AccountCode]
				if !found {
					continue
				}
				activity = &portsrepo.AccountActivity{
					AccountCode: account.Code,
					AccountName: account.Name,
					AccountType: account.AccountType,
				}
				byCode[line.AccountCode] = activity
			}
			activity.DebitTotal = activity.DebitTotal.Add(line.Debit)
			activity.CreditTotal = activity.CreditTotal.Add(line.Credit)
		}
	}

	activities := make([]portsrepo.AccountActivity, 0, len(byCode))
	for _, activity := range byCode {
		activities = append(activities, *activity)
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].AccountCode < activities[j].AccountCode })
	return activities, nil
}
