// Package memory provides an in-memory implementation of the repository
// ports, backed by maps behind a single mutex. It is used when the service
// runs with STORAGE_DRIVER=memory and by tests that need a real store
// without a database.
package memory

import (
	"sync"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	portsrepo "github.com/finbooks-io/ledger-backend/internal/core/ports/repositories"
)

// Store holds all ledger state in memory. The mutex serializes writers, so
// entry numbers are assigned the same way the database driver assigns them:
// unique, strictly increasing and gap-free.
type Store struct {
	mu sync.RWMutex

	accounts map[string]domain.Account
	entries  map[string]*domain.JournalEntry

	lastEntryNumber int64
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		entries:  make(map[string]*domain.JournalEntry),
	}
}

// NewRepositoryProvider wires one shared store behind every repository port.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	store := NewStore()
	return portsrepo.RepositoryProvider{
		AccountRepo:   &AccountRepository{store: store},
		JournalRepo:   &JournalRepository{store: store},
		ReportingRepo: &ReportingRepository{store: store},
	}
}

// copyEntry returns a deep copy so callers cannot mutate stored state.
func copyEntry(e *domain.JournalEntry) *domain.JournalEntry {
	out := *e
	if e.PostedAt != nil {
		t := *e.PostedAt
		out.PostedAt = &t
	}
	if e.ReversalOfEntryID != nil {
		v := *e.ReversalOfEntryID
		out.ReversalOfEntryID = &v
	}
	if e.ReversedByEntryID != nil {
		v := *e.ReversedByEntryID
		out.ReversedByEntryID = &v
	}
	out.Lines = make([]domain.EntryLine, len(e.Lines))
	copy(out.Lines, e.Lines)
	return &out
}
