package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "DRAFT"
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of entry lines.
//
// EntryNumber is zero while the entry is a draft; the posting engine assigns the
// next value of a strictly increasing, gap-free sequence at post time. Once
// posted an entry is immutable; corrections are made by posting a reversing
// entry, never by editing.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`     // Stable identifier across the draft lifecycle (UUID)
	EntryNumber int64       `json:"entryNumber"` // Posting sequence number; 0 for drafts
	EntryDate   time.Time   `json:"entryDate"`   // Calendar date of the event, midnight UTC
	Description string      `json:"description"`
	Reference   string      `json:"reference"` // Optional external reference
	Status      EntryStatus `json:"status"`
	PostedAt    *time.Time  `json:"postedAt,omitempty"`

	// Reversal linkage. An entry that reverses another carries ReversalOfEntryID;
	// the original carries ReversedByEntryID once reversed.
	ReversalOfEntryID *string `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string `json:"reversedByEntryID,omitempty"`

	Lines []EntryLine `json:"lines,omitempty"`
	AuditFields
}

// EntryLine is a single debit or credit against one account within a journal entry.
// Exactly one of Debit and Credit is strictly positive; the other is zero.
type EntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`

	// Populated on reads that join the parent entry, for ledger rendering.
	EntryDate   time.Time `json:"entryDate,omitempty"`
	EntryNumber int64     `json:"entryNumber,omitempty"`
	Reference   string    `json:"reference,omitempty"`
}

// TotalDebits sums the debit side of the entry's lines.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry's lines.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.Credit)
	}
	return total
}
