package dto

import (
	"time"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntryLineRequest is one candidate line of a journal entry. Exactly one of
// debit and credit must be strictly positive; amounts are exact decimals.
type EntryLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required,accountcode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// CreateEntryRequest defines a candidate journal entry. The same shape backs
// draft creation, draft update and direct posting.
type CreateEntryRequest struct {
	Date        string             `json:"date" binding:"required,calendardate"` // YYYY-MM-DD
	Description string             `json:"description" binding:"required"`
	Reference   string             `json:"reference"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryDate parses the request date as a calendar date at midnight UTC.
func (r *CreateEntryRequest) EntryDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.Date)
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
	Status    *domain.EntryStatus
}

// EntryLineResponse defines the data returned for one entry line.
type EntryLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID           string              `json:"entryID"`
	EntryNumber       int64               `json:"entryNumber,omitempty"`
	Date              string              `json:"date"`
	Description       string              `json:"description"`
	Reference         string              `json:"reference,omitempty"`
	Status            domain.EntryStatus  `json:"status"`
	PostedAt          *time.Time          `json:"postedAt,omitempty"`
	ReversalOfEntryID *string             `json:"reversalOfEntryID,omitempty"`
	ReversedByEntryID *string             `json:"reversedByEntryID,omitempty"`
	TotalDebits       decimal.Decimal     `json:"totalDebits"`
	TotalCredits      decimal.Decimal     `json:"totalCredits"`
	Lines             []EntryLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	CreatedBy         string              `json:"createdBy"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryLineResponse converts a domain.EntryLine to its response DTO.
func ToEntryLineResponse(line *domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:      line.LineID,
		AccountCode: line.AccountCode,
		Debit:       line.Debit,
		Credit:      line.Credit,
		Description: line.Description,
	}
}

// ToEntryResponse converts a domain.JournalEntry to its response DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:           e.EntryID,
		EntryNumber:       e.EntryNumber,
		Date:              e.EntryDate.Format("2006-01-02"),
		Description:       e.Description,
		Reference:         e.Reference,
		Status:            e.Status,
		PostedAt:          e.PostedAt,
		ReversalOfEntryID: e.ReversalOfEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		TotalDebits:       e.TotalDebits(),
		TotalCredits:      e.TotalCredits(),
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]EntryLineResponse, len(e.Lines))
		for i := range e.Lines {
			resp.Lines[i] = ToEntryLineResponse(&e.Lines[i])
		}
	}
	return resp
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
