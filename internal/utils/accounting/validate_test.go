package accounting

import (
	"testing"

	"github.com/finbooks-io/ledger-backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"1000": {Code: "1000", AccountType: domain.Asset, IsActive: true},
		"2000": {Code: "2000", AccountType: domain.Liability, IsActive: true},
		"4000": {Code: "4000", AccountType: domain.Revenue, IsActive: true},
	}
}

func entryWith(lines ...domain.EntryLine) *domain.JournalEntry {
	return &domain.JournalEntry{EntryID: "e1", Lines: lines}
}

func TestValidateEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *domain.JournalEntry
		accounts map[string]domain.Account
		wantErr  error
	}{
		{
			name: "balanced entry passes",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.NewFromInt(100)},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(100)},
			),
			accounts: activeAccounts(),
		},
		{
			name: "multi-line split passes",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.RequireFromString("70.25")},
				domain.EntryLine{AccountCode: "2000", Debit: decimal.RequireFromString("29.75")},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(100)},
			),
			accounts: activeAccounts(),
		},
		{
			name: "single line rejected",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.NewFromInt(100)},
			),
			accounts: activeAccounts(),
			wantErr:  ErrTooFewLines,
		},
		{
			name:     "empty entry rejected",
			entry:    entryWith(),
			accounts: activeAccounts(),
			wantErr:  ErrTooFewLines,
		},
		{
			name: "unknown account rejected",
			entry: entryWith(
				domain.EntryLine{AccountCode: "9999", Debit: decimal.NewFromInt(100)},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(100)},
			),
			accounts: activeAccounts(),
			wantErr:  ErrUnknownAccount,
		},
		{
			name: "inactive account rejected",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.NewFromInt(100)},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(100)},
			),
			accounts: map[string]domain.Account{
				"1000": {Code: "1000", AccountType: domain.Asset, IsActive: true},
				"4000": {Code: "4000", AccountType: domain.Revenue, IsActive: false},
			},
			wantErr: ErrInactiveAccount,
		},
		{
			name: "line with both sides rejected",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(100)},
			),
			accounts: activeAccounts(),
			wantErr:  ErrInvalidLineAmount,
		},
		{
			name: "line with neither side rejected",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000"},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(100)},
			),
			accounts: activeAccounts(),
			wantErr:  ErrInvalidLineAmount,
		},
		{
			name: "negative amount rejected",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.NewFromInt(-100)},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(-100)},
			),
			accounts: activeAccounts(),
			wantErr:  ErrInvalidLineAmount,
		},
		{
			name: "unbalanced entry rejected",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.NewFromInt(100)},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(99)},
			),
			accounts: activeAccounts(),
			wantErr:  ErrUnbalancedEntry,
		},
		{
			name: "difference within tolerance passes",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.RequireFromString("100.0001")},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(100)},
			),
			accounts: activeAccounts(),
		},
		{
			name: "difference beyond tolerance rejected",
			entry: entryWith(
				domain.EntryLine{AccountCode: "1000", Debit: decimal.RequireFromString("100.0002")},
				domain.EntryLine{AccountCode: "4000", Credit: decimal.NewFromInt(100)},
			),
			accounts: activeAccounts(),
			wantErr:  ErrUnbalancedEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.entry, tt.accounts)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSignedAmount(t *testing.T) {
	debitLine := domain.EntryLine{AccountCode: "1000", Debit: decimal.NewFromInt(50)}
	creditLine := domain.EntryLine{AccountCode: "2000", Credit: decimal.NewFromInt(50)}

	// Debit increases debit-normal accounts.
	signed, err := SignedAmount(debitLine, domain.Asset)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.NewFromInt(50)))

	signed, err = SignedAmount(debitLine, domain.Expense)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.NewFromInt(50)))

	// Debit decreases credit-normal accounts.
	signed, err = SignedAmount(debitLine, domain.Liability)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.NewFromInt(-50)))

	// Credit increases credit-normal accounts.
	signed, err = SignedAmount(creditLine, domain.Revenue)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.NewFromInt(50)))

	signed, err = SignedAmount(creditLine, domain.Equity)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.NewFromInt(50)))

	// Credit decreases debit-normal accounts.
	signed, err = SignedAmount(creditLine, domain.Asset)
	require.NoError(t, err)
	assert.True(t, signed.Equal(decimal.NewFromInt(-50)))

	_, err = SignedAmount(debitLine, domain.AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestSumSigned(t *testing.T) {
	lines := []domain.EntryLine{
		{AccountCode: "1000", Debit: decimal.NewFromInt(100)},
		{AccountCode: "1000", Credit: decimal.NewFromInt(30)},
		{AccountCode: "1000", Debit: decimal.RequireFromString("12.50")},
	}

	total, err := SumSigned(lines, domain.Asset)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("82.50")))

	total, err = SumSigned(lines, domain.Liability)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("-82.50")))
}
