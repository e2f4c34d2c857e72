package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ikicamilo/oceanre-backend/internal/core/domain"
)

func TestCheckAmounts(t *testing.T) {
	testCases := []struct {
		name    string
		debit   decimal.Decimal
		credit  decimal.Decimal
		wantErr error
	}{
		{"valid debit", decimal.NewFromInt(100), decimal.Zero, nil},
		{"valid credit", decimal.Zero, decimal.NewFromInt(100), nil},
		{"both zero", decimal.Zero, decimal.Zero, domain.ErrLineZeroAmount},
		{"both sides", decimal.NewFromInt(50), decimal.NewFromInt(50), domain.ErrLineBothSides},
		{"negative debit", decimal.NewFromInt(-10), decimal.Zero, domain.ErrLineNegativeAmount},
		{"negative credit", decimal.Zero, decimal.NewFromInt(-10), domain.ErrLineNegativeAmount},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			line := domain.JournalLine{Debit: tc.debit, Credit: tc.credit}
			err := line.CheckAmounts()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestEntryIsBalanced(t *testing.T) {
	balanced := []domain.JournalLine{
		{Debit: decimal.NewFromInt(100)},
		{Credit: decimal.NewFromInt(60)},
		{Credit: decimal.NewFromInt(40)},
	}
	assert.True(t, domain.EntryIsBalanced(balanced))

	unbalanced := append(balanced, domain.JournalLine{Debit: decimal.NewFromInt(50)})
	assert.False(t, domain.EntryIsBalanced(unbalanced))
}

func TestEntryIsBalancedAtTwoDecimalPlaces(t *testing.T) {
	// 0.104 and 0.096 both land on 0.10 after rounding.
	lines := []domain.JournalLine{
		{Debit: decimal.NewFromFloat(0.104)},
		{Credit: decimal.NewFromFloat(0.096)},
	}
	assert.True(t, domain.EntryIsBalanced(lines))

	// A spread wider than half a cent stays visible.
	lines = []domain.JournalLine{
		{Debit: decimal.NewFromFloat(0.11)},
		{Credit: decimal.NewFromFloat(0.10)},
	}
	assert.False(t, domain.EntryIsBalanced(lines))
}

func TestEntryTotalsKeepsSameAccountLinesSeparate(t *testing.T) {
	accountID := "acc-1"
	lines := []domain.JournalLine{
		{AccountID: accountID, Debit: decimal.NewFromInt(30)},
		{AccountID: accountID, Debit: decimal.NewFromInt(70)},
		{AccountID: "acc-2", Credit: decimal.NewFromInt(100)},
	}
	debits, credits := domain.EntryTotals(lines)
	assert.True(t, debits.Equal(decimal.NewFromInt(100)))
	assert.True(t, credits.Equal(decimal.NewFromInt(100)))
}

func TestLineAmountSide(t *testing.T) {
	debitLine := domain.JournalLine{Debit: decimal.NewFromInt(25)}
	assert.True(t, debitLine.IsDebit())
	assert.True(t, debitLine.Amount().Equal(decimal.NewFromInt(25)))

	creditLine := domain.JournalLine{Credit: decimal.NewFromInt(40)}
	assert.False(t, creditLine.IsDebit())
	assert.True(t, creditLine.Amount().Equal(decimal.NewFromInt(40)))
}
