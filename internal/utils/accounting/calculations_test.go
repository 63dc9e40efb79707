package accounting

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posting(entryType domain.EntryType, amount string) domain.Posting {
	return domain.Posting{AccountID: "acc-" + amount, EntryType: entryType, Amount: decimal.RequireFromString(amount)}
}

func TestValidateEntries(t *testing.T) {
	tests := []struct {
		name       string
		postings   []domain.Posting
		wantErr    error
		unbalanced bool
	}{
		{
			name:     "balanced pair",
			postings: []domain.Posting{posting(domain.Debit, "500"), posting(domain.Credit, "500")},
		},
		{
			name:     "trailing zeros beyond two places",
			postings: []domain.Posting{posting(domain.Debit, "100.500"), posting(domain.Credit, "100.5")},
		},
		{
			name:     "half cents that balance only in total",
			postings: []domain.Posting{posting(domain.Debit, "0.005"), posting(domain.Debit, "0.005"), posting(domain.Credit, "0.01")},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "sub cent legs",
			postings: []domain.Posting{posting(domain.Debit, "0.004"), posting(domain.Credit, "0.004")},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "single entry",
			postings: []domain.Posting{posting(domain.Debit, "500")},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "zero amount",
			postings: []domain.Posting{posting(domain.Debit, "0"), posting(domain.Credit, "0")},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "bad entry type",
			postings: []domain.Posting{{AccountID: "a", EntryType: "DEBIT", Amount: decimal.NewFromInt(1)}, posting(domain.Credit, "1")},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:       "off by a cent",
			postings:   []domain.Posting{posting(domain.Debit, "100.00"), posting(domain.Credit, "99.99")},
			wantErr:    apperrors.ErrBusinessRule,
			unbalanced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntries(tt.postings)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			var unbalanced *apperrors.UnbalancedError
			assert.Equal(t, tt.unbalanced, errors.As(err, &unbalanced))
		})
	}
}

func TestUnbalancedErrorCarriesTotals(t *testing.T) {
	err := ValidateEntries([]domain.Posting{posting(domain.Debit, "700"), posting(domain.Credit, "500")})

	var unbalanced *apperrors.UnbalancedError
	require.True(t, errors.As(err, &unbalanced))
	assert.Equal(t, "700.00", unbalanced.Debit.StringFixed(2))
	assert.Equal(t, "500.00", unbalanced.Credit.StringFixed(2))
	assert.Equal(t, "200.00", unbalanced.Variance().StringFixed(2))
	assert.Contains(t, err.Error(), "variance 200.00")
}

func TestApplyRunningBalances_OrdersAndSeeds(t *testing.T) {
	d1 := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	lines := []domain.LedgerLine{
		{VoucherNumber: "JV-2", TxnDate: d2, EntryType: domain.Credit, Amount: decimal.NewFromInt(200)},
		{VoucherNumber: "JV-1", TxnDate: d1, EntryType: domain.Debit, Amount: decimal.NewFromInt(500)},
		{VoucherNumber: "JV-1", TxnDate: d2, EntryType: domain.Debit, Amount: decimal.NewFromInt(50)},
		{VoucherNumber: "JV-1", TxnDate: d2, EntryType: domain.Debit, Amount: decimal.NewFromInt(10)},
	}

	closing := ApplyRunningBalances(decimal.NewFromInt(1000), lines)

	assert.Equal(t, []string{"500", "10", "50", "200"}, []string{
		lines[0].Amount.String(), lines[1].Amount.String(), lines[2].Amount.String(), lines[3].Amount.String(),
	})
	assert.Equal(t, "1500", lines[0].RunningBalance.String())
	assert.Equal(t, "1510", lines[1].RunningBalance.String())
	assert.Equal(t, "1560", lines[2].RunningBalance.String())
	assert.Equal(t, "1360", lines[3].RunningBalance.String())
	assert.True(t, closing.Equal(lines[3].RunningBalance))
}

func TestApplyRunningBalances_EmptyReturnsOpening(t *testing.T) {
	closing := ApplyRunningBalances(decimal.NewFromInt(-75), nil)
	assert.Equal(t, "-75", closing.String())
}

func TestApplyRunningBalances_MatchesDirectSum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 50; round++ {
		opening := decimal.NewFromInt(int64(rng.Intn(20000) - 10000)).Shift(-2)
		n := rng.Intn(40)
		lines := make([]domain.LedgerLine, n)
		expected := opening
		for i := range lines {
			entryType := domain.Debit
			if rng.Intn(2) == 0 {
				entryType = domain.Credit
			}
			amount := decimal.NewFromInt(int64(rng.Intn(100000) + 1)).Shift(-2)
			lines[i] = domain.LedgerLine{
				VoucherNumber: fmt.Sprintf("V-%03d", rng.Intn(10)),
				TxnDate:       base.AddDate(0, 0, rng.Intn(30)),
				EntryType:     entryType,
				Amount:        amount,
			}
			expected = expected.Add(domain.SignedAmount(entryType, amount))
		}

		closing := ApplyRunningBalances(opening, lines)
		require.True(t, closing.Equal(expected), "round %d: closing %s != %s", round, closing, expected)

		// every running balance equals opening plus the prefix of signed amounts
		prefix := opening
		for i, l := range lines {
			prefix = prefix.Add(l.Signed())
			require.True(t, l.RunningBalance.Equal(prefix), "round %d line %d", round, i)
			if i > 0 {
				require.False(t, l.TxnDate.Before(lines[i-1].TxnDate))
			}
		}
	}
}

func TestWithinTolerance(t *testing.T) {
	assert.True(t, WithinTolerance(decimal.RequireFromString("100.00"), decimal.RequireFromString("100.01")))
	assert.False(t, WithinTolerance(decimal.RequireFromString("100.00"), decimal.RequireFromString("100.02")))
}
