package accounting

import (
	"fmt"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the precision amounts are compared at.
const MoneyPlaces = 2

// Tolerance is the largest variance the opening position accepts.
var Tolerance = decimal.NewFromFloat(0.01)

// Round rounds an amount to money precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// Totals sums the debit and credit sides of a posting set.
func Totals(postings []domain.Posting) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, p := range postings {
		if p.EntryType == domain.Debit {
			debit = debit.Add(p.Amount)
		} else {
			credit = credit.Add(p.Amount)
		}
	}
	return debit, credit
}

// GrossAmount is the sum of every posting amount regardless of side.
func GrossAmount(postings []domain.Posting) decimal.Decimal {
	gross := decimal.Zero
	for _, p := range postings {
		gross = gross.Add(p.Amount)
	}
	return gross
}

// ValidateEntries checks shape and balance of a posting set. Shape problems
// wrap ErrValidation; an imbalance is an *apperrors.UnbalancedError.
func ValidateEntries(postings []domain.Posting) error {
	if len(postings) < 2 {
		return fmt.Errorf("%w: a voucher requires at least 2 entries", apperrors.ErrValidation)
	}
	for i, p := range postings {
		if p.AccountID == "" {
			return fmt.Errorf("%w: entry %d has no account", apperrors.ErrValidation, i+1)
		}
		if !p.EntryType.IsValid() {
			return fmt.Errorf("%w: entry %d has invalid entry type %q", apperrors.ErrValidation, i+1, p.EntryType)
		}
		if !p.Amount.IsPositive() {
			return fmt.Errorf("%w: entry %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		if !HasMoneyPrecision(p.Amount) {
			return fmt.Errorf("%w: entry %d amount has more than %d decimal places", apperrors.ErrValidation, i+1, MoneyPlaces)
		}
	}

	debit, credit := Totals(postings)
	if !debit.Equal(credit) {
		return &apperrors.UnbalancedError{Subject: "voucher", Debit: debit, Credit: credit}
	}
	return nil
}

// HasMoneyPrecision reports whether d is representable at MoneyPlaces
// without rounding. Trailing zeros such as 10.500 are fine.
func HasMoneyPrecision(d decimal.Decimal) bool {
	return d.Equal(Round(d))
}

// WithinTolerance reports whether two totals agree to within Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// SortLedgerLines orders lines by date, then voucher number, then amount.
func SortLedgerLines(lines []domain.LedgerLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.TxnDate.Equal(b.TxnDate) {
			return a.TxnDate.Before(b.TxnDate)
		}
		if a.VoucherNumber != b.VoucherNumber {
			return a.VoucherNumber < b.VoucherNumber
		}
		return a.Amount.LessThan(b.Amount)
	})
}

// ApplyRunningBalances orders lines and fills RunningBalance with a single
// forward prefix sum seeded by opening. It returns the closing balance.
func ApplyRunningBalances(opening decimal.Decimal, lines []domain.LedgerLine) decimal.Decimal {
	SortLedgerLines(lines)
	running := opening
	for i := range lines {
		running = running.Add(lines[i].Signed())
		lines[i].RunningBalance = running
	}
	return running
}
