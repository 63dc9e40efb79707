package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestVoucher_StateGuards(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.VoucherStatus
		canEdit    bool
		canPost    bool
		canCancel  bool
		canReverse bool
	}{
		{name: "draft", status: domain.StatusDraft, canEdit: true, canPost: true, canCancel: true, canReverse: false},
		{name: "posted", status: domain.StatusPosted, canEdit: false, canPost: false, canCancel: true, canReverse: true},
		{name: "cancelled", status: domain.StatusCancelled, canEdit: false, canPost: false, canCancel: false, canReverse: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := domain.Voucher{Status: tt.status}
			assert.Equal(t, tt.canEdit, v.IsEditable())
			assert.Equal(t, tt.canPost, v.CanPost())
			assert.Equal(t, tt.canCancel, v.CanCancel())
			assert.Equal(t, tt.canReverse, v.CanReverse())
		})
	}
}

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromInt(250)

	assert.True(t, domain.SignedAmount(domain.Debit, amount).Equal(amount))
	assert.True(t, domain.SignedAmount(domain.Credit, amount).Equal(amount.Neg()))
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}

func TestAccount_SignedOpeningBalance(t *testing.T) {
	capital := domain.Account{OpeningBalance: decimal.NewFromInt(1000), OpeningBalanceType: domain.Credit}
	cash := domain.Account{OpeningBalance: decimal.NewFromInt(1000), OpeningBalanceType: domain.Debit}

	assert.True(t, capital.SignedOpeningBalance().Equal(decimal.NewFromInt(-1000)))
	assert.True(t, cash.SignedOpeningBalance().Equal(decimal.NewFromInt(1000)))
}

func TestAccountBalance_ClosingSigned(t *testing.T) {
	bal := domain.AccountBalance{
		Account:        domain.Account{OpeningBalance: decimal.NewFromInt(1000), OpeningBalanceType: domain.Debit},
		MovementBefore: decimal.NewFromInt(-200),
		PeriodDebit:    decimal.NewFromInt(500),
		PeriodCredit:   decimal.NewFromInt(100),
	}

	assert.True(t, bal.PeriodMovement().Equal(decimal.NewFromInt(400)))
	assert.True(t, bal.ClosingSigned().Equal(decimal.NewFromInt(1200)))
}

func TestFiscalYearStart(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{name: "after april", date: time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), want: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{name: "on april first", date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), want: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{name: "before april", date: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), want: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.FiscalYearStart(tt.date, time.April))
		})
	}
}

func TestGroupCategory_NormalBalance(t *testing.T) {
	assert.Equal(t, domain.Debit, domain.CurrentAsset.NormalBalance())
	assert.Equal(t, domain.Debit, domain.Expense.NormalBalance())
	assert.Equal(t, domain.Credit, domain.Equity.NormalBalance())
	assert.Equal(t, domain.Credit, domain.Liability.NormalBalance())
	assert.False(t, domain.GroupCategory("ASSET").IsValid())
}

func TestIntegrityReport_IsClean(t *testing.T) {
	assert.True(t, domain.IntegrityReport{}.IsClean())
	assert.False(t, domain.IntegrityReport{VoucherCount: 1}.IsClean())
}
