package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerParams are the query parameters of an account statement.
type LedgerParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// LedgerLineResponse is one posting on a statement.
type LedgerLineResponse struct {
	PostingID      string          `json:"postingId"`
	VoucherID      string          `json:"voucherId"`
	VoucherType    string          `json:"voucherType"`
	VoucherNumber  string          `json:"voucherNumber"`
	Narration      string          `json:"narration"`
	TxnDate        string          `json:"txnDate"`
	EntryType      string          `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerStatementResponse is an account statement over an optional range.
type LedgerStatementResponse struct {
	Account        AccountResponse      `json:"account"`
	From           *string              `json:"from,omitempty"`
	To             *string              `json:"to,omitempty"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
}

func ToLedgerStatementResponse(s domain.LedgerStatement) LedgerStatementResponse {
	resp := LedgerStatementResponse{
		Account:        ToAccountResponse(s.Account),
		From:           formatOptionalDate(s.From),
		To:             formatOptionalDate(s.To),
		OpeningBalance: s.OpeningBalance,
		ClosingBalance: s.ClosingBalance,
		Lines:          make([]LedgerLineResponse, len(s.Lines)),
	}
	for i, l := range s.Lines {
		resp.Lines[i] = LedgerLineResponse{
			PostingID:      l.PostingID,
			VoucherID:      l.VoucherID,
			VoucherType:    string(l.VoucherType),
			VoucherNumber:  l.VoucherNumber,
			Narration:      l.Narration,
			TxnDate:        l.TxnDate.Format(domain.DateLayout),
			EntryType:      string(l.EntryType),
			Amount:         l.Amount,
			RunningBalance: l.RunningBalance,
		}
	}
	return resp
}
