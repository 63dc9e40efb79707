package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherEntryRequest is one leg of a voucher.
type VoucherEntryRequest struct {
	AccountID string          `json:"accountId" binding:"required"`
	EntryType string          `json:"entryType" binding:"required,oneof=DR CR"`
	Amount    decimal.Decimal `json:"amount"`
}

// CreateVoucherRequest defines the payload for authoring a voucher.
// Mode POST creates the voucher directly in POSTED state.
type CreateVoucherRequest struct {
	VoucherType   string                `json:"voucherType" binding:"required,oneof=JOURNAL PAYMENT RECEIPT SALES PURCHASE CONTRA"`
	VoucherNumber string                `json:"voucherNumber" binding:"required,max=50"`
	VoucherDate   string                `json:"voucherDate" binding:"required,datetime=2006-01-02"`
	Narration     string                `json:"narration,omitempty"`
	Mode          string                `json:"mode,omitempty" binding:"omitempty,oneof=DRAFT POST"`
	Entries       []VoucherEntryRequest `json:"entries" binding:"required,dive"`
}

// UpdateVoucherRequest replaces the header and full posting set of a draft.
type UpdateVoucherRequest struct {
	VoucherType   string                `json:"voucherType" binding:"required,oneof=JOURNAL PAYMENT RECEIPT SALES PURCHASE CONTRA"`
	VoucherNumber string                `json:"voucherNumber" binding:"required,max=50"`
	VoucherDate   string                `json:"voucherDate" binding:"required,datetime=2006-01-02"`
	Narration     string                `json:"narration,omitempty"`
	Entries       []VoucherEntryRequest `json:"entries" binding:"required,dive"`
}

// ReverseVoucherRequest defines the sibling voucher created by a reversal.
type ReverseVoucherRequest struct {
	ReversalVoucherNumber string  `json:"reversalVoucherNumber" binding:"required,max=50"`
	ReversalDate          *string `json:"reversalDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Narration             string  `json:"narration,omitempty"`
}

// ListVouchersParams are the query parameters of GET /vouchers.
type ListVouchersParams struct {
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Type      string `form:"type" binding:"omitempty,oneof=JOURNAL PAYMENT RECEIPT SALES PURCHASE CONTRA"`
	Status    string `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED"`
	Search    string `form:"search"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// PostingResponse defines the data returned for a posting.
type PostingResponse struct {
	PostingID string          `json:"postingId"`
	LineNo    int             `json:"lineNo"`
	AccountID string          `json:"accountId"`
	EntryType string          `json:"entryType"`
	Amount    decimal.Decimal `json:"amount"`
}

// VoucherResponse defines the data returned for a voucher.
type VoucherResponse struct {
	VoucherID           string            `json:"voucherId"`
	VoucherType         string            `json:"voucherType"`
	VoucherNumber       string            `json:"voucherNumber"`
	VoucherDate         string            `json:"voucherDate"`
	Narration           string            `json:"narration"`
	Status              string            `json:"status"`
	IsSystemGenerated   bool              `json:"isSystemGenerated"`
	ReversalOfVoucherID *string           `json:"reversalOfVoucherId,omitempty"`
	PostedAt            *time.Time        `json:"postedAt,omitempty"`
	CancelledAt         *time.Time        `json:"cancelledAt,omitempty"`
	GrossAmount         decimal.Decimal   `json:"grossAmount"`
	CreatedAt           time.Time         `json:"createdAt"`
	CreatedBy           string            `json:"createdBy"`
	Entries             []PostingResponse `json:"entries,omitempty"`
}

// ListVouchersResponse is one page of vouchers.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	Total     int64             `json:"total"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// DaybookEntryResponse is one voucher of a day.
type DaybookEntryResponse struct {
	VoucherID     string          `json:"voucherId"`
	VoucherType   string          `json:"voucherType"`
	VoucherNumber string          `json:"voucherNumber"`
	Narration     string          `json:"narration"`
	Status        string          `json:"status"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
}

// DaybookResponse lists the vouchers of a day with day totals.
type DaybookResponse struct {
	Date        string                 `json:"date"`
	Entries     []DaybookEntryResponse `json:"entries"`
	TotalDebit  decimal.Decimal        `json:"totalDebit"`
	TotalCredit decimal.Decimal        `json:"totalCredit"`
}

// ToPostings converts request entries into unsaved postings numbered from 1.
func ToPostings(entries []VoucherEntryRequest) []domain.Posting {
	postings := make([]domain.Posting, len(entries))
	for i, e := range entries {
		postings[i] = domain.Posting{
			LineNo:    i + 1,
			AccountID: e.AccountID,
			EntryType: domain.EntryType(e.EntryType),
			Amount:    e.Amount,
		}
	}
	return postings
}

func ToVoucherResponse(v domain.Voucher) VoucherResponse {
	resp := VoucherResponse{
		VoucherID:           v.VoucherID,
		VoucherType:         string(v.VoucherType),
		VoucherNumber:       v.VoucherNumber,
		VoucherDate:         v.VoucherDate.Format(domain.DateLayout),
		Narration:           v.Narration,
		Status:              string(v.Status),
		IsSystemGenerated:   v.IsSystemGenerated,
		ReversalOfVoucherID: v.ReversalOfVoucherID,
		PostedAt:            v.PostedAt,
		CancelledAt:         v.CancelledAt,
		GrossAmount:         v.GrossAmount,
		CreatedAt:           v.CreatedAt,
		CreatedBy:           v.CreatedBy,
	}
	if len(v.Postings) > 0 {
		resp.Entries = make([]PostingResponse, len(v.Postings))
		for i, p := range v.Postings {
			resp.Entries[i] = PostingResponse{
				PostingID: p.PostingID,
				LineNo:    p.LineNo,
				AccountID: p.AccountID,
				EntryType: string(p.EntryType),
				Amount:    p.Amount,
			}
		}
	}
	return resp
}

func ToVoucherResponses(vouchers []domain.Voucher) []VoucherResponse {
	out := make([]VoucherResponse, len(vouchers))
	for i, v := range vouchers {
		out[i] = ToVoucherResponse(v)
	}
	return out
}

func ToDaybookResponse(day time.Time, entries []domain.DaybookEntry) DaybookResponse {
	resp := DaybookResponse{
		Date:        day.Format(domain.DateLayout),
		Entries:     make([]DaybookEntryResponse, len(entries)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i, e := range entries {
		resp.Entries[i] = DaybookEntryResponse{
			VoucherID:     e.VoucherID,
			VoucherType:   string(e.VoucherType),
			VoucherNumber: e.VoucherNumber,
			Narration:     e.Narration,
			Status:        string(e.Status),
			DebitTotal:    e.DebitTotal,
			CreditTotal:   e.CreditTotal,
		}
		resp.TotalDebit = resp.TotalDebit.Add(e.DebitTotal)
		resp.TotalCredit = resp.TotalCredit.Add(e.CreditTotal)
	}
	return resp
}
