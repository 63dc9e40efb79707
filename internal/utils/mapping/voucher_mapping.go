package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelVoucher converts a domain Voucher header to a model Voucher
func ToModelVoucher(d domain.Voucher) models.Voucher {
	return models.Voucher{
		VoucherID:           d.VoucherID,
		BusinessID:          d.BusinessID,
		VoucherType:         string(d.VoucherType),
		VoucherNumber:       d.VoucherNumber,
		VoucherDate:         d.VoucherDate,
		Narration:           optionalString(d.Narration),
		Status:              string(d.Status),
		IsSystemGenerated:   d.IsSystemGenerated,
		ReversalOfVoucherID: d.ReversalOfVoucherID,
		PostedAt:            d.PostedAt,
		CancelledAt:         d.CancelledAt,
		AuditFields:         ToModelAuditFields(d.AuditFields),
		GrossAmount:         d.GrossAmount,
	}
}

// ToDomainVoucher converts a model Voucher to a domain Voucher without postings
func ToDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:           m.VoucherID,
		BusinessID:          m.BusinessID,
		VoucherType:         domain.VoucherType(m.VoucherType),
		VoucherNumber:       m.VoucherNumber,
		VoucherDate:         m.VoucherDate,
		Narration:           derefString(m.Narration),
		Status:              domain.VoucherStatus(m.Status),
		IsSystemGenerated:   m.IsSystemGenerated,
		ReversalOfVoucherID: m.ReversalOfVoucherID,
		PostedAt:            m.PostedAt,
		CancelledAt:         m.CancelledAt,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
		GrossAmount:         m.GrossAmount,
	}
}

// ToDomainVoucherSlice converts a slice of model Vouchers to domain Vouchers
func ToDomainVoucherSlice(ms []models.Voucher) []domain.Voucher {
	ds := make([]domain.Voucher, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVoucher(m)
	}
	return ds
}

// ToModelPosting converts a domain Posting to a model Posting
func ToModelPosting(d domain.Posting) models.Posting {
	return models.Posting{
		PostingID:   d.PostingID,
		VoucherID:   d.VoucherID,
		BusinessID:  d.BusinessID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		EntryType:   string(d.EntryType),
		Amount:      d.Amount,
		PostingDate: d.PostingDate,
	}
}

// ToDomainPosting converts a model Posting to a domain Posting
func ToDomainPosting(m models.Posting) domain.Posting {
	return domain.Posting{
		PostingID:   m.PostingID,
		VoucherID:   m.VoucherID,
		BusinessID:  m.BusinessID,
		LineNo:      m.LineNo,
		AccountID:   m.AccountID,
		EntryType:   domain.EntryType(m.EntryType),
		Amount:      m.Amount,
		PostingDate: m.PostingDate,
	}
}

// ToDomainPostingSlice converts a slice of model Postings to domain Postings
func ToDomainPostingSlice(ms []models.Posting) []domain.Posting {
	ds := make([]domain.Posting, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPosting(m)
	}
	return ds
}
