package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// VoucherReaderSvc defines read operations for vouchers
type VoucherReaderSvc interface {
	// GetVoucherByID returns the header plus ordered postings.
	GetVoucherByID(ctx context.Context, businessID, voucherID string) (*domain.Voucher, error)

	// ListVouchers returns one filtered page with the total match count.
	ListVouchers(ctx context.Context, filter domain.VoucherFilter) ([]domain.Voucher, int64, error)

	// Daybook returns the non-cancelled vouchers dated on day.
	Daybook(ctx context.Context, businessID string, day time.Time) ([]domain.DaybookEntry, error)
}

// VoucherAuthoringSvc defines the editing operations
type VoucherAuthoringSvc interface {
	// CreateVoucher validates and stores a voucher as DRAFT or directly POSTED.
	CreateVoucher(ctx context.Context, businessID string, req dto.CreateVoucherRequest, userID string) (*domain.Voucher, error)

	// UpdateVoucher replaces the header and postings of a DRAFT voucher.
	UpdateVoucher(ctx context.Context, businessID, voucherID string, req dto.UpdateVoucherRequest, userID string) (*domain.Voucher, error)

	// DeleteVoucher removes a DRAFT voucher with its postings.
	DeleteVoucher(ctx context.Context, businessID, voucherID, userID string) error
}

// VoucherLifecycleSvc defines the state transitions
type VoucherLifecycleSvc interface {
	// PostVoucher moves a DRAFT to POSTED after re-validating balance.
	PostVoucher(ctx context.Context, businessID, voucherID, userID string) (*domain.Voucher, error)

	// CancelVoucher voids a DRAFT or POSTED voucher while keeping its record.
	CancelVoucher(ctx context.Context, businessID, voucherID, userID string) (*domain.Voucher, error)

	// ReverseVoucher creates a POSTED sibling with every entry side flipped.
	ReverseVoucher(ctx context.Context, businessID, voucherID string, req dto.ReverseVoucherRequest, userID string) (*domain.Voucher, error)
}

// VoucherSvcFacade combines all voucher-related service interfaces
type VoucherSvcFacade interface {
	VoucherReaderSvc
	VoucherAuthoringSvc
	VoucherLifecycleSvc
}
