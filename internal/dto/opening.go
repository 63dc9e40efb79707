package dto

import (
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpeningBalanceLineRequest seeds one ledger. DrCr is inferred when omitted.
type OpeningBalanceLineRequest struct {
	LedgerName string          `json:"ledgerName" yaml:"ledgerName" binding:"required,max=200" validate:"required,max=200"`
	Group      string          `json:"group" yaml:"group" binding:"required,max=200" validate:"required,max=200"`
	DrCr       string          `json:"drCr,omitempty" yaml:"drCr,omitempty" binding:"omitempty,oneof=DR CR Dr Cr dr cr" validate:"omitempty,oneof=DR CR Dr Cr dr cr"`
	Amount     decimal.Decimal `json:"amount" yaml:"amount"`
}

// OpeningStockItemRequest seeds one inventory item.
type OpeningStockItemRequest struct {
	SKU        string          `json:"sku,omitempty" yaml:"sku,omitempty" binding:"omitempty,max=100" validate:"omitempty,max=100"`
	Name       string          `json:"name" yaml:"name" binding:"required,max=200" validate:"required,max=200"`
	Category   string          `json:"category,omitempty" yaml:"category,omitempty"`
	UOM        string          `json:"uom,omitempty" yaml:"uom,omitempty"`
	InitialQty decimal.Decimal `json:"initialQty" yaml:"initialQty"`
	UnitCost   decimal.Decimal `json:"unitCost" yaml:"unitCost"`
}

// OpeningPositionRequest is the one-time bootstrap payload, accepted as JSON
// over HTTP or as YAML by the import command.
type OpeningPositionRequest struct {
	Date            *string                     `json:"date,omitempty" yaml:"date,omitempty" binding:"omitempty,datetime=2006-01-02" validate:"omitempty,datetime=2006-01-02"`
	Narration       string                      `json:"narration,omitempty" yaml:"narration,omitempty"`
	OpeningBalances []OpeningBalanceLineRequest `json:"openingBalances" yaml:"openingBalances" binding:"required,min=1,dive" validate:"required,min=1,dive"`
	Items           []OpeningStockItemRequest   `json:"items,omitempty" yaml:"items,omitempty" binding:"omitempty,dive" validate:"omitempty,dive"`
}

// OpeningPositionResponse summarises an accepted opening position.
type OpeningPositionResponse struct {
	VoucherID          string          `json:"voucherId"`
	VoucherNumber      string          `json:"voucherNumber"`
	VoucherDate        string          `json:"voucherDate"`
	LedgerCount        int             `json:"ledgerCount"`
	StockValue         decimal.Decimal `json:"stockValue"`
	DebitTotal         decimal.Decimal `json:"debitTotal"`
	CreditTotal        decimal.Decimal `json:"creditTotal"`
	RoundingAdjustment decimal.Decimal `json:"roundingAdjustment"`
}

// ToOpeningPosition converts the request into the domain payload.
func (r OpeningPositionRequest) ToOpeningPosition(businessID, actorID string) (domain.OpeningPosition, error) {
	date, err := ParseOptionalDate("date", r.Date)
	if err != nil {
		return domain.OpeningPosition{}, err
	}
	op := domain.OpeningPosition{
		BusinessID: businessID,
		Date:       date,
		Narration:  r.Narration,
		ActorID:    actorID,
		Lines:      make([]domain.OpeningBalanceLine, len(r.OpeningBalances)),
		Items:      make([]domain.OpeningStockItem, len(r.Items)),
	}
	for i, l := range r.OpeningBalances {
		op.Lines[i] = domain.OpeningBalanceLine{
			LedgerName: strings.TrimSpace(l.LedgerName),
			GroupName:  strings.TrimSpace(l.Group),
			EntryType:  domain.EntryType(strings.ToUpper(l.DrCr)),
			Amount:     l.Amount,
		}
	}
	for i, it := range r.Items {
		op.Items[i] = domain.OpeningStockItem{
			SKU:      strings.TrimSpace(it.SKU),
			Name:     strings.TrimSpace(it.Name),
			Category: it.Category,
			UOM:      it.UOM,
			Quantity: it.InitialQty,
			UnitCost: it.UnitCost,
		}
	}
	return op, nil
}

func ToOpeningPositionResponse(r domain.OpeningPositionResult) OpeningPositionResponse {
	return OpeningPositionResponse{
		VoucherID:          r.VoucherID,
		VoucherNumber:      r.VoucherNumber,
		VoucherDate:        r.VoucherDate.Format(domain.DateLayout),
		LedgerCount:        r.LedgerCount,
		StockValue:         r.StockValue,
		DebitTotal:         r.DebitTotal,
		CreditTotal:        r.CreditTotal,
		RoundingAdjustment: r.RoundingAdjustment,
	}
}
