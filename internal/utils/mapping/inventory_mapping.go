package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		BusinessID:  d.BusinessID,
		Name:        d.Name,
		SKU:         d.SKU,
		Category:    optionalString(d.Category),
		UOM:         optionalString(d.UOM),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:   m.ProductID,
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		SKU:         m.SKU,
		Category:    derefString(m.Category),
		UOM:         derefString(m.UOM),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInventoryValuation converts a domain InventoryValuation to a model InventoryValuation
func ToModelInventoryValuation(d domain.InventoryValuation) models.InventoryValuation {
	return models.InventoryValuation{
		ValuationID:   d.ValuationID,
		BusinessID:    d.BusinessID,
		ProductID:     d.ProductID,
		VoucherID:     d.VoucherID,
		ValuationDate: d.ValuationDate,
		Quantity:      d.Quantity,
		UnitCost:      d.UnitCost,
		TotalValue:    d.TotalValue,
	}
}
