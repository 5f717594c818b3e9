package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/nexus-procurement/internal/domain"
)

// Supplier proveedor. Referenciado por Product.SupplierID, PurchaseOrder.SupplierID y
// PurchaseRequisition.SuggestedSupplierID; las dos últimas referencias pueden quedar colgando.
type Supplier struct {
	ID           string
	Name         string
	ContactEmail string
	LeadTimeDays int
}

// Validate comprueba nombre y lead time (mínimo 1 día).
func (s Supplier) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return domain.ErrInvalidInput
	}
	if s.LeadTimeDays < 1 {
		return domain.ErrInvalidInput
	}
	return nil
}

// ExpectedDelivery fecha estimada de entrega para un pedido emitido en from.
func (s Supplier) ExpectedDelivery(from time.Time) time.Time {
	return from.AddDate(0, 0, s.LeadTimeDays)
}
