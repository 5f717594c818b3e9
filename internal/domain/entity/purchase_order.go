package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado de una orden de compra. Solo avanza: DRAFT → ORDERED → RECEIVED.
// No existe cancelación ni retroceso.
type OrderStatus string

const (
	OrderDraft    OrderStatus = "DRAFT"
	OrderOrdered  OrderStatus = "ORDERED"
	OrderReceived OrderStatus = "RECEIVED"
)

// ParseOrderStatus valida un estado recibido como texto.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderDraft, OrderOrdered, OrderReceived:
		return st, nil
	}
	return "", fmt.Errorf("estado de orden desconocido: %q", s)
}

// CanTransitionTo transiciones externas permitidas: DRAFT→ORDERED y ORDERED→RECEIVED.
// Re-aplicar el mismo estado no es una transición (lo resuelve el llamador como no-op).
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderDraft:
		return next == OrderOrdered
	case OrderOrdered:
		return next == OrderReceived
	}
	return false
}

// PurchaseOrder orden comprometida con un proveedor, derivada de una requisición.
// Items y TotalAmount se fijan al crear la orden y no se recalculan.
type PurchaseOrder struct {
	ID                    string
	OrderNumber           string
	SupplierID            string
	Status                OrderStatus
	DateCreated           time.Time
	DateExpected          *time.Time // nil si el proveedor no se resolvió al convertir
	Items                 []LineItem
	TotalAmount           decimal.Decimal
	OriginalRequisitionID string
}

// IsPending true mientras la mercancía no se haya recibido.
func (o PurchaseOrder) IsPending() bool {
	return o.Status != OrderReceived
}
