package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RequisitionStatus estado de una requisición de compra.
//
//	PENDING → CONVERTED
//	PENDING → REJECTED
//
// CONVERTED y REJECTED son terminales.
type RequisitionStatus string

const (
	RequisitionPending   RequisitionStatus = "PENDING"
	RequisitionConverted RequisitionStatus = "CONVERTED"
	RequisitionRejected  RequisitionStatus = "REJECTED"
)

// ParseRequisitionStatus valida un estado recibido como texto.
func ParseRequisitionStatus(s string) (RequisitionStatus, error) {
	switch st := RequisitionStatus(s); st {
	case RequisitionPending, RequisitionConverted, RequisitionRejected:
		return st, nil
	}
	return "", fmt.Errorf("estado de requisición desconocido: %q", s)
}

// IsTerminal true para CONVERTED y REJECTED.
func (s RequisitionStatus) IsTerminal() bool {
	return s == RequisitionConverted || s == RequisitionRejected
}

// CanTransitionTo solo PENDING tiene salidas.
func (s RequisitionStatus) CanTransitionTo(next RequisitionStatus) bool {
	return s == RequisitionPending && (next == RequisitionConverted || next == RequisitionRejected)
}

// PurchaseRequisition solicitud interna de compra pendiente de conversión.
// Items nunca está vacío en una requisición almacenada.
type PurchaseRequisition struct {
	ID                  string
	ReqNumber           string // identificador de pantalla, no garantiza unicidad
	SuggestedSupplierID string // opcional, no se valida contra los proveedores
	Status              RequisitionStatus
	DateCreated         time.Time
	Items               []LineItem
	Reason              string
}

// EstimatedTotal total estimado con los precios congelados en las líneas.
func (r PurchaseRequisition) EstimatedTotal() decimal.Decimal {
	return SumItems(r.Items)
}
