package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemDTO línea de PR o PO. UnitPrice es el precio congelado de la línea.
type LineItemDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// RequisitionResponse salida de una requisición.
type RequisitionResponse struct {
	ID                  string          `json:"id"`
	ReqNumber           string          `json:"req_number"`
	SuggestedSupplierID string          `json:"suggested_supplier_id,omitempty"`
	Status              string          `json:"status"`
	DateCreated         time.Time       `json:"date_created"`
	Reason              string          `json:"reason"`
	Items               []LineItemDTO   `json:"items"`
	EstimatedTotal      decimal.Decimal `json:"estimated_total"`
}

// ConvertRequisitionRequest cuerpo de POST /api/requisitions/:id/convert.
type ConvertRequisitionRequest struct {
	SupplierID string `json:"supplier_id"`
}

// DefaultSupplierResponse proveedor preseleccionado para convertir una requisición.
// Supplier es nil si no hay proveedores.
type DefaultSupplierResponse struct {
	Supplier *SupplierResponse `json:"supplier"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID                    string          `json:"id"`
	OrderNumber           string          `json:"order_number"`
	SupplierID            string          `json:"supplier_id"`
	SupplierName          string          `json:"supplier_name"`
	Status                string          `json:"status"`
	DateCreated           time.Time       `json:"date_created"`
	DateExpected          *time.Time      `json:"date_expected,omitempty"`
	Items                 []LineItemDTO   `json:"items"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	OriginalRequisitionID string          `json:"original_requisition_id,omitempty"`
}

// UpdateOrderStatusRequest cuerpo de PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
