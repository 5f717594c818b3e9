// Package collections serializa las cuatro colecciones al formato de blob persistido
// (JSON camelCase, compatible con los datos que guardaba la interfaz web) y aplica
// la migración de carga. Lo comparten los adaptadores de memoria y PostgreSQL.
package collections

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

type productRecord struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	StockLevel   int             `json:"stockLevel"`
	ReorderPoint int             `json:"reorderPoint"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	SupplierID   string          `json:"supplierId"`
	LastUpdated  time.Time       `json:"lastUpdated"`
	Status       string          `json:"status,omitempty"`
}

type supplierRecord struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	LeadTimeDays int    `json:"leadTimeDays"`
}

type lineItemRecord struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type requisitionRecord struct {
	ID                  string           `json:"id"`
	ReqNumber           string           `json:"reqNumber"`
	SuggestedSupplierID string           `json:"suggestedSupplierId,omitempty"`
	Status              string           `json:"status"`
	DateCreated         time.Time        `json:"dateCreated"`
	Items               []lineItemRecord `json:"items"`
	Reason              string           `json:"reason"`
}

type orderRecord struct {
	ID                    string           `json:"id"`
	OrderNumber           string           `json:"orderNumber"`
	SupplierID            string           `json:"supplierId"`
	Status                string           `json:"status"`
	DateCreated           time.Time        `json:"dateCreated"`
	DateExpected          *time.Time       `json:"dateExpected,omitempty"`
	Items                 []lineItemRecord `json:"items"`
	TotalAmount           decimal.Decimal  `json:"totalAmount"`
	OriginalRequisitionID string           `json:"originalRequisitionId,omitempty"`
}

// empty indica un blob ausente: colección vacía.
func empty(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// ── Productos ────────────────────────────────────────────────────────────────

// EncodeProducts serializa la colección de productos.
func EncodeProducts(products []entity.Product) ([]byte, error) {
	recs := make([]productRecord, 0, len(products))
	for _, p := range products {
		recs = append(recs, productRecord{
			ID: p.ID, SKU: p.SKU, Name: p.Name, Category: p.Category,
			StockLevel: p.StockLevel, ReorderPoint: p.ReorderPoint,
			UnitPrice: p.UnitPrice, SupplierID: p.SupplierID,
			LastUpdated: p.LastUpdated, Status: string(p.Status),
		})
	}
	return json.Marshal(recs)
}

// DecodeProducts deserializa productos. Migración: un producto sin estado queda ACTIVE.
func DecodeProducts(data []byte) ([]entity.Product, error) {
	if empty(data) {
		return nil, nil
	}
	var recs []productRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decodificar productos: %w", err)
	}
	out := make([]entity.Product, 0, len(recs))
	for _, r := range recs {
		status := entity.ProductStatus(r.Status)
		if status == "" {
			status = entity.ProductStatusActive
		}
		out = append(out, entity.Product{
			ID: r.ID, SKU: r.SKU, Name: r.Name, Category: r.Category,
			StockLevel: r.StockLevel, ReorderPoint: r.ReorderPoint,
			UnitPrice: r.UnitPrice, SupplierID: r.SupplierID,
			LastUpdated: r.LastUpdated, Status: status,
		})
	}
	return out, nil
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// EncodeSuppliers serializa la colección de proveedores.
func EncodeSuppliers(suppliers []entity.Supplier) ([]byte, error) {
	recs := make([]supplierRecord, 0, len(suppliers))
	for _, s := range suppliers {
		recs = append(recs, supplierRecord(s))
	}
	return json.Marshal(recs)
}

// DecodeSuppliers deserializa proveedores.
func DecodeSuppliers(data []byte) ([]entity.Supplier, error) {
	if empty(data) {
		return nil, nil
	}
	var recs []supplierRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decodificar proveedores: %w", err)
	}
	out := make([]entity.Supplier, 0, len(recs))
	for _, r := range recs {
		out = append(out, entity.Supplier(r))
	}
	return out, nil
}

// ── Requisiciones ────────────────────────────────────────────────────────────

// EncodeRequisitions serializa la colección de requisiciones.
func EncodeRequisitions(reqs []entity.PurchaseRequisition) ([]byte, error) {
	recs := make([]requisitionRecord, 0, len(reqs))
	for _, r := range reqs {
		recs = append(recs, requisitionRecord{
			ID: r.ID, ReqNumber: r.ReqNumber, SuggestedSupplierID: r.SuggestedSupplierID,
			Status: string(r.Status), DateCreated: r.DateCreated,
			Items: encodeItems(r.Items), Reason: r.Reason,
		})
	}
	return json.Marshal(recs)
}

// DecodeRequisitions deserializa requisiciones; un estado desconocido es un error de datos.
func DecodeRequisitions(data []byte) ([]entity.PurchaseRequisition, error) {
	if empty(data) {
		return nil, nil
	}
	var recs []requisitionRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decodificar requisiciones: %w", err)
	}
	out := make([]entity.PurchaseRequisition, 0, len(recs))
	for _, r := range recs {
		status, err := entity.ParseRequisitionStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("requisición %s: %w", r.ID, err)
		}
		out = append(out, entity.PurchaseRequisition{
			ID: r.ID, ReqNumber: r.ReqNumber, SuggestedSupplierID: r.SuggestedSupplierID,
			Status: status, DateCreated: r.DateCreated,
			Items: decodeItems(r.Items), Reason: r.Reason,
		})
	}
	return out, nil
}

// ── Órdenes ──────────────────────────────────────────────────────────────────

// EncodePurchaseOrders serializa la colección de órdenes.
func EncodePurchaseOrders(orders []entity.PurchaseOrder) ([]byte, error) {
	recs := make([]orderRecord, 0, len(orders))
	for _, o := range orders {
		recs = append(recs, orderRecord{
			ID: o.ID, OrderNumber: o.OrderNumber, SupplierID: o.SupplierID,
			Status: string(o.Status), DateCreated: o.DateCreated, DateExpected: o.DateExpected,
			Items: encodeItems(o.Items), TotalAmount: o.TotalAmount,
			OriginalRequisitionID: o.OriginalRequisitionID,
		})
	}
	return json.Marshal(recs)
}

// DecodePurchaseOrders deserializa órdenes. TotalAmount se conserva tal cual: nunca se recalcula.
func DecodePurchaseOrders(data []byte) ([]entity.PurchaseOrder, error) {
	if empty(data) {
		return nil, nil
	}
	var recs []orderRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("decodificar órdenes: %w", err)
	}
	out := make([]entity.PurchaseOrder, 0, len(recs))
	for _, r := range recs {
		status, err := entity.ParseOrderStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("orden %s: %w", r.ID, err)
		}
		out = append(out, entity.PurchaseOrder{
			ID: r.ID, OrderNumber: r.OrderNumber, SupplierID: r.SupplierID,
			Status: status, DateCreated: r.DateCreated, DateExpected: r.DateExpected,
			Items: decodeItems(r.Items), TotalAmount: r.TotalAmount,
			OriginalRequisitionID: r.OriginalRequisitionID,
		})
	}
	return out, nil
}

func encodeItems(items []entity.LineItem) []lineItemRecord {
	out := make([]lineItemRecord, 0, len(items))
	for _, it := range items {
		out = append(out, lineItemRecord(it))
	}
	return out
}

func decodeItems(recs []lineItemRecord) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(recs))
	for _, r := range recs {
		out = append(out, entity.LineItem(r))
	}
	return out
}
