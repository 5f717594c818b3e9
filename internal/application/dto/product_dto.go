package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Status vacío = ACTIVE.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	StockLevel   int             `json:"stock_level"`
	ReorderPoint int             `json:"reorder_point"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplierID   string          `json:"supplier_id"`
	Status       string          `json:"status"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	SKU          *string          `json:"sku"`
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	StockLevel   *int             `json:"stock_level"`
	ReorderPoint *int             `json:"reorder_point"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	SupplierID   *string          `json:"supplier_id"`
	Status       *string          `json:"status"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	StockLevel   int             `json:"stock_level"`
	ReorderPoint int             `json:"reorder_point"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	SupplierID   string          `json:"supplier_id"`
	Status       string          `json:"status"`
	LowStock     bool            `json:"low_stock"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// SeedProduct producto de una siembra. ID opcional (se genera si falta).
type SeedProduct struct {
	ID string `json:"id"`
	CreateProductRequest
}

// SeedSupplier proveedor de una siembra. ID opcional (se genera si falta).
type SeedSupplier struct {
	ID string `json:"id"`
	CreateSupplierRequest
}

// SeedRequest reemplazo completo de productos y proveedores.
type SeedRequest struct {
	Products  []SeedProduct  `json:"products"`
	Suppliers []SeedSupplier `json:"suppliers"`
}

// SeedResponse resultado de una siembra.
type SeedResponse struct {
	Products  int `json:"products"`
	Suppliers int `json:"suppliers"`
}
