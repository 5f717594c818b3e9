package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-procurement/internal/domain"
)

// ProductStatus estado comercial del producto. Los INACTIVE se excluyen de
// todos los agregados financieros y del análisis de reposición.
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

// Valid indica si el estado es uno de los definidos.
func (s ProductStatus) Valid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product representa un SKU del inventario. Es la única fuente de verdad del stock actual;
// las líneas de PR/PO guardan copias de precio y cantidad, no referencias vivas.
type Product struct {
	ID           string
	SKU          string // único, visible para el usuario
	Name         string
	Category     string
	StockLevel   int
	ReorderPoint int
	UnitPrice    decimal.Decimal
	SupplierID   string // puede apuntar a un proveedor inexistente
	LastUpdated  time.Time
	Status       ProductStatus
}

// IsActive todo lo que no sea INACTIVE cuenta como activo (incluido un estado vacío).
func (p Product) IsActive() bool {
	return p.Status != ProductStatusInactive
}

// IsLowStock stock en o por debajo del punto de reorden.
func (p Product) IsLowStock() bool {
	return p.StockLevel <= p.ReorderPoint
}

// IsAtRisk stock en o por debajo del doble del punto de reorden (candidato a análisis).
func (p Product) IsAtRisk() bool {
	return p.StockLevel <= 2*p.ReorderPoint
}

// StockValue stockLevel × unitPrice.
func (p Product) StockValue() decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.StockLevel)))
}

// Validate comprueba los invariantes del registro.
func (p Product) Validate() error {
	if strings.TrimSpace(p.SKU) == "" || strings.TrimSpace(p.Name) == "" {
		return domain.ErrInvalidInput
	}
	if p.StockLevel < 0 || p.ReorderPoint < 0 {
		return domain.ErrInvalidInput
	}
	if p.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	if !p.Status.Valid() {
		return domain.ErrInvalidInput
	}
	return nil
}
