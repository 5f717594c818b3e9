// Package inventory contiene el libro de stock: funciones puras, de solo lectura,
// que derivan métricas del conjunto de productos. Sin efectos ni errores;
// una entrada vacía produce agregados en cero.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

// CategoryBreakdown conteo y valor agregado de una categoría.
type CategoryBreakdown struct {
	Category string
	Count    int
	Value    decimal.Decimal
}

// ActiveProducts filtra los INACTIVE; todos los agregados financieros deben partir de aquí.
func ActiveProducts(products []entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	return out
}

// TotalValue Σ stockLevel × unitPrice.
func TotalValue(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.StockValue())
	}
	return total
}

// LowStockCount productos con stockLevel ≤ reorderPoint.
func LowStockCount(products []entity.Product) int {
	n := 0
	for _, p := range products {
		if p.IsLowStock() {
			n++
		}
	}
	return n
}

// AtRisk productos activos con stockLevel ≤ 2 × reorderPoint (selección para el análisis).
func AtRisk(products []entity.Product) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range products {
		if p.IsActive() && p.IsAtRisk() {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory agrupa por categoría en el orden de primera aparición.
func ByCategory(products []entity.Product) []CategoryBreakdown {
	idx := make(map[string]int)
	out := make([]CategoryBreakdown, 0)
	for _, p := range products {
		i, ok := idx[p.Category]
		if !ok {
			i = len(out)
			idx[p.Category] = i
			out = append(out, CategoryBreakdown{Category: p.Category, Value: decimal.Zero})
		}
		out[i].Count++
		out[i].Value = out[i].Value.Add(p.StockValue())
	}
	return out
}
