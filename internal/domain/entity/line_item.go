package entity

import "github.com/shopspring/decimal"

// LineItem línea de PR/PO. UnitPrice es una foto del precio al momento de crear la línea:
// nunca se recalcula desde el Product vivo.
type LineItem struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal quantity × unitPrice.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// SumItems Σ quantity × unitPrice.
func SumItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// TotalQuantity Σ quantity.
func TotalQuantity(items []LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// CloneItems copia las líneas para que PR y PO no compartan el arreglo subyacente.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
