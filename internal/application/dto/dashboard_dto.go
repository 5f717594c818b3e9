package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Los agregados de inventario consideran solo productos ACTIVE: TotalValue = Σ stock × precio,
// LowStockCount cuenta stock ≤ punto de reorden. PendingOrders son las órdenes no RECEIVED.
// Categories respeta el orden de primera aparición.
type DashboardSummaryDTO struct {
	TotalValue          decimal.Decimal `json:"total_value"`
	ActiveProducts      int             `json:"active_products"`
	LowStockCount       int             `json:"low_stock_count"`
	PendingOrders       int             `json:"pending_orders"`
	ReceivedOrders      int             `json:"received_orders"`
	PendingRequisitions int             `json:"pending_requisitions"`
	Categories          []CategoryDTO   `json:"categories"`
}

// CategoryDTO conteo y valor por categoría.
type CategoryDTO struct {
	Category string          `json:"category"`
	Count    int             `json:"count"`
	Value    decimal.Decimal `json:"value"`
}
