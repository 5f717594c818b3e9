// Package analytics contiene los casos de uso de reportes del tablero.
package analytics

import (
	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
	domaininv "github.com/jhoicas/nexus-procurement/internal/domain/inventory"
)

// Snapshot lo que el tablero lee del store de compras.
type Snapshot interface {
	Products() []entity.Product
	Requisitions() []entity.PurchaseRequisition
	PurchaseOrders() []entity.PurchaseOrder
}

// DashboardUseCase arma el resumen del tablero.
//
// Fuente de datos: el store en memoria (lecturas de copia, sin acceso a persistencia).
// Los agregados financieros excluyen los productos INACTIVE.
type DashboardUseCase struct {
	store Snapshot
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(store Snapshot) *DashboardUseCase {
	return &DashboardUseCase{store: store}
}

// Summary construye el DashboardSummaryDTO.
func (uc *DashboardUseCase) Summary() dto.DashboardSummaryDTO {
	active := domaininv.ActiveProducts(uc.store.Products())

	// ── Inventario ────────────────────────────────────────────────────────────
	breakdown := domaininv.ByCategory(active)
	categories := make([]dto.CategoryDTO, 0, len(breakdown))
	for _, c := range breakdown {
		categories = append(categories, dto.CategoryDTO{Category: c.Category, Count: c.Count, Value: c.Value})
	}

	out := dto.DashboardSummaryDTO{
		TotalValue:     domaininv.TotalValue(active),
		ActiveProducts: len(active),
		LowStockCount:  domaininv.LowStockCount(active),
		Categories:     categories,
	}

	// ── Compras ───────────────────────────────────────────────────────────────
	for _, o := range uc.store.PurchaseOrders() {
		if o.IsPending() {
			out.PendingOrders++
		} else {
			out.ReceivedOrders++
		}
	}
	for _, r := range uc.store.Requisitions() {
		if r.Status == entity.RequisitionPending {
			out.PendingRequisitions++
		}
	}
	return out
}
