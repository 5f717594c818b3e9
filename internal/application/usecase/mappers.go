package usecase

import (
	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Category:     p.Category,
		StockLevel:   p.StockLevel,
		ReorderPoint: p.ReorderPoint,
		UnitPrice:    p.UnitPrice,
		SupplierID:   p.SupplierID,
		Status:       string(p.Status),
		LowStock:     p.IsLowStock(),
		LastUpdated:  p.LastUpdated,
	}
}

func toSupplierResponse(s entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:           s.ID,
		Name:         s.Name,
		ContactEmail: s.ContactEmail,
		LeadTimeDays: s.LeadTimeDays,
	}
}

func toLineItems(items []entity.LineItem, names map[string]string) []dto.LineItemDTO {
	out := make([]dto.LineItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LineItemDTO{
			ProductID:   it.ProductID,
			ProductName: names[it.ProductID],
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal(),
		})
	}
	return out
}

// ToRequisitionResponse mapea una requisición; names traduce productId → nombre (puede ser nil).
func ToRequisitionResponse(r entity.PurchaseRequisition, names map[string]string) dto.RequisitionResponse {
	return dto.RequisitionResponse{
		ID:                  r.ID,
		ReqNumber:           r.ReqNumber,
		SuggestedSupplierID: r.SuggestedSupplierID,
		Status:              string(r.Status),
		DateCreated:         r.DateCreated,
		Reason:              r.Reason,
		Items:               toLineItems(r.Items, names),
		EstimatedTotal:      r.EstimatedTotal(),
	}
}

func toOrderResponse(o entity.PurchaseOrder, supplierName string, names map[string]string) dto.PurchaseOrderResponse {
	return dto.PurchaseOrderResponse{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		SupplierID:            o.SupplierID,
		SupplierName:          supplierName,
		Status:                string(o.Status),
		DateCreated:           o.DateCreated,
		DateExpected:          o.DateExpected,
		Items:                 toLineItems(o.Items, names),
		TotalAmount:           o.TotalAmount,
		OriginalRequisitionID: o.OriginalRequisitionID,
	}
}

// productNames índice productId → nombre.
func productNames(products []entity.Product) map[string]string {
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}
