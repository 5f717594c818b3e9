package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

// PurchasingUseCase expone el flujo requisición → orden → recepción a la capa HTTP.
type PurchasingUseCase struct {
	store *procurement.Store
	pdf   ports.PurchaseOrderDocument
}

// NewPurchasingUseCase construye el caso de uso. pdf puede ser nil si no se sirven documentos.
func NewPurchasingUseCase(store *procurement.Store, pdf ports.PurchaseOrderDocument) *PurchasingUseCase {
	return &PurchasingUseCase{store: store, pdf: pdf}
}

// ListRequisitions lista las requisiciones; status vacío = todas.
func (uc *PurchasingUseCase) ListRequisitions(status string) ([]dto.RequisitionResponse, error) {
	var filter entity.RequisitionStatus
	if s := strings.ToUpper(strings.TrimSpace(status)); s != "" {
		parsed, err := entity.ParseRequisitionStatus(s)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
		}
		filter = parsed
	}
	names := productNames(uc.store.Products())
	reqs := uc.store.Requisitions()
	out := make([]dto.RequisitionResponse, 0, len(reqs))
	for _, r := range reqs {
		if filter != "" && r.Status != filter {
			continue
		}
		out = append(out, ToRequisitionResponse(r, names))
	}
	return out, nil
}

// Convert convierte una requisición PENDING en una orden DRAFT.
func (uc *PurchasingUseCase) Convert(ctx context.Context, prID string, in dto.ConvertRequisitionRequest) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.store.ConvertToOrder(ctx, prID, in.SupplierID)
	if err != nil {
		return nil, err
	}
	out := uc.orderResponse(po, productNames(uc.store.Products()))
	return &out, nil
}

// Reject PENDING → REJECTED.
func (uc *PurchasingUseCase) Reject(ctx context.Context, prID string) (*dto.RequisitionResponse, error) {
	pr, err := uc.store.RejectRequisition(ctx, prID)
	if err != nil {
		return nil, err
	}
	out := ToRequisitionResponse(pr, productNames(uc.store.Products()))
	return &out, nil
}

// DefaultSupplier proveedor preseleccionado en la conversión: el sugerido si existe, si no el primero.
func (uc *PurchasingUseCase) DefaultSupplier(prID string) (*dto.DefaultSupplierResponse, error) {
	sup, ok, err := uc.store.DefaultSupplierFor(prID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.DefaultSupplierResponse{}, nil
	}
	resp := toSupplierResponse(sup)
	return &dto.DefaultSupplierResponse{Supplier: &resp}, nil
}

// ListOrders lista las órdenes con el nombre del proveedor resuelto ("" si cuelga).
func (uc *PurchasingUseCase) ListOrders() []dto.PurchaseOrderResponse {
	names := productNames(uc.store.Products())
	orders := uc.store.PurchaseOrders()
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, uc.orderResponse(o, names))
	}
	return out
}

// SetOrderStatus aplica la transición pedida. Un estado desconocido es ErrInvalidInput.
func (uc *PurchasingUseCase) SetOrderStatus(ctx context.Context, poID string, in dto.UpdateOrderStatusRequest) (*dto.PurchaseOrderResponse, error) {
	next, err := entity.ParseOrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	po, err := uc.store.SetOrderStatus(ctx, poID, next)
	if err != nil {
		return nil, err
	}
	out := uc.orderResponse(po, productNames(uc.store.Products()))
	return &out, nil
}

// OrderPDF genera el PDF de la orden con sus precios congelados.
// Devuelve también el número de orden para nombrar el archivo.
func (uc *PurchasingUseCase) OrderPDF(ctx context.Context, poID string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado: %w", domain.ErrConflict)
	}
	po, ok := uc.store.PurchaseOrder(poID)
	if !ok {
		return nil, "", fmt.Errorf("orden %s: %w", poID, domain.ErrNotFound)
	}
	var supplier *entity.Supplier
	if s, found := uc.store.Supplier(po.SupplierID); found {
		supplier = &s
	}
	data, err := uc.pdf.GeneratePurchaseOrderPDF(ctx, po, supplier, productNames(uc.store.Products()))
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF de %s: %w", po.OrderNumber, err)
	}
	return data, po.OrderNumber, nil
}

func (uc *PurchasingUseCase) orderResponse(po entity.PurchaseOrder, names map[string]string) dto.PurchaseOrderResponse {
	supplierName := ""
	if s, ok := uc.store.Supplier(po.SupplierID); ok {
		supplierName = s.Name
	}
	return toOrderResponse(po, supplierName, names)
}
