package procurement

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

func newUUID() string { return uuid.New().String() }

// ConvertToOrder convierte una requisición PENDING en una orden DRAFT para supplierID.
//
// La requisición pasa a CONVERTED (irreversible) y se crea exactamente una orden con las
// líneas copiadas tal cual, incluido el precio congelado: no se refresca desde el producto.
// TotalAmount = Σ quantity × unitPrice, calculado una vez aquí.
//
// Errores: ErrNotFound si prID no existe; ErrInvalidTransition si no está PENDING;
// ErrInvalidInput si supplierID está vacío o la requisición no tiene líneas.
// Un supplierID que no existe se permite, pero queda registrado en el log.
func (s *Store) ConvertToOrder(ctx context.Context, prID, supplierID string) (entity.PurchaseOrder, error) {
	supplierID = strings.TrimSpace(supplierID)
	if supplierID == "" {
		return entity.PurchaseOrder{}, domain.ErrInvalidInput
	}

	var created entity.PurchaseOrder
	err := s.apply(ctx, func(st *state) (dirty, error) {
		ri := st.requisitionIndex(prID)
		if ri < 0 {
			return 0, fmt.Errorf("requisición %s: %w", prID, domain.ErrNotFound)
		}
		pr := st.requisitions[ri]
		if !pr.Status.CanTransitionTo(entity.RequisitionConverted) {
			return 0, fmt.Errorf("requisición %s en estado %s: %w", pr.ReqNumber, pr.Status, domain.ErrInvalidTransition)
		}
		if len(pr.Items) == 0 {
			return 0, fmt.Errorf("requisición %s sin líneas: %w", pr.ReqNumber, domain.ErrInvalidInput)
		}

		now := s.now()
		po := entity.PurchaseOrder{
			ID:                    s.newID(),
			OrderNumber:           st.orderSeq.next(),
			SupplierID:            supplierID,
			Status:                entity.OrderDraft,
			DateCreated:           now,
			Items:                 entity.CloneItems(pr.Items),
			TotalAmount:           entity.SumItems(pr.Items),
			OriginalRequisitionID: pr.ID,
		}
		if si := st.supplierIndex(supplierID); si >= 0 {
			expected := st.suppliers[si].ExpectedDelivery(now)
			po.DateExpected = &expected
		} else {
			s.log.Warn().
				Str("requisition_id", pr.ID).
				Str("supplier_id", supplierID).
				Msg("conversión a proveedor inexistente")
		}

		pr.Status = entity.RequisitionConverted
		st.requisitions[ri] = pr
		st.orders = append(st.orders, po)
		created = po
		return dirtyRequisitions | dirtyOrders, nil
	})
	if err != nil {
		return entity.PurchaseOrder{}, err
	}

	s.metrics.OrderCreated()
	s.log.Info().
		Str("order_id", created.ID).
		Str("order_number", created.OrderNumber).
		Str("requisition_id", prID).
		Str("total", created.TotalAmount.StringFixed(2)).
		Msg("orden de compra creada")
	created.Items = entity.CloneItems(created.Items)
	return created, nil
}

// RejectRequisition PENDING → REJECTED (terminal).
func (s *Store) RejectRequisition(ctx context.Context, prID string) (entity.PurchaseRequisition, error) {
	var rejected entity.PurchaseRequisition
	err := s.apply(ctx, func(st *state) (dirty, error) {
		ri := st.requisitionIndex(prID)
		if ri < 0 {
			return 0, fmt.Errorf("requisición %s: %w", prID, domain.ErrNotFound)
		}
		pr := st.requisitions[ri]
		if !pr.Status.CanTransitionTo(entity.RequisitionRejected) {
			return 0, fmt.Errorf("requisición %s en estado %s: %w", pr.ReqNumber, pr.Status, domain.ErrInvalidTransition)
		}
		pr.Status = entity.RequisitionRejected
		st.requisitions[ri] = pr
		rejected = pr
		return dirtyRequisitions, nil
	})
	if err != nil {
		return entity.PurchaseRequisition{}, err
	}
	rejected.Items = entity.CloneItems(rejected.Items)
	return rejected, nil
}

// SetOrderStatus aplica una transición externa sobre una orden.
//
// Solo se permiten DRAFT→ORDERED y ORDERED→RECEIVED. Re-aplicar el estado actual es un no-op
// (sin conciliación). Al pasar a RECEIVED, y solo si el estado previo no era RECEIVED,
// se suma cada línea al stock del producto correspondiente: el stock se incrementa
// exactamente una vez por orden. Las líneas cuyo producto no existe se omiten y se registran.
func (s *Store) SetOrderStatus(ctx context.Context, poID string, next entity.OrderStatus) (entity.PurchaseOrder, error) {
	var (
		updated entity.PurchaseOrder
		changed bool
		skipped int
	)
	err := s.apply(ctx, func(st *state) (dirty, error) {
		oi := st.orderIndex(poID)
		if oi < 0 {
			return 0, fmt.Errorf("orden %s: %w", poID, domain.ErrNotFound)
		}
		po := st.orders[oi]
		if po.Status == next {
			updated = po
			return 0, nil
		}
		if !po.Status.CanTransitionTo(next) {
			return 0, fmt.Errorf("orden %s de %s a %s: %w", po.OrderNumber, po.Status, next, domain.ErrInvalidTransition)
		}

		d := dirtyOrders
		if po.Status != entity.OrderReceived && next == entity.OrderReceived {
			skipped = s.receive(st, po)
			d |= dirtyProducts
		}
		po.Status = next
		st.orders[oi] = po
		updated = po
		changed = true
		return d, nil
	})
	if err != nil {
		return entity.PurchaseOrder{}, err
	}

	if changed {
		s.metrics.OrderStatusChanged(string(next))
		for i := 0; i < skipped; i++ {
			s.metrics.ReceiptLineSkipped()
		}
		s.log.Info().
			Str("order_id", updated.ID).
			Str("order_number", updated.OrderNumber).
			Str("status", string(next)).
			Msg("estado de orden actualizado")
	}
	updated.Items = entity.CloneItems(updated.Items)
	return updated, nil
}

// ReceiveOrder atajo para la transición ORDERED → RECEIVED.
func (s *Store) ReceiveOrder(ctx context.Context, poID string) (entity.PurchaseOrder, error) {
	return s.SetOrderStatus(ctx, poID, entity.OrderReceived)
}

// receive concilia el stock de la copia de trabajo. Devuelve cuántas líneas se omitieron.
func (s *Store) receive(st *state, po entity.PurchaseOrder) int {
	now := s.now()
	skipped := 0
	for _, item := range po.Items {
		pi := st.productIndex(item.ProductID)
		if pi < 0 {
			skipped++
			s.log.Warn().
				Str("order_id", po.ID).
				Str("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("recepción parcial: línea sin producto, stock no incrementado")
			continue
		}
		p := st.products[pi]
		p.StockLevel += item.Quantity
		p.LastUpdated = now
		st.products[pi] = p
	}
	return skipped
}

// AddRequisitions agrega un lote de requisiciones nuevas de forma atómica: o entran todas o ninguna.
// El store asigna ID (si falta), número de pantalla y estado PENDING.
// Cada requisición debe tener al menos una línea con cantidad positiva.
func (s *Store) AddRequisitions(ctx context.Context, reqs []entity.PurchaseRequisition) ([]entity.PurchaseRequisition, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	for _, r := range reqs {
		if len(r.Items) == 0 {
			return nil, fmt.Errorf("requisición sin líneas: %w", domain.ErrInvalidInput)
		}
		for _, it := range r.Items {
			if it.Quantity <= 0 || it.ProductID == "" || it.UnitPrice.IsNegative() {
				return nil, fmt.Errorf("línea inválida: %w", domain.ErrInvalidInput)
			}
		}
	}

	added := make([]entity.PurchaseRequisition, 0, len(reqs))
	err := s.apply(ctx, func(st *state) (dirty, error) {
		now := s.now()
		for _, r := range reqs {
			if r.ID == "" {
				r.ID = s.newID()
			}
			if r.DateCreated.IsZero() {
				r.DateCreated = now
			}
			r.ReqNumber = st.reqSeq.next()
			r.Status = entity.RequisitionPending
			r.Items = entity.CloneItems(r.Items)
			st.requisitions = append(st.requisitions, r)
			added = append(added, r)
		}
		return dirtyRequisitions, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Int("count", len(added)).Msg("requisiciones agregadas")
	return added, nil
}
