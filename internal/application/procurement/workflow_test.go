package procurement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

// ── Flujo completo PR → PO → recepción ───────────────────────────────────────

func TestWorkflow_ConvertOrderReceive(t *testing.T) {
	ctx := context.Background()
	s, _, m := seeded(t)

	pr := addRequisition(t, s, line("P1", 20, "2.00"))
	assert.Equal(t, entity.RequisitionPending, pr.Status)
	assert.Equal(t, "PR-0001", pr.ReqNumber)

	po, err := s.ConvertToOrder(ctx, pr.ID, "S1")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDraft, po.Status)
	assert.True(t, decimal.RequireFromString("40.00").Equal(po.TotalAmount), "total = 20 × 2.00")
	assert.Equal(t, pr.ID, po.OriginalRequisitionID)
	assert.Equal(t, "PO-0001", po.OrderNumber)
	require.NotNil(t, po.DateExpected)
	assert.Equal(t, fixedNow.AddDate(0, 0, 3), *po.DateExpected)

	got, ok := s.Requisition(pr.ID)
	require.True(t, ok)
	assert.Equal(t, entity.RequisitionConverted, got.Status)

	_, err = s.SetOrderStatus(ctx, po.ID, entity.OrderOrdered)
	require.NoError(t, err)
	p1, _ := s.Product("P1")
	assert.Equal(t, 5, p1.StockLevel, "ORDERED no mueve stock")

	_, err = s.SetOrderStatus(ctx, po.ID, entity.OrderReceived)
	require.NoError(t, err)
	p1, _ = s.Product("P1")
	assert.Equal(t, 25, p1.StockLevel)

	// Re-recibir no vuelve a sumar.
	again, err := s.ReceiveOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderReceived, again.Status)
	p1, _ = s.Product("P1")
	assert.Equal(t, 25, p1.StockLevel, "la recepción se concilia una sola vez")

	assert.Equal(t, 1, m.created)
	assert.Equal(t, []string{"ORDERED", "RECEIVED"}, m.statuses)
}

// ── Conversión ───────────────────────────────────────────────────────────────

func TestConvertToOrder_Errors(t *testing.T) {
	ctx := context.Background()
	s, _, _ := seeded(t)
	pr := addRequisition(t, s, line("P1", 1, "2.00"))

	_, err := s.ConvertToOrder(ctx, "no-existe", "S1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = s.ConvertToOrder(ctx, pr.ID, "  ")
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = s.ConvertToOrder(ctx, pr.ID, "S1")
	require.NoError(t, err)

	_, err = s.ConvertToOrder(ctx, pr.ID, "S1")
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "una PR se convierte a lo sumo una vez")
	assert.Len(t, s.PurchaseOrders(), 1)
}

func TestConvertToOrder_RejectedRequisition(t *testing.T) {
	ctx := context.Background()
	s, _, _ := seeded(t)
	pr := addRequisition(t, s, line("P1", 1, "2.00"))

	rejected, err := s.RejectRequisition(ctx, pr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RequisitionRejected, rejected.Status)

	_, err = s.ConvertToOrder(ctx, pr.ID, "S1")
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	_, err = s.RejectRequisition(ctx, pr.ID)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
	assert.Empty(t, s.PurchaseOrders())
}

func TestConvertToOrder_UnknownSupplierAllowed(t *testing.T) {
	s, _, _ := seeded(t)
	pr := addRequisition(t, s, line("P1", 2, "2.00"))

	po, err := s.ConvertToOrder(context.Background(), pr.ID, "fantasma")
	require.NoError(t, err)
	assert.Equal(t, "fantasma", po.SupplierID)
	assert.Nil(t, po.DateExpected, "sin proveedor no hay fecha esperada")
}

func TestConvertToOrder_PriceSnapshot(t *testing.T) {
	ctx := context.Background()
	s, _, _ := seeded(t)
	pr := addRequisition(t, s, line("P1", 4, "2.00"))
	po, err := s.ConvertToOrder(ctx, pr.ID, "S1")
	require.NoError(t, err)

	p1, _ := s.Product("P1")
	p1.UnitPrice = decimal.RequireFromString("9.99")
	_, err = s.UpdateProduct(ctx, p1)
	require.NoError(t, err)

	stored, ok := s.PurchaseOrder(po.ID)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("8.00").Equal(stored.TotalAmount))
	assert.True(t, decimal.RequireFromString("2.00").Equal(stored.Items[0].UnitPrice), "el precio de la línea no se refresca")
}

// ── Transiciones de PO ───────────────────────────────────────────────────────

func TestSetOrderStatus_IllegalTransitions(t *testing.T) {
	ctx := context.Background()
	s, _, _ := seeded(t)
	pr := addRequisition(t, s, line("P1", 3, "2.00"))
	po, err := s.ConvertToOrder(ctx, pr.ID, "S1")
	require.NoError(t, err)

	_, err = s.SetOrderStatus(ctx, po.ID, entity.OrderReceived)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "DRAFT no salta a RECEIVED")
	p1, _ := s.Product("P1")
	assert.Equal(t, 5, p1.StockLevel)

	_, err = s.SetOrderStatus(ctx, "no-existe", entity.OrderOrdered)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = s.SetOrderStatus(ctx, po.ID, entity.OrderOrdered)
	require.NoError(t, err)
	_, err = s.SetOrderStatus(ctx, po.ID, entity.OrderDraft)
	assert.True(t, errors.Is(err, domain.ErrInvalidTransition), "no hay regreso a DRAFT")
}

func TestReceive_SkipsUnknownProducts(t *testing.T) {
	ctx := context.Background()
	s, _, m := seeded(t)
	pr := addRequisition(t, s, line("P1", 10, "2.00"), line("P-borrado", 7, "1.00"))
	po, err := s.ConvertToOrder(ctx, pr.ID, "S1")
	require.NoError(t, err)
	_, err = s.SetOrderStatus(ctx, po.ID, entity.OrderOrdered)
	require.NoError(t, err)

	received, err := s.ReceiveOrder(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderReceived, received.Status)

	p1, _ := s.Product("P1")
	assert.Equal(t, 15, p1.StockLevel)
	assert.Equal(t, fixedNow, p1.LastUpdated)
	assert.Equal(t, 1, m.skipped)
	assert.Len(t, s.Products(), 1, "no se crean productos en la recepción")
}

// Conservación: el stock final es el inicial más lo recibido.
func TestReceive_Conservation(t *testing.T) {
	ctx := context.Background()
	s, _, _ := seeded(t)
	quantities := []int{3, 8, 12}
	for _, q := range quantities {
		pr := addRequisition(t, s, line("P1", q, "2.00"))
		po, err := s.ConvertToOrder(ctx, pr.ID, "S1")
		require.NoError(t, err)
		_, err = s.SetOrderStatus(ctx, po.ID, entity.OrderOrdered)
		require.NoError(t, err)
		_, err = s.SetOrderStatus(ctx, po.ID, entity.OrderReceived)
		require.NoError(t, err)
	}
	p1, _ := s.Product("P1")
	assert.Equal(t, 5+3+8+12, p1.StockLevel)
}

// ── Requisiciones ────────────────────────────────────────────────────────────

func TestAddRequisitions_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	s, _, _ := seeded(t)

	_, err := s.AddRequisitions(ctx, []entity.PurchaseRequisition{
		{Items: []entity.LineItem{line("P1", 1, "2.00")}},
		{Items: nil},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, s.Requisitions(), "un lote inválido no agrega nada")

	_, err = s.AddRequisitions(ctx, []entity.PurchaseRequisition{
		{Items: []entity.LineItem{line("P1", 0, "2.00")}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "cantidad debe ser positiva")

	added, err := s.AddRequisitions(ctx, []entity.PurchaseRequisition{
		{Items: []entity.LineItem{line("P1", 1, "2.00")}, Status: entity.RequisitionConverted},
		{Items: []entity.LineItem{line("P1", 2, "2.00")}},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	for _, r := range added {
		assert.Equal(t, entity.RequisitionPending, r.Status, "toda requisición nueva entra PENDING")
		assert.Equal(t, fixedNow, r.DateCreated)
	}
	assert.Equal(t, "PR-0001", added[0].ReqNumber)
	assert.Equal(t, "PR-0002", added[1].ReqNumber)
}

// ── Persistencia ─────────────────────────────────────────────────────────────

func TestPersistenceFailure_LeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s, db, m := seeded(t)
	pr := addRequisition(t, s, line("P1", 20, "2.00"))

	boom := errors.New("disco lleno")
	db.FailWrites(boom)

	_, err := s.ConvertToOrder(ctx, pr.ID, "S1")
	assert.ErrorIs(t, err, boom)

	got, _ := s.Requisition(pr.ID)
	assert.Equal(t, entity.RequisitionPending, got.Status, "la PR sigue PENDING")
	assert.Empty(t, s.PurchaseOrders())
	assert.Zero(t, m.created)

	db.FailWrites(nil)
	po, err := s.ConvertToOrder(ctx, pr.ID, "S1")
	require.NoError(t, err)
	assert.Equal(t, "PO-0001", po.OrderNumber, "el número no se consume en un intento fallido")
}
