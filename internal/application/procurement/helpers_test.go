package procurement_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

// recordingMetrics cuenta las llamadas al puerto de métricas.
type recordingMetrics struct {
	created, skipped, ingested int
	statuses                   []string
}

func (m *recordingMetrics) OrderCreated() { m.created++ }
func (m *recordingMetrics) OrderStatusChanged(s string) { m.statuses = append(m.statuses, s) }
func (m *recordingMetrics) ReceiptLineSkipped() { m.skipped++ }
func (m *recordingMetrics) RequisitionsIngested(n int) { m.ingested += n }
func (m *recordingMetrics) AnalysisCompleted(string, time.Duration) {}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newStore(t *testing.T, db *memory.Database, m *recordingMetrics) *procurement.Store {
	t.Helper()
	if m == nil {
		m = &recordingMetrics{}
	}
	s := procurement.NewStore(db,
		procurement.WithClock(func() time.Time { return fixedNow }),
		procurement.WithIDGenerator(sequentialIDs()),
		procurement.WithMetrics(m),
	)
	require.NoError(t, s.Load(context.Background()))
	return s
}

// seeded store con P1 (stock 5, reorden 10, precio 2.00) y el proveedor S1 (lead time 3).
func seeded(t *testing.T) (*procurement.Store, *memory.Database, *recordingMetrics) {
	t.Helper()
	db := memory.NewDatabase()
	m := &recordingMetrics{}
	s := newStore(t, db, m)
	err := s.SeedData(context.Background(),
		[]entity.Product{{
			ID: "P1", SKU: "SKU-1", Name: "Tornillo", Category: "Ferretería",
			StockLevel: 5, ReorderPoint: 10, UnitPrice: decimal.RequireFromString("2.00"), SupplierID: "S1",
		}},
		[]entity.Supplier{{ID: "S1", Name: "Acme", ContactEmail: "ventas@acme.test", LeadTimeDays: 3}},
	)
	require.NoError(t, err)
	return s, db, m
}

func addRequisition(t *testing.T, s *procurement.Store, items ...entity.LineItem) entity.PurchaseRequisition {
	t.Helper()
	added, err := s.AddRequisitions(context.Background(), []entity.PurchaseRequisition{{
		SuggestedSupplierID: "S1",
		Items:               items,
		Reason:              "Stock bajo",
	}})
	require.NoError(t, err)
	require.Len(t, added, 1)
	return added[0]
}

func line(productID string, qty int, price string) entity.LineItem {
	return entity.LineItem{ProductID: productID, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}
