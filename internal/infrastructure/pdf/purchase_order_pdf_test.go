package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

func sampleOrder() entity.PurchaseOrder {
	expected := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	items := []entity.LineItem{
		{ProductID: "P1", Quantity: 20, UnitPrice: decimal.RequireFromString("2.00")},
		{ProductID: "P-gone", Quantity: 1, UnitPrice: decimal.RequireFromString("1500")},
	}
	return entity.PurchaseOrder{
		ID: "po-1", OrderNumber: "PO-0001", SupplierID: "S1", Status: entity.OrderDraft,
		DateCreated: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), DateExpected: &expected,
		Items: items, TotalAmount: entity.SumItems(items), OriginalRequisitionID: "pr-1",
	}
}

func TestGeneratePurchaseOrderPDF(t *testing.T) {
	g := NewMarotoPurchaseOrderPDF(language.Und)
	sup := &entity.Supplier{ID: "S1", Name: "Acme", ContactEmail: "ventas@acme.test", LeadTimeDays: 3}

	doc, err := g.GeneratePurchaseOrderPDF(context.Background(), sampleOrder(), sup, map[string]string{"P1": "Tornillo"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")), "debe ser un PDF")
}

func TestGeneratePurchaseOrderPDF_DanglingSupplier(t *testing.T) {
	g := NewMarotoPurchaseOrderPDF(language.Und)
	doc, err := g.GeneratePurchaseOrderPDF(context.Background(), sampleOrder(), nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}

func TestMoney_ThousandsSeparator(t *testing.T) {
	g := NewMarotoPurchaseOrderPDF(language.AmericanEnglish)
	assert.Equal(t, "$1,540.00", g.money(decimal.RequireFromString("1540")))
	assert.Equal(t, "$2.50", g.money(decimal.RequireFromString("2.499")))
}
