package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/application/usecase"
	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/memory"
)

func newStore(t *testing.T) *procurement.Store {
	t.Helper()
	s := procurement.NewStore(memory.NewDatabase())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func seedCatalog(t *testing.T, s *procurement.Store) {
	t.Helper()
	_, err := usecase.NewProductUseCase(s).Seed(context.Background(), dto.SeedRequest{
		Suppliers: []dto.SeedSupplier{
			{ID: "S1", CreateSupplierRequest: dto.CreateSupplierRequest{Name: "Acme", ContactEmail: "a@acme.test", LeadTimeDays: 3}},
			{ID: "S2", CreateSupplierRequest: dto.CreateSupplierRequest{Name: "Globex", LeadTimeDays: 7}},
		},
		Products: []dto.SeedProduct{
			{ID: "P1", CreateProductRequest: dto.CreateProductRequest{
				SKU: "SKU-1", Name: "Tornillo", Category: "Ferretería",
				StockLevel: 5, ReorderPoint: 10, UnitPrice: decimal.RequireFromString("2"), SupplierID: "S1",
			}},
		},
	})
	require.NoError(t, err)
}

// fakePDF registra lo que recibe el generador de documentos.
type fakePDF struct {
	supplier *entity.Supplier
	names    map[string]string
}

var _ ports.PurchaseOrderDocument = (*fakePDF)(nil)

func (f *fakePDF) GeneratePurchaseOrderPDF(_ context.Context, _ entity.PurchaseOrder, supplier *entity.Supplier, names map[string]string) ([]byte, error) {
	f.supplier = supplier
	f.names = names
	return []byte("%PDF-fake"), nil
}

// fakeGenerator proveedor que solo implementa la generación de inventario.
type fakeGenerator struct {
	doc string
	err error
}

func (f fakeGenerator) AnalyzeStock(context.Context, ports.AnalysisRequest) (json.RawMessage, error) {
	return nil, errors.New("no usado")
}

func (f fakeGenerator) GenerateInventory(context.Context) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.doc), nil
}

// ── Productos ────────────────────────────────────────────────────────────────

func TestProductUseCase_CreateAndUpdate(t *testing.T) {
	s := newStore(t)
	uc := usecase.NewProductUseCase(s)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		SKU: " SKU-9 ", Name: "Tuerca", StockLevel: 2, ReorderPoint: 4, UnitPrice: decimal.RequireFromString("0.5"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "SKU-9", created.SKU)
	assert.Equal(t, "ACTIVE", created.Status, "estado por defecto")
	assert.True(t, created.LowStock)

	stock := 50
	inactive := "inactive"
	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{StockLevel: &stock, Status: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.StockLevel)
	assert.Equal(t, "INACTIVE", updated.Status)
	assert.Equal(t, "Tuerca", updated.Name, "los campos ausentes se conservan")

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "sku-9", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "SKU único sin distinguir mayúsculas")

	_, err = uc.Create(ctx, dto.CreateProductRequest{SKU: "X", Name: "Mala", StockLevel: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "nope", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, uc.List(), 1)
}

func TestProductUseCase_Seed_ValidaProveedores(t *testing.T) {
	s := newStore(t)
	_, err := usecase.NewProductUseCase(s).Seed(context.Background(), dto.SeedRequest{
		Suppliers: []dto.SeedSupplier{{CreateSupplierRequest: dto.CreateSupplierRequest{Name: "Sin plazo"}}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.Suppliers(), "una siembra inválida no toca el estado")
}

func TestProductUseCase_Seed_RechazaRepetidos(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)
	item := dto.CreateProductRequest{SKU: "A", Name: "Uno", UnitPrice: decimal.NewFromInt(1)}
	_, err := usecase.NewProductUseCase(s).Seed(context.Background(), dto.SeedRequest{
		Products: []dto.SeedProduct{
			{ID: "P9", CreateProductRequest: item},
			{ID: "P9", CreateProductRequest: item},
		},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	products := s.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].ID)
	assert.Len(t, s.Suppliers(), 2)
}

// ── Proveedores ──────────────────────────────────────────────────────────────

func TestSupplierUseCase_CRUD(t *testing.T) {
	s := newStore(t)
	uc := usecase.NewSupplierUseCase(s)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Initech", LeadTimeDays: 2})
	require.NoError(t, err)

	days := 0
	_, err = uc.Update(ctx, created.ID, dto.UpdateSupplierRequest{LeadTimeDays: &days})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "plazo de entrega mínimo 1")

	name := "Initech SA"
	updated, err := uc.Update(ctx, created.ID, dto.UpdateSupplierRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Initech SA", updated.Name)
	assert.Equal(t, 2, updated.LeadTimeDays)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Empty(t, uc.List())
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

// ── Compras ──────────────────────────────────────────────────────────────────

func TestPurchasingUseCase_Flow(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)
	ctx := context.Background()
	pdf := &fakePDF{}
	uc := usecase.NewPurchasingUseCase(s, pdf)

	added, err := s.AddRequisitions(ctx, []entity.PurchaseRequisition{{
		SuggestedSupplierID: "S2",
		Items:               []entity.LineItem{{ProductID: "P1", Quantity: 20, UnitPrice: decimal.RequireFromString("2")}},
		Reason:              "Stock bajo",
	}})
	require.NoError(t, err)
	prID := added[0].ID

	def, err := uc.DefaultSupplier(prID)
	require.NoError(t, err)
	require.NotNil(t, def.Supplier)
	assert.Equal(t, "S2", def.Supplier.ID, "prevalece el sugerido")

	pending, err := uc.ListRequisitions("pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Tornillo", pending[0].Items[0].ProductName)
	assert.True(t, decimal.RequireFromString("40").Equal(pending[0].EstimatedTotal))

	_, err = uc.ListRequisitions("bogus")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	po, err := uc.Convert(ctx, prID, dto.ConvertRequisitionRequest{SupplierID: "S1"})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", po.Status)
	assert.Equal(t, "Acme", po.SupplierName)
	assert.True(t, decimal.RequireFromString("40").Equal(po.TotalAmount))

	_, err = uc.Reject(ctx, prID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una requisición convertida es terminal")

	_, err = uc.SetOrderStatus(ctx, po.ID, dto.UpdateOrderStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SetOrderStatus(ctx, po.ID, dto.UpdateOrderStatusRequest{Status: "RECEIVED"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "DRAFT no salta a RECEIVED")

	_, err = uc.SetOrderStatus(ctx, po.ID, dto.UpdateOrderStatusRequest{Status: "ORDERED"})
	require.NoError(t, err)
	received, err := uc.SetOrderStatus(ctx, po.ID, dto.UpdateOrderStatusRequest{Status: "received"})
	require.NoError(t, err)
	assert.Equal(t, "RECEIVED", received.Status)

	p, _ := s.Product("P1")
	assert.Equal(t, 25, p.StockLevel)

	data, number, err := uc.OrderPDF(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-0001", number)
	assert.Equal(t, []byte("%PDF-fake"), data)
	require.NotNil(t, pdf.supplier)
	assert.Equal(t, "Acme", pdf.supplier.Name)
	assert.Equal(t, "Tornillo", pdf.names["P1"])

	_, _, err = uc.OrderPDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchasingUseCase_ProveedorEliminado(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)
	ctx := context.Background()
	pdf := &fakePDF{}
	uc := usecase.NewPurchasingUseCase(s, pdf)

	added, err := s.AddRequisitions(ctx, []entity.PurchaseRequisition{{
		Items: []entity.LineItem{{ProductID: "P1", Quantity: 1, UnitPrice: decimal.RequireFromString("2")}},
	}})
	require.NoError(t, err)
	po, err := uc.Convert(ctx, added[0].ID, dto.ConvertRequisitionRequest{SupplierID: "S1"})
	require.NoError(t, err)
	require.NoError(t, usecase.NewSupplierUseCase(s).Delete(ctx, "S1"))

	orders := uc.ListOrders()
	require.Len(t, orders, 1)
	assert.Empty(t, orders[0].SupplierName, "referencia colgante tolerada")

	_, _, err = uc.OrderPDF(ctx, po.ID)
	require.NoError(t, err)
	assert.Nil(t, pdf.supplier)
}

func TestPurchasingUseCase_DefaultSupplier_SinProveedores(t *testing.T) {
	s := newStore(t)
	added, err := s.AddRequisitions(context.Background(), []entity.PurchaseRequisition{{
		Items: []entity.LineItem{{ProductID: "X", Quantity: 1}},
	}})
	require.NoError(t, err)

	def, err := usecase.NewPurchasingUseCase(s, nil).DefaultSupplier(added[0].ID)
	require.NoError(t, err)
	assert.Nil(t, def.Supplier)
}

// ── Siembra generada ─────────────────────────────────────────────────────────

func TestMapGeneratedInventory(t *testing.T) {
	n := 0
	ids := func() string {
		n++
		return []string{"s-a", "s-b", "p-1", "p-2", "p-3"}[n-1]
	}
	inv := usecase.GeneratedInventory{
		Suppliers: []usecase.GeneratedSupplier{
			{Name: "Acme", LeadTimeDays: 0},
			{Name: "Globex", LeadTimeDays: 5},
		},
		Products: []usecase.GeneratedProduct{
			{SKU: "A", Name: "Uno", StockLevel: -3, ReorderPoint: 4, UnitPrice: 1.234, SupplierName: "globex"},
			{SKU: "B", Name: "Dos", StockLevel: 8, UnitPrice: -2, SupplierName: "Nadie"},
			{SKU: "C", Name: "Tres", StockLevel: 7.9, SupplierName: ""},
		},
	}

	products, suppliers := usecase.MapGeneratedInventory(inv, ids)

	require.Len(t, suppliers, 2)
	assert.Equal(t, 1, suppliers[0].LeadTimeDays, "plazo mínimo 1")
	require.Len(t, products, 3)
	assert.Equal(t, "s-b", products[0].SupplierID, "ligado por nombre")
	assert.Equal(t, 0, products[0].StockLevel, "negativos a 0")
	assert.True(t, decimal.RequireFromString("1.23").Equal(products[0].UnitPrice))
	assert.Equal(t, "s-a", products[1].SupplierID, "sin coincidencia: primer proveedor")
	assert.True(t, products[1].UnitPrice.IsZero())
	assert.Equal(t, 7, products[2].StockLevel)
	for _, p := range products {
		assert.Equal(t, entity.ProductStatusActive, p.Status)
	}
}

func TestMapGeneratedInventory_DescartaInvalidos(t *testing.T) {
	n := 0
	ids := func() string {
		n++
		return []string{"s-a", "p-1"}[n-1]
	}
	products, suppliers := usecase.MapGeneratedInventory(usecase.GeneratedInventory{
		Suppliers: []usecase.GeneratedSupplier{{Name: "  "}, {Name: "Acme", LeadTimeDays: 2}},
		Products: []usecase.GeneratedProduct{
			{SKU: "", Name: "Sin SKU"},
			{SKU: "A", Name: " "},
			{SKU: "A", Name: "Uno"},
			{SKU: "a", Name: "Repetido"},
		},
	}, ids)

	require.Len(t, suppliers, 1)
	assert.Equal(t, "s-a", suppliers[0].ID)
	require.Len(t, products, 1)
	assert.Equal(t, "p-1", products[0].ID)
	assert.Equal(t, "Uno", products[0].Name)
	assert.Equal(t, "s-a", products[0].SupplierID)
}

func TestMapGeneratedInventory_SinProveedores(t *testing.T) {
	products, suppliers := usecase.MapGeneratedInventory(usecase.GeneratedInventory{
		Products: []usecase.GeneratedProduct{{SKU: "A", Name: "Uno", SupplierName: "Acme"}},
	}, func() string { return "id" })

	assert.Empty(t, suppliers)
	require.Len(t, products, 1)
	assert.Equal(t, "unknown", products[0].SupplierID)
}

func TestSeedUseCase_GenerateAndSeed(t *testing.T) {
	s := newStore(t)
	doc := `{"suppliers":[{"name":"Acme","contactEmail":"a@acme.test","leadTimeDays":3}],
		"products":[{"sku":"S-1","name":"Martillo","category":"Tools","stockLevel":12,"reorderPoint":5,"unitPrice":15.5,"supplierName":"Acme"}]}`
	uc := usecase.NewSeedUseCase(s, fakeGenerator{doc: doc}, 0, zerolog.Nop())

	products, suppliers, err := uc.GenerateAndSeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, products)
	assert.Equal(t, 1, suppliers)

	stored := s.Products()
	require.Len(t, stored, 1)
	assert.Equal(t, s.Suppliers()[0].ID, stored[0].SupplierID)
}

func TestSeedUseCase_FalloDelProveedor_NoCambiaEstado(t *testing.T) {
	s := newStore(t)
	seedCatalog(t, s)
	uc := usecase.NewSeedUseCase(s, fakeGenerator{err: domain.ErrProviderFailure}, 0, zerolog.Nop())

	_, _, err := uc.GenerateAndSeed(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
	assert.Len(t, s.Products(), 1)
	assert.Len(t, s.Suppliers(), 2)

	_, _, err = usecase.NewSeedUseCase(s, fakeGenerator{doc: "[1,2]"}, 0, zerolog.Nop()).GenerateAndSeed(context.Background())
	assert.ErrorIs(t, err, domain.ErrMalformedSuggestion)
	assert.Len(t, s.Products(), 1)
}

func TestSeedUseCase_SeedFromDocument_DescartaProductosVacios(t *testing.T) {
	s := newStore(t)
	uc := usecase.NewSeedUseCase(s, fakeGenerator{}, 0, zerolog.Nop())
	doc := `{"suppliers":[{"name":"Acme","leadTimeDays":3}],
		"products":[{"sku":"","name":""},{"sku":" ","name":"x"},{"sku":"K-1","name":"Llave","stockLevel":4}]}`

	products, suppliers, err := uc.SeedFromDocument(context.Background(), json.RawMessage(doc))
	require.NoError(t, err)
	assert.Equal(t, 1, products)
	assert.Equal(t, 1, suppliers)

	stored := s.Products()
	require.Len(t, stored, 1)
	assert.Equal(t, "K-1", stored[0].SKU)
	for _, p := range stored {
		assert.NoError(t, p.Validate())
	}
}
