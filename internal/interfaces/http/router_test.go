package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/nexus-procurement/internal/application/analytics"
	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/application/inventory"
	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/application/usecase"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/memory"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/nexus-procurement/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// stubProvider devuelve siempre el mismo documento de análisis.
type stubProvider struct {
	doc string
}

func (p stubProvider) AnalyzeStock(context.Context, ports.AnalysisRequest) (json.RawMessage, error) {
	return json.RawMessage(p.doc), nil
}

func (p stubProvider) GenerateInventory(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

type stubPDF struct{}

func (stubPDF) GeneratePurchaseOrderPDF(context.Context, entity.PurchaseOrder, *entity.Supplier, map[string]string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

// buildTestApp arma la aplicación completa sobre un store en memoria con P1 y S1.
func buildTestApp(t *testing.T, provider ports.AnalysisProvider) (*fiber.App, *procurement.Store) {
	t.Helper()
	collector := metrics.NewCollector()
	store := procurement.NewStore(memory.NewDatabase(), procurement.WithMetrics(collector))
	require.NoError(t, store.Load(context.Background()))
	require.NoError(t, store.SeedData(context.Background(),
		[]entity.Product{{
			ID: "P1", SKU: "SKU-1", Name: "Tornillo", Category: "Ferretería",
			StockLevel: 5, ReorderPoint: 10, UnitPrice: decimal.RequireFromString("2"), SupplierID: "S1",
		}},
		[]entity.Supplier{{ID: "S1", Name: "Acme", LeadTimeDays: 3}},
	))

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(store),
		SupplierUC:    usecase.NewSupplierUseCase(store),
		PurchasingUC:  usecase.NewPurchasingUseCase(store, stubPDF{}),
		SeedUC:        usecase.NewSeedUseCase(store, provider, time.Second, zerolog.Nop()),
		Replenishment: inventory.NewReplenishmentUseCase(store, provider, time.Second, zerolog.Nop(), collector),
		DashboardUC:   appanalytics.NewDashboardUseCase(store),
		Metrics:       collector,
		Storage:       "memory",
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	app, _ := buildTestApp(t, stubProvider{})
	resp := doJSON(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "memory", decode[dto.HealthResponse](t, resp).Storage)
}

// Flujo completo por HTTP: análisis → requisición → orden → recepción.
func TestReplenishmentToReceipt(t *testing.T) {
	doc := `{"summary":"Reponer tornillos","requisitions":[{"suggestedSupplierId":"S1","reason":"Stock bajo","items":[{"productId":"P1","quantity":20}]}]}`
	app, store := buildTestApp(t, stubProvider{doc: doc})

	resp := doJSON(t, app, http.MethodPost, "/api/replenishment/analyze", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	analysis := decode[dto.AnalysisResponse](t, resp)
	assert.Equal(t, "OK", analysis.Outcome)
	assert.Equal(t, "Reponer tornillos", analysis.Summary)
	require.Len(t, analysis.Requisitions, 1)
	prID := analysis.Requisitions[0].ID
	assert.Equal(t, "PR-0001", analysis.Requisitions[0].ReqNumber)

	resp = doJSON(t, app, http.MethodGet, "/api/requisitions/"+prID+"/default-supplier", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	def := decode[dto.DefaultSupplierResponse](t, resp)
	require.NotNil(t, def.Supplier)
	assert.Equal(t, "S1", def.Supplier.ID)

	resp = doJSON(t, app, http.MethodPost, "/api/requisitions/"+prID+"/convert", `{"supplier_id":"S1"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	po := decode[dto.PurchaseOrderResponse](t, resp)
	assert.Equal(t, "PO-0001", po.OrderNumber)
	assert.True(t, decimal.RequireFromString("40").Equal(po.TotalAmount))

	resp = doJSON(t, app, http.MethodPost, "/api/requisitions/"+prID+"/convert", `{"supplier_id":"S1"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "una requisición solo se convierte una vez")
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPatch, "/api/orders/"+po.ID+"/status", `{"status":"ORDERED"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPatch, "/api/orders/"+po.ID+"/status", `{"status":"RECEIVED"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	p, _ := store.Product("P1")
	assert.Equal(t, 25, p.StockLevel)

	resp = doJSON(t, app, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 1, summary.ReceivedOrders)
	assert.Zero(t, summary.PendingOrders)
	assert.True(t, decimal.RequireFromString("50").Equal(summary.TotalValue))

	resp = doJSON(t, app, http.MethodGet, "/api/orders/"+po.ID+"/pdf", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "PO-0001.pdf")
}

func TestErrorMapping(t *testing.T) {
	app, _ := buildTestApp(t, stubProvider{})

	resp := doJSON(t, app, http.MethodPost, "/api/requisitions/nope/reject", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodGet, "/api/requisitions?status=LOST", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/products", `{"sku":"sku-1","name":"Repetido"}`)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodPost, "/api/suppliers", `{"name":"Sin plazo","lead_time_days":0}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/products", `{not json`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSupplierDelete_NoCascade(t *testing.T) {
	app, store := buildTestApp(t, stubProvider{})

	resp := doJSON(t, app, http.MethodDelete, "/api/suppliers/S1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	p, ok := store.Product("P1")
	require.True(t, ok)
	assert.Equal(t, "S1", p.SupplierID, "el producto conserva la referencia colgante")
}

func TestSeedEndpoint(t *testing.T) {
	app, store := buildTestApp(t, stubProvider{})
	body := `{"suppliers":[{"id":"S9","name":"Nueva","lead_time_days":2}],
		"products":[{"sku":"N-1","name":"Clavo","stock_level":100,"reorder_point":10,"unit_price":"0.10","supplier_id":"S9"}]}`

	resp := doJSON(t, app, http.MethodPost, "/api/products/seed", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.SeedResponse](t, resp)
	assert.Equal(t, 1, out.Products)
	assert.Equal(t, 1, out.Suppliers)

	products := store.Products()
	require.Len(t, products, 1, "la siembra reemplaza el catálogo")
	assert.Equal(t, "N-1", products[0].SKU)
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := buildTestApp(t, stubProvider{})
	doJSON(t, app, http.MethodGet, "/api/products", "")

	resp := doJSON(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "procurement_http_request_duration_seconds")
}
