package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/nexus-procurement/internal/application/analytics"
	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/application/inventory"
	"github.com/jhoicas/nexus-procurement/internal/application/usecase"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	SupplierUC    *usecase.SupplierUseCase
	PurchasingUC  *usecase.PurchasingUseCase
	SeedUC        *usecase.SeedUseCase
	Replenishment *inventory.ReplenishmentUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	Metrics       *metrics.Collector // opcional
	Storage       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Storage: deps.Storage})
	})

	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.SeedUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/seed", productHandler.Seed)
	products.Post("/seed/generate", productHandler.Generate)
	products.Put("/:id", productHandler.Update)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Requisitions y orders
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC)
	requisitions := api.Group("/requisitions")
	requisitions.Get("/", purchasingHandler.ListRequisitions)
	requisitions.Get("/:id/default-supplier", purchasingHandler.DefaultSupplier)
	requisitions.Post("/:id/convert", purchasingHandler.Convert)
	requisitions.Post("/:id/reject", purchasingHandler.Reject)

	orders := api.Group("/orders")
	orders.Get("/", purchasingHandler.ListOrders)
	orders.Get("/:id/pdf", purchasingHandler.PDF)
	orders.Patch("/:id/status", purchasingHandler.UpdateStatus)

	// Replenishment
	if deps.Replenishment != nil {
		inventoryHandler := NewInventoryHandler(deps.Replenishment)
		api.Post("/replenishment/analyze", inventoryHandler.Analyze)
	}

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetSummary)
}
