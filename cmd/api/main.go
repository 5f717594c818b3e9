package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	appanalytics "github.com/jhoicas/nexus-procurement/internal/application/analytics"
	"github.com/jhoicas/nexus-procurement/internal/application/inventory"
	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/application/usecase"
	infraai "github.com/jhoicas/nexus-procurement/internal/infrastructure/ai"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/nexus-procurement/internal/infrastructure/pdf"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/nexus-procurement/internal/interfaces/http"
	"github.com/jhoicas/nexus-procurement/pkg/config"
	"github.com/jhoicas/nexus-procurement/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	runner, closeStorage, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer closeStorage()

	collector := metrics.NewCollector()
	store := procurement.NewStore(runner,
		procurement.WithLogger(log.Component("procurement")),
		procurement.WithMetrics(collector),
	)
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar colecciones")
	}

	provider := infraai.NewProvider(cfg.AI, log.Component("ai"))
	replenishmentUC := inventory.NewReplenishmentUseCase(
		store, provider, cfg.AI.Timeout, log.Component("replenishment"), collector,
	)
	seedUC := usecase.NewSeedUseCase(store, provider, 0, log.Component("seed"))

	// PDF: documento imprimible de la orden de compra
	pdfGenerator := infrapdf.NewMarotoPurchaseOrderPDF(language.AmericanEnglish)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 70,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Nexus Procurement API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(store),
		SupplierUC:    usecase.NewSupplierUseCase(store),
		PurchasingUC:  usecase.NewPurchasingUseCase(store, pdfGenerator),
		SeedUC:        seedUC,
		Replenishment: replenishmentUC,
		DashboardUC:   appanalytics.NewDashboardUseCase(store),
		Metrics:       collector,
		Storage:       cfg.Storage.Backend,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
