// seed reemplaza el catálogo de productos y proveedores del backend configurado.
//
// Uso:
//
//	go run ./cmd/seed -file inventario.json [-latin1]
//	go run ./cmd/seed -generate
//
// El archivo tiene la forma {"suppliers":[{name, contactEmail, leadTimeDays}],
// "products":[{sku, name, category, stockLevel, reorderPoint, unitPrice, supplierName}]}.
// Con -generate el documento lo produce el proveedor de análisis configurado.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/nexus-procurement/internal/application/procurement"
	"github.com/jhoicas/nexus-procurement/internal/application/usecase"
	infraai "github.com/jhoicas/nexus-procurement/internal/infrastructure/ai"
	"github.com/jhoicas/nexus-procurement/internal/infrastructure/storage"
	"github.com/jhoicas/nexus-procurement/pkg/config"
	"github.com/jhoicas/nexus-procurement/pkg/logger"
)

func main() {
	var (
		file     = flag.String("file", "", "Documento JSON de inventario")
		latin1   = flag.Bool("latin1", false, "El archivo está en ISO-8859-1")
		generate = flag.Bool("generate", false, "Pedir el inventario al proveedor de análisis")
	)
	flag.Parse()

	if (*file == "") == !*generate {
		fmt.Fprintln(os.Stderr, "indique -file o -generate (solo uno)")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	if cfg.Storage.Backend == config.StorageMemory {
		log.Fatal().Msg("STORAGE_BACKEND=memory: la siembra se perdería al terminar; use postgres")
	}

	ctx := context.Background()
	runner, closeStorage, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir persistencia")
	}
	defer closeStorage()

	store := procurement.NewStore(runner, procurement.WithLogger(log.Component("procurement")))
	if err := store.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar colecciones")
	}
	seedUC := usecase.NewSeedUseCase(store, infraai.NewProvider(cfg.AI, log.Component("ai")), 0, log.Component("seed"))

	var products, suppliers int
	if *generate {
		products, suppliers, err = seedUC.GenerateAndSeed(ctx)
	} else {
		var doc []byte
		doc, err = readDocument(*file, *latin1)
		if err == nil {
			products, suppliers, err = seedUC.SeedFromDocument(ctx, doc)
		}
	}
	if err != nil {
		log.Fatal().Err(err).Msg("siembra fallida")
	}
	log.Info().Int("products", products).Int("suppliers", suppliers).Msg("catálogo sembrado")
}

func readDocument(path string, latin1 bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	return data, nil
}
