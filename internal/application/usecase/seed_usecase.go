package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

// unknownSupplierID referencia usada cuando no hay ningún proveedor al que ligar el producto.
const unknownSupplierID = "unknown"

const defaultGenerateTimeout = 60 * time.Second

// CatalogSeeder lo que la siembra necesita del store.
type CatalogSeeder interface {
	SeedData(ctx context.Context, products []entity.Product, suppliers []entity.Supplier) error
}

// GeneratedSupplier proveedor tal como lo describe el documento generado.
type GeneratedSupplier struct {
	Name         string  `json:"name"`
	ContactEmail string  `json:"contactEmail"`
	LeadTimeDays float64 `json:"leadTimeDays"`
}

// GeneratedProduct producto generado; el proveedor se referencia por nombre.
type GeneratedProduct struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	StockLevel   float64 `json:"stockLevel"`
	ReorderPoint float64 `json:"reorderPoint"`
	UnitPrice    float64 `json:"unitPrice"`
	SupplierName string  `json:"supplierName"`
}

// GeneratedInventory documento de inventario de ejemplo (el que produce el proveedor
// de análisis o un archivo de siembra).
type GeneratedInventory struct {
	Suppliers []GeneratedSupplier `json:"suppliers"`
	Products  []GeneratedProduct  `json:"products"`
}

// SeedUseCase siembra el catálogo desde el generador externo o desde un documento.
type SeedUseCase struct {
	store    CatalogSeeder
	provider ports.AnalysisProvider
	timeout  time.Duration
	log      zerolog.Logger
	newID    func() string
}

// NewSeedUseCase construye el caso de uso. timeout <= 0 usa 60s.
func NewSeedUseCase(store CatalogSeeder, provider ports.AnalysisProvider, timeout time.Duration, log zerolog.Logger) *SeedUseCase {
	if timeout <= 0 {
		timeout = defaultGenerateTimeout
	}
	return &SeedUseCase{
		store:    store,
		provider: provider,
		timeout:  timeout,
		log:      log,
		newID:    func() string { return uuid.New().String() },
	}
}

// GenerateAndSeed pide un inventario de ejemplo al proveedor y reemplaza el catálogo.
// Cualquier fallo deja el estado como estaba.
func (uc *SeedUseCase) GenerateAndSeed(ctx context.Context) (int, int, error) {
	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	raw, err := uc.provider.GenerateInventory(callCtx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("generación de inventario fallida")
		return 0, 0, err
	}
	return uc.SeedFromDocument(ctx, raw)
}

// SeedFromDocument decodifica un GeneratedInventory y lo siembra.
func (uc *SeedUseCase) SeedFromDocument(ctx context.Context, raw json.RawMessage) (int, int, error) {
	doc := bytes.TrimSpace(raw)
	if len(doc) == 0 {
		doc = []byte("{}")
	}
	var inv GeneratedInventory
	if err := json.Unmarshal(doc, &inv); err != nil {
		return 0, 0, fmt.Errorf("documento de inventario: %v: %w", err, domain.ErrMalformedSuggestion)
	}
	products, suppliers := MapGeneratedInventory(inv, uc.newID)
	if dropped := len(inv.Products) + len(inv.Suppliers) - len(products) - len(suppliers); dropped > 0 {
		uc.log.Warn().Int("dropped", dropped).Msg("registros generados inválidos descartados")
	}
	if err := uc.store.SeedData(ctx, products, suppliers); err != nil {
		return 0, 0, err
	}
	return len(products), len(suppliers), nil
}

// MapGeneratedInventory convierte el documento en entidades: IDs nuevos, estado ACTIVE,
// plazo de entrega ≥ 1 y números negativos llevados a 0. El producto se liga al proveedor
// por nombre, si no al primero, y si no hay proveedores a "unknown".
// Se descartan proveedores sin nombre, productos sin SKU o nombre y SKUs repetidos.
func MapGeneratedInventory(inv GeneratedInventory, newID func() string) ([]entity.Product, []entity.Supplier) {
	suppliers := make([]entity.Supplier, 0, len(inv.Suppliers))
	byName := make(map[string]string, len(inv.Suppliers))
	for _, s := range inv.Suppliers {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		sup := entity.Supplier{
			ID:           newID(),
			Name:         name,
			ContactEmail: strings.TrimSpace(s.ContactEmail),
			LeadTimeDays: max(1, clampInt(s.LeadTimeDays)),
		}
		suppliers = append(suppliers, sup)
		key := strings.ToLower(sup.Name)
		if _, dup := byName[key]; !dup {
			byName[key] = sup.ID
		}
	}

	fallback := unknownSupplierID
	if len(suppliers) > 0 {
		fallback = suppliers[0].ID
	}

	products := make([]entity.Product, 0, len(inv.Products))
	seen := make(map[string]struct{}, len(inv.Products))
	for _, p := range inv.Products {
		sku, name := strings.TrimSpace(p.SKU), strings.TrimSpace(p.Name)
		if sku == "" || name == "" {
			continue
		}
		if _, dup := seen[strings.ToLower(sku)]; dup {
			continue
		}
		seen[strings.ToLower(sku)] = struct{}{}

		supplierID, ok := byName[strings.ToLower(strings.TrimSpace(p.SupplierName))]
		if !ok {
			supplierID = fallback
		}
		price := decimal.Zero
		if p.UnitPrice > 0 && !math.IsInf(p.UnitPrice, 0) {
			price = decimal.NewFromFloat(p.UnitPrice).Round(2)
		}
		products = append(products, entity.Product{
			ID:           newID(),
			SKU:          sku,
			Name:         name,
			Category:     strings.TrimSpace(p.Category),
			StockLevel:   clampInt(p.StockLevel),
			ReorderPoint: clampInt(p.ReorderPoint),
			UnitPrice:    price,
			SupplierID:   supplierID,
			Status:       entity.ProductStatusActive,
		})
	}
	return products, suppliers
}

// clampInt trunca a entero no negativo dentro del rango de int32.
func clampInt(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}
