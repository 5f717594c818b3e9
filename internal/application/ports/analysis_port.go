package ports

import (
	"context"
	"encoding/json"
)

// AnalysisProduct vista reducida de un producto que se envía al proveedor de análisis.
type AnalysisProduct struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StockLevel   int    `json:"currentStock"`
	ReorderPoint int    `json:"reorderPoint"`
	SupplierID   string `json:"supplierId"`
}

// AnalysisSupplier vista reducida de un proveedor.
type AnalysisSupplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AnalysisRequest subconjunto de inventario en riesgo más el catálogo de proveedores.
// HealthyCount informa cuántos productos activos quedaron fuera por estar sanos.
type AnalysisRequest struct {
	Products     []AnalysisProduct
	Suppliers    []AnalysisSupplier
	HealthyCount int
}

// AnalysisProvider puerto de salida hacia el servicio externo de análisis (LLM).
// Cualquier adaptador (Gemini, Anthropic, mock) implementa esta interfaz.
//
// Los métodos devuelven el documento JSON tal como lo produjo el modelo, sin interpretar:
// la forma es no confiable y la valida la capa de aplicación antes de tocar el dominio.
// El contexto debe llevar un timeout; el adaptador debe respetar su cancelación.
type AnalysisProvider interface {
	// AnalyzeStock devuelve {summary, requisitions:[{suggestedSupplierId?, reason?, items:[{productId, quantity}]}]}.
	AnalyzeStock(ctx context.Context, req AnalysisRequest) (json.RawMessage, error)

	// GenerateInventory devuelve {suppliers:[...], products:[...]} para el sembrado inicial.
	GenerateInventory(ctx context.Context) (json.RawMessage, error)
}
