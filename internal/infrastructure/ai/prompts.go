package ai

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
)

const generateInventoryPrompt = `Generate a realistic inventory dataset for a high-end electronics and accessories store. Create 5 suppliers and 15 products distributed among them. Ensure stock levels vary (some low, some high).
Return ONLY a JSON object with this exact shape:
{"suppliers":[{"name":string,"contactEmail":string,"leadTimeDays":number}],
 "products":[{"sku":string,"name":string,"category":string,"stockLevel":number,"reorderPoint":number,"unitPrice":number,"supplierName":string}]}
supplierName must match one of the generated supplier names.`

const analyzeStockInstructions = `Analyze this inventory data (subset of items needing attention).
Note: %d other items are healthy and excluded from this list.
Identify items below or near reorder points.
Create Purchase Requisitions (PRs) to replenish stock.
Group items into logical requisitions (usually by existing supplier relationship).
Provide a short executive summary of the inventory health.
Return ONLY a JSON object with this exact shape:
{"summary":string,"requisitions":[{"suggestedSupplierId":string,"reason":string,"items":[{"productId":string,"quantity":integer}]}]}

Inventory Context: %s
Suppliers: %s`

// analyzeStockPrompt arma el mensaje de usuario con el subconjunto en riesgo y los proveedores.
func analyzeStockPrompt(req ports.AnalysisRequest) (string, error) {
	products := req.Products
	if products == nil {
		products = []ports.AnalysisProduct{}
	}
	suppliers := req.Suppliers
	if suppliers == nil {
		suppliers = []ports.AnalysisSupplier{}
	}
	inv, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("AI: serializar inventario: %w", err)
	}
	sup, err := json.Marshal(suppliers)
	if err != nil {
		return "", fmt.Errorf("AI: serializar proveedores: %w", err)
	}
	return fmt.Sprintf(analyzeStockInstructions, req.HealthyCount, inv, sup), nil
}

// Esquemas de respuesta para Gemini (responseSchema).
var (
	analysisSchema = map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"summary": map[string]any{"type": "STRING", "description": "A brief 2-3 sentence analysis of stock health."},
			"requisitions": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"suggestedSupplierId": map[string]any{"type": "STRING"},
						"reason":              map[string]any{"type": "STRING"},
						"items": map[string]any{
							"type": "ARRAY",
							"items": map[string]any{
								"type": "OBJECT",
								"properties": map[string]any{
									"productId": map[string]any{"type": "STRING"},
									"quantity":  map[string]any{"type": "INTEGER"},
								},
							},
						},
					},
				},
			},
		},
	}

	inventorySchema = map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"suppliers": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"name":         map[string]any{"type": "STRING"},
						"contactEmail": map[string]any{"type": "STRING"},
						"leadTimeDays": map[string]any{"type": "NUMBER"},
					},
				},
			},
			"products": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"sku":          map[string]any{"type": "STRING"},
						"name":         map[string]any{"type": "STRING"},
						"category":     map[string]any{"type": "STRING"},
						"stockLevel":   map[string]any{"type": "NUMBER"},
						"reorderPoint": map[string]any{"type": "NUMBER"},
						"unitPrice":    map[string]any{"type": "NUMBER"},
						"supplierName": map[string]any{"type": "STRING", "description": "Must match one of the generated supplier names"},
					},
				},
			},
		},
	}
)
