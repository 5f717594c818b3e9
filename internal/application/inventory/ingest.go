package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

const (
	defaultReason  = "Auto-replenishment"
	defaultSummary = "Analysis complete."
)

// Ingested resultado de interpretar la respuesta del proveedor.
// Las requisiciones son borradores PENDING: el store asigna ID y número al agregarlas.
type Ingested struct {
	Summary         string
	Requisitions    []entity.PurchaseRequisition
	DroppedLines    int // líneas sin productId o con cantidad que no es entero positivo
	UnknownProducts int // líneas con productId inexistente (precio 0)
}

// IngestSuggestions convierte el documento JSON del proveedor en requisiciones.
//
// El documento es no confiable: cada línea se valida por separado y las inválidas se descartan.
// El precio nunca viene del proveedor: se toma de products (los activos que se enviaron
// al análisis) y es 0 si el producto no está ahí. Los grupos sin líneas se conservan; los descarta quien agrega al store.
// Solo un documento que no es un objeto JSON devuelve ErrMalformedSuggestion.
func IngestSuggestions(raw json.RawMessage, products []entity.Product, log zerolog.Logger) (Ingested, error) {
	doc := bytes.TrimSpace(raw)
	if len(doc) == 0 {
		doc = []byte("{}")
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(doc, &top); err != nil || top == nil {
		return Ingested{}, fmt.Errorf("respuesta no es un objeto: %w", domain.ErrMalformedSuggestion)
	}

	out := Ingested{Summary: defaultSummary}
	if s, ok := stringField(top, "summary"); ok && strings.TrimSpace(s) != "" {
		out.Summary = s
	}

	prices := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.UnitPrice
	}

	var groups []json.RawMessage
	if rawGroups, ok := top["requisitions"]; ok {
		if err := json.Unmarshal(rawGroups, &groups); err != nil {
			log.Warn().Err(err).Msg("requisitions no es un arreglo; se ignora")
			groups = nil
		}
	}

	for gi, rawGroup := range groups {
		var group map[string]json.RawMessage
		if err := json.Unmarshal(rawGroup, &group); err != nil || group == nil {
			log.Warn().Int("group", gi).Msg("grupo de requisición malformado descartado")
			continue
		}

		pr := entity.PurchaseRequisition{
			Status: entity.RequisitionPending,
			Reason: defaultReason,
			Items:  []entity.LineItem{},
		}
		if id, ok := stringField(group, "suggestedSupplierId"); ok {
			pr.SuggestedSupplierID = strings.TrimSpace(id)
		}
		if reason, ok := stringField(group, "reason"); ok && strings.TrimSpace(reason) != "" {
			pr.Reason = reason
		}

		var lines []json.RawMessage
		if rawItems, ok := group["items"]; ok {
			if err := json.Unmarshal(rawItems, &lines); err != nil {
				log.Warn().Err(err).Int("group", gi).Msg("items no es un arreglo; grupo sin líneas")
				lines = nil
			}
		}
		for _, rawLine := range lines {
			item, ok := parseLine(rawLine)
			if !ok {
				out.DroppedLines++
				log.Warn().RawJSON("line", compact(rawLine)).Msg("línea sugerida malformada descartada")
				continue
			}
			price, known := prices[item.ProductID]
			if !known {
				out.UnknownProducts++
				log.Warn().Str("product_id", item.ProductID).Msg("línea sugerida con producto inexistente; precio 0")
			}
			item.UnitPrice = price
			pr.Items = append(pr.Items, item)
		}
		out.Requisitions = append(out.Requisitions, pr)
	}
	return out, nil
}

// parseLine acepta {productId: string no vacío, quantity: entero positivo}.
// Cantidades fraccionarias se rechazan; no se redondean.
func parseLine(raw json.RawMessage) (entity.LineItem, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return entity.LineItem{}, false
	}
	productID, ok := stringField(fields, "productId")
	productID = strings.TrimSpace(productID)
	if !ok || productID == "" {
		return entity.LineItem{}, false
	}
	qty, ok := quantityField(fields, "quantity")
	if !ok {
		return entity.LineItem{}, false
	}
	return entity.LineItem{ProductID: productID, Quantity: qty}, true
}

func stringField(fields map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := fields[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func quantityField(fields map[string]json.RawMessage, key string) (int, bool) {
	raw, ok := fields[key]
	if !ok {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, false
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil || !d.IsInteger() || !d.IsPositive() {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

func compact(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return []byte(`null`)
	}
	return buf.Bytes()
}
