package ai

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/domain"
)

var _ ports.AnalysisProvider = DisabledProvider{}

// DisabledProvider se usa con AI_PROVIDER=none: toda llamada devuelve ErrProviderNotConfigured,
// que el análisis reporta como fallo del proveedor.
type DisabledProvider struct{}

func (DisabledProvider) AnalyzeStock(context.Context, ports.AnalysisRequest) (json.RawMessage, error) {
	return nil, domain.ErrProviderNotConfigured
}

func (DisabledProvider) GenerateInventory(context.Context) (json.RawMessage, error) {
	return nil, domain.ErrProviderNotConfigured
}
