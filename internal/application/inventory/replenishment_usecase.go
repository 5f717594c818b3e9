// Package inventory contiene el análisis de reposición: selecciona el inventario en riesgo,
// consulta al proveedor de análisis y convierte su respuesta en requisiciones PENDING.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/domain"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
	domaininv "github.com/jhoicas/nexus-procurement/internal/domain/inventory"
)

// Outcome resultado de una ejecución del análisis.
type Outcome string

const (
	OutcomeOK              Outcome = "OK"
	OutcomeHealthy         Outcome = "HEALTHY"
	OutcomeNoProducts      Outcome = "NO_PRODUCTS"
	OutcomeProviderFailure Outcome = "PROVIDER_FAILURE"
	OutcomeProviderTimeout Outcome = "PROVIDER_TIMEOUT"
	OutcomeSuperseded      Outcome = "SUPERSEDED"
)

const (
	healthySummaryFmt = "Inventory is in excellent health. All %d items are well above reorder points. No immediate action required."
	noProductsSummary = "No active products to analyze."
	failureSummary    = "Failed to generate analysis."

	defaultAnalysisTimeout = 10 * time.Second
)

// RequisitionStore lo que el análisis necesita del store de compras.
type RequisitionStore interface {
	Products() []entity.Product
	Suppliers() []entity.Supplier
	AddRequisitions(ctx context.Context, reqs []entity.PurchaseRequisition) ([]entity.PurchaseRequisition, error)
}

// AnalysisResult lo que ve la interfaz: resumen y requisiciones efectivamente agregadas.
type AnalysisResult struct {
	Outcome         Outcome
	Summary         string
	Requisitions    []entity.PurchaseRequisition
	AtRiskCount     int
	DroppedLines    int
	UnknownProducts int
}

// ReplenishmentUseCase ejecuta el análisis de reposición asistido por el proveedor externo.
//
// Una nueva solicitud cancela la que esté en curso; el resultado de una solicitud que ya no es
// la más reciente se descarta sin agregar nada (SUPERSEDED).
type ReplenishmentUseCase struct {
	store    RequisitionStore
	provider ports.AnalysisProvider
	timeout  time.Duration
	log      zerolog.Logger
	metrics  ports.WorkflowMetrics

	mu       sync.Mutex
	latest   uint64
	inFlight context.CancelFunc
}

// NewReplenishmentUseCase construye el caso de uso. timeout <= 0 usa 10s.
func NewReplenishmentUseCase(
	store RequisitionStore,
	provider ports.AnalysisProvider,
	timeout time.Duration,
	log zerolog.Logger,
	metrics ports.WorkflowMetrics,
) *ReplenishmentUseCase {
	if timeout <= 0 {
		timeout = defaultAnalysisTimeout
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &ReplenishmentUseCase{
		store:    store,
		provider: provider,
		timeout:  timeout,
		log:      log,
		metrics:  metrics,
	}
}

// Analyze corre el análisis completo. Los fallos del proveedor no son errores: se reportan
// en el Outcome con el resumen de respaldo. Solo un fallo al persistir devuelve error.
func (uc *ReplenishmentUseCase) Analyze(ctx context.Context) (AnalysisResult, error) {
	start := time.Now()
	res, err := uc.analyze(ctx)
	if err != nil {
		return AnalysisResult{}, err
	}
	uc.metrics.AnalysisCompleted(string(res.Outcome), time.Since(start))
	return res, nil
}

func (uc *ReplenishmentUseCase) analyze(ctx context.Context) (AnalysisResult, error) {
	products := uc.store.Products()
	active := domaininv.ActiveProducts(products)
	if len(active) == 0 {
		return AnalysisResult{Outcome: OutcomeNoProducts, Summary: noProductsSummary}, nil
	}

	atRisk := domaininv.AtRisk(products)
	if len(atRisk) == 0 {
		return AnalysisResult{
			Outcome: OutcomeHealthy,
			Summary: fmt.Sprintf(healthySummaryFmt, len(active)),
		}, nil
	}

	req := buildRequest(atRisk, uc.store.Suppliers(), len(active)-len(atRisk))

	callCtx, ticket := uc.begin(ctx)
	defer uc.finish(ticket)

	raw, err := uc.provider.AnalyzeStock(callCtx, req)
	if uc.superseded(ticket) {
		uc.log.Warn().Uint64("request", ticket).Msg("análisis reemplazado por una solicitud más reciente")
		return AnalysisResult{Outcome: OutcomeSuperseded, Summary: failureSummary, AtRiskCount: len(atRisk)}, nil
	}
	if err != nil {
		outcome := OutcomeProviderFailure
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domain.ErrProviderTimeout) ||
			errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			outcome = OutcomeProviderTimeout
		}
		uc.log.Warn().Err(err).Str("outcome", string(outcome)).Msg("fallo del proveedor de análisis")
		return AnalysisResult{Outcome: outcome, Summary: failureSummary, AtRiskCount: len(atRisk)}, nil
	}

	ingested, err := IngestSuggestions(raw, active, uc.log)
	if err != nil {
		uc.log.Warn().Err(err).Msg("respuesta del proveedor descartada")
		return AnalysisResult{Outcome: OutcomeProviderFailure, Summary: failureSummary, AtRiskCount: len(atRisk)}, nil
	}

	drafts := make([]entity.PurchaseRequisition, 0, len(ingested.Requisitions))
	for _, pr := range ingested.Requisitions {
		if len(pr.Items) == 0 {
			continue
		}
		drafts = append(drafts, pr)
	}

	added, err := uc.commit(ctx, ticket, drafts)
	if errors.Is(err, errSuperseded) {
		return AnalysisResult{Outcome: OutcomeSuperseded, Summary: failureSummary, AtRiskCount: len(atRisk)}, nil
	}
	if err != nil {
		return AnalysisResult{}, fmt.Errorf("agregar requisiciones sugeridas: %w", err)
	}

	uc.metrics.RequisitionsIngested(len(added))
	uc.log.Info().
		Int("at_risk", len(atRisk)).
		Int("requisitions", len(added)).
		Int("dropped_lines", ingested.DroppedLines).
		Msg("análisis de reposición completado")

	return AnalysisResult{
		Outcome:         OutcomeOK,
		Summary:         ingested.Summary,
		Requisitions:    added,
		AtRiskCount:     len(atRisk),
		DroppedLines:    ingested.DroppedLines,
		UnknownProducts: ingested.UnknownProducts,
	}, nil
}

var errSuperseded = errors.New("análisis reemplazado")

// begin registra la solicitud como la más reciente y cancela la anterior.
func (uc *ReplenishmentUseCase) begin(ctx context.Context) (context.Context, uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.inFlight != nil {
		uc.inFlight()
	}
	uc.latest++
	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	uc.inFlight = cancel
	return callCtx, uc.latest
}

func (uc *ReplenishmentUseCase) finish(ticket uint64) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.latest == ticket && uc.inFlight != nil {
		uc.inFlight()
		uc.inFlight = nil
	}
}

func (uc *ReplenishmentUseCase) superseded(ticket uint64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.latest != ticket
}

// commit agrega las requisiciones solo si la solicitud sigue siendo la más reciente.
// Se mantiene uc.mu durante el append para que ninguna solicitud nueva se cuele entre la
// verificación y la escritura.
func (uc *ReplenishmentUseCase) commit(ctx context.Context, ticket uint64, drafts []entity.PurchaseRequisition) ([]entity.PurchaseRequisition, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.latest != ticket {
		return nil, errSuperseded
	}
	if len(drafts) == 0 {
		return []entity.PurchaseRequisition{}, nil
	}
	return uc.store.AddRequisitions(ctx, drafts)
}

func buildRequest(atRisk []entity.Product, suppliers []entity.Supplier, healthy int) ports.AnalysisRequest {
	req := ports.AnalysisRequest{
		Products:     make([]ports.AnalysisProduct, 0, len(atRisk)),
		Suppliers:    make([]ports.AnalysisSupplier, 0, len(suppliers)),
		HealthyCount: healthy,
	}
	for _, p := range atRisk {
		req.Products = append(req.Products, ports.AnalysisProduct{
			ID:           p.ID,
			Name:         p.Name,
			StockLevel:   p.StockLevel,
			ReorderPoint: p.ReorderPoint,
			SupplierID:   p.SupplierID,
		})
	}
	for _, s := range suppliers {
		req.Suppliers = append(req.Suppliers, ports.AnalysisSupplier{ID: s.ID, Name: s.Name})
	}
	return req
}
