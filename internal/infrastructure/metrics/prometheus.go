// Package metrics implementa ports.WorkflowMetrics con Prometheus y expone /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/nexus-procurement/internal/application/ports"
	"github.com/jhoicas/nexus-procurement/internal/domain/entity"
)

const namespace = "procurement"

var _ ports.WorkflowMetrics = (*Collector)(nil)

// Collector métricas del flujo de compras sobre un registro propio (no el global),
// así cada instancia y cada test arranca limpio.
type Collector struct {
	registry *prometheus.Registry

	ordersCreated       prometheus.Counter
	ordersReceived      prometheus.Counter
	orderStatusChanges  *prometheus.CounterVec
	receiptLinesSkipped prometheus.Counter
	reqsIngested        prometheus.Counter
	analysisTotal       *prometheus.CounterVec
	analysisDuration    prometheus.Histogram
	requestDuration     *prometheus.HistogramVec
}

// NewCollector registra todas las métricas, más las de proceso y runtime de Go.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Collector{
		registry: reg,
		ordersCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Órdenes de compra creadas a partir de requisiciones",
		}),
		ordersReceived: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_received_total",
			Help:      "Órdenes que llegaron a RECEIVED (stock conciliado)",
		}),
		orderStatusChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_changes_total",
			Help:      "Transiciones de estado de órdenes por estado destino",
		}, []string{"status"}),
		receiptLinesSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_lines_skipped_total",
			Help:      "Líneas recibidas cuyo producto no existe (recepción parcial)",
		}),
		reqsIngested: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requisitions_ingested_total",
			Help:      "Requisiciones agregadas por el análisis de reposición",
		}),
		analysisTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_total",
			Help:      "Ejecuciones del análisis por resultado",
		}, []string{"outcome"}),
		analysisDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duración del análisis de reposición",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (c *Collector) OrderCreated() { c.ordersCreated.Inc() }

func (c *Collector) OrderStatusChanged(status string) {
	c.orderStatusChanges.WithLabelValues(status).Inc()
	if status == string(entity.OrderReceived) {
		c.ordersReceived.Inc()
	}
}

func (c *Collector) ReceiptLineSkipped() { c.receiptLinesSkipped.Inc() }

func (c *Collector) RequisitionsIngested(n int) { c.reqsIngested.Add(float64(n)) }

func (c *Collector) AnalysisCompleted(outcome string, elapsed time.Duration) {
	c.analysisTotal.WithLabelValues(outcome).Inc()
	c.analysisDuration.Observe(elapsed.Seconds())
}

// Registry expone el registro (tests, exportadores adicionales).
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler handler HTTP estándar para /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Middleware mide la duración de cada petición. Usa la ruta registrada, no la URL, para
// no disparar la cardinalidad con IDs.
func (c *Collector) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		status := ctx.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		c.requestDuration.WithLabelValues(ctx.Method(), ctx.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
