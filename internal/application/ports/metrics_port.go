package ports

import "time"

// WorkflowMetrics puerto de métricas del flujo de compras.
type WorkflowMetrics interface {
	OrderCreated()
	OrderStatusChanged(status string)
	ReceiptLineSkipped()
	RequisitionsIngested(n int)
	AnalysisCompleted(outcome string, elapsed time.Duration)
}

// NopMetrics descarta todas las métricas (tests, herramientas de línea de comandos).
type NopMetrics struct{}

func (NopMetrics) OrderCreated() {}
func (NopMetrics) OrderStatusChanged(string) {}
func (NopMetrics) ReceiptLineSkipped() {}
func (NopMetrics) RequisitionsIngested(int) {}
func (NopMetrics) AnalysisCompleted(string, time.Duration) {}
