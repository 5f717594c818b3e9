package dto

// AnalysisResponse respuesta de POST /api/replenishment/analyze.
// Outcome: OK, HEALTHY, NO_PRODUCTS, PROVIDER_FAILURE, PROVIDER_TIMEOUT o SUPERSEDED.
type AnalysisResponse struct {
	Outcome         string                `json:"outcome"`
	Summary         string                `json:"summary"`
	Requisitions    []RequisitionResponse `json:"requisitions"`
	AtRiskCount     int                   `json:"at_risk_count"`
	DroppedLines    int                   `json:"dropped_lines"`
	UnknownProducts int                   `json:"unknown_products"`
}
