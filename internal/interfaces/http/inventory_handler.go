package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/application/inventory"
	"github.com/jhoicas/nexus-procurement/internal/application/usecase"
)

// InventoryHandler análisis de reposición asistido.
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment}
}

// Analyze godoc
// @Summary      Analizar inventario y generar requisiciones sugeridas
// @Description  Los fallos del proveedor no son errores HTTP: se informan en outcome con un resumen de respaldo.
// @Tags         replenishment
// @Produce      json
// @Success      200  {object}  dto.AnalysisResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/replenishment/analyze [post]
func (h *InventoryHandler) Analyze(c *fiber.Ctx) error {
	res, err := h.replenishment.Analyze(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	reqs := make([]dto.RequisitionResponse, 0, len(res.Requisitions))
	for _, r := range res.Requisitions {
		reqs = append(reqs, usecase.ToRequisitionResponse(r, nil))
	}
	return c.JSON(dto.AnalysisResponse{
		Outcome:         string(res.Outcome),
		Summary:         res.Summary,
		Requisitions:    reqs,
		AtRiskCount:     res.AtRiskCount,
		DroppedLines:    res.DroppedLines,
		UnknownProducts: res.UnknownProducts,
	})
}
