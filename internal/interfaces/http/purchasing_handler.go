package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/application/usecase"
)

// PurchasingHandler requisiciones y órdenes de compra.
type PurchasingHandler struct {
	uc *usecase.PurchasingUseCase
}

// NewPurchasingHandler construye el handler.
func NewPurchasingHandler(uc *usecase.PurchasingUseCase) *PurchasingHandler {
	return &PurchasingHandler{uc: uc}
}

// ListRequisitions godoc
// @Summary      Listar requisiciones
// @Tags         requisitions
// @Produce      json
// @Param        status  query  string  false  "PENDING, CONVERTED o REJECTED"
// @Success      200     {array}  dto.RequisitionResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/requisitions [get]
func (h *PurchasingHandler) ListRequisitions(c *fiber.Ctx) error {
	out, err := h.uc.ListRequisitions(c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Convert godoc
// @Summary      Convertir requisición en orden de compra
// @Tags         requisitions
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la requisición"
// @Param        body  body  dto.ConvertRequisitionRequest  true  "Proveedor elegido"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/convert [post]
func (h *PurchasingHandler) Convert(c *fiber.Ctx) error {
	var in dto.ConvertRequisitionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Convert(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Reject godoc
// @Summary      Rechazar requisición
// @Tags         requisitions
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.RequisitionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/reject [post]
func (h *PurchasingHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DefaultSupplier godoc
// @Summary      Proveedor preseleccionado para la conversión
// @Tags         requisitions
// @Produce      json
// @Param        id   path  string  true  "ID de la requisición"
// @Success      200  {object}  dto.DefaultSupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requisitions/{id}/default-supplier [get]
func (h *PurchasingHandler) DefaultSupplier(c *fiber.Ctx) error {
	out, err := h.uc.DefaultSupplier(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         orders
// @Produce      json
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/orders [get]
func (h *PurchasingHandler) ListOrders(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListOrders())
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden (DRAFT→ORDERED→RECEIVED)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *PurchasingHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.SetOrderStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la orden en PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/pdf [get]
func (h *PurchasingHandler) PDF(c *fiber.Ctx) error {
	data, number, err := h.uc.OrderPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, number))
	return c.Send(data)
}
