package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nexus-procurement/internal/application/dto"
	"github.com/jhoicas/nexus-procurement/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	uc   *usecase.ProductUseCase
	seed *usecase.SeedUseCase
}

// NewProductHandler construye el handler. seed puede ser nil (sin generación de inventario).
func NewProductHandler(uc *usecase.ProductUseCase, seed *usecase.SeedUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, seed: seed}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.uc.List())
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.SKU == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sku y name son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Seed godoc
// @Summary      Reemplazar catálogo y proveedores
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SeedRequest  true  "Productos y proveedores"
// @Success      200   {object}  dto.SeedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/seed [post]
func (h *ProductHandler) Seed(c *fiber.Ctx) error {
	var in dto.SeedRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Seed(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Generate godoc
// @Summary      Sembrar inventario de ejemplo generado por el proveedor de análisis
// @Tags         products
// @Produce      json
// @Success      200  {object}  dto.SeedResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/products/seed/generate [post]
func (h *ProductHandler) Generate(c *fiber.Ctx) error {
	if h.seed == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "PROVIDER_NOT_CONFIGURED", Message: "generación no disponible"})
	}
	products, suppliers, err := h.seed.GenerateAndSeed(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SeedResponse{Products: products, Suppliers: suppliers})
}
