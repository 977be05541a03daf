package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/dto"
)

// TaxHandler maneja las peticiones HTTP del catálogo de impuestos (protegido).
type TaxHandler struct {
	uc *catalog.TaxUseCase
}

// NewTaxHandler construye el handler.
func NewTaxHandler(uc *catalog.TaxUseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

// Create godoc
// @Summary      Crear impuesto
// @Tags         taxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TaxRequest  true  "name y percentage (0-100)"
// @Success      201   {object}  dto.TaxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/taxes [post]
func (h *TaxHandler) Create(c *fiber.Ctx) error {
	var in dto.TaxRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// List godoc
// @Summary      Listar impuestos
// @Tags         taxes
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "solo activos"
// @Success      200  {array}  dto.TaxResponse
// @Router       /api/taxes [get]
func (h *TaxHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.QueryBool("active"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un impuesto por ID
// @Tags         taxes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del impuesto"
// @Success      200  {object}  dto.TaxResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/taxes/{id} [get]
func (h *TaxHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

// Update godoc
// @Summary      Actualizar un impuesto
// @Tags         taxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string          true  "ID del impuesto"
// @Param        body  body  dto.TaxRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.TaxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/taxes/{id} [put]
func (h *TaxHandler) Update(c *fiber.Ctx) error {
	var in dto.TaxRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	t, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(t)
}

// Delete godoc
// @Summary      Eliminar un impuesto sin variantes asociadas
// @Tags         taxes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del impuesto"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/taxes/{id} [delete]
func (h *TaxHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
