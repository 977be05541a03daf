package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// VariantHandler maneja las peticiones HTTP de variantes de unidad (protegido).
type VariantHandler struct {
	uc *catalog.VariantUseCase
}

// NewVariantHandler construye el handler.
func NewVariantHandler(uc *catalog.VariantUseCase) *VariantHandler {
	return &VariantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear variante de un producto de modo unit
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVariantRequest  true  "product_id, presentation, sku, price, stock inicial, tax_id"
// @Success      201   {object}  dto.VariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/variants [post]
func (h *VariantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	v, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(v)
}

// List godoc
// @Summary      Listar variantes
// @Tags         variants
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "filtrar por producto"
// @Param        low_stock     query  bool    false  "stock <= min_stock"
// @Param        out_of_stock  query  bool    false  "stock = 0"
// @Param        in_stock      query  bool    false  "stock > 0"
// @Param        on_sale       query  bool    false  "con sale_price"
// @Param        search        query  string  false  "búsqueda por presentación o SKU"
// @Success      200  {array}  dto.VariantResponse
// @Router       /api/variants [get]
func (h *VariantHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	filter := repository.VariantFilter{
		ProductID:      c.Query("product_id"),
		LowStockOnly:   c.QueryBool("low_stock"),
		OutOfStockOnly: c.QueryBool("out_of_stock"),
		InStockOnly:    c.QueryBool("in_stock"),
		OnSaleOnly:     c.QueryBool("on_sale"),
		Search:         c.Query("search"),
		Limit:          page.Limit,
		Offset:         page.Offset,
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener una variante por ID
// @Tags         variants
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la variante"
// @Success      200  {object}  dto.VariantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/variants/{id} [get]
func (h *VariantHandler) GetByID(c *fiber.Ctx) error {
	v, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// Update godoc
// @Summary      Actualizar una variante (el stock solo muta vía movimientos y ventas)
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la variante"
// @Param        body  body  dto.UpdateVariantRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.VariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/variants/{id} [put]
func (h *VariantHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	v, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(v)
}

// Delete godoc
// @Summary      Eliminar una variante sin ventas ni movimientos
// @Tags         variants
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la variante"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/variants/{id} [delete]
func (h *VariantHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
