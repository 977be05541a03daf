package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// WeightLotHandler maneja las peticiones HTTP de lotes de peso (protegido).
type WeightLotHandler struct {
	uc     *catalog.WeightLotUseCase
	ledger *inventory.LedgerUseCase
	clock  domain.Clock
}

// NewWeightLotHandler construye el handler.
func NewWeightLotHandler(uc *catalog.WeightLotUseCase, ledger *inventory.LedgerUseCase, clock domain.Clock) *WeightLotHandler {
	return &WeightLotHandler{uc: uc, ledger: ledger, clock: clock}
}

// Create godoc
// @Summary      Crear lote de un producto de modo weight
// @Tags         weight-lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWeightLotRequest  true  "product_id, initial_weight (kg), price_per_kg, expires_at"
// @Success      201   {object}  dto.WeightLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/weight-lots [post]
func (h *WeightLotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWeightLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lot, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}

// List godoc
// @Summary      Listar lotes de peso
// @Tags         weight-lots
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "filtrar por producto"
// @Param        active         query  bool    false  "solo activos"
// @Param        available      query  bool    false  "con peso disponible"
// @Param        expired        query  bool    false  "solo vencidos"
// @Param        expiring_soon  query  bool    false  "vencen dentro de 7 días"
// @Success      200  {array}  dto.WeightLotResponse
// @Router       /api/weight-lots [get]
func (h *WeightLotHandler) List(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	filter := repository.LotFilter{
		ProductID:     c.Query("product_id"),
		ActiveOnly:    c.QueryBool("active"),
		AvailableOnly: c.QueryBool("available"),
		ExpiredOnly:   c.QueryBool("expired"),
		ExpiringSoon:  c.QueryBool("expiring_soon"),
		Now:           h.clock.Now(),
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un lote por ID
// @Tags         weight-lots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.WeightLotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/weight-lots/{id} [get]
func (h *WeightLotHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lot)
}

// Update godoc
// @Summary      Actualizar un lote (los contadores de peso solo mutan vía movimientos y ventas)
// @Tags         weight-lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID del lote"
// @Param        body  body  dto.UpdateWeightLotRequest  true  "price_per_kg, expires_at, active"
// @Success      200   {object}  dto.WeightLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/weight-lots/{id} [put]
func (h *WeightLotHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWeightLotRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lot, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lot)
}

// Delete godoc
// @Summary      Eliminar un lote sin ventas ni movimientos
// @Tags         weight-lots
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/weight-lots/{id} [delete]
func (h *WeightLotHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReduceWeight godoc
// @Summary      Reducir peso disponible de un lote (merma, sin asiento en el diario)
// @Tags         weight-lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del lote"
// @Param        body  body  dto.ReduceWeightRequest  true  "weight en kg, > 0"
// @Success      200   {object}  dto.WeightLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/weight-lots/{id}/reduce-weight [post]
func (h *WeightLotHandler) ReduceWeight(c *fiber.Ctx) error {
	var in dto.ReduceWeightRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	lot, err := h.ledger.ReduceWeight(c.Context(), c.Params("id"), in.Weight)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.WeightLotResponse{
		ID:              lot.ID,
		ProductID:       lot.ProductID,
		InitialWeight:   lot.InitialWeight,
		AvailableWeight: lot.AvailableWeight,
		SoldWeight:      lot.SoldWeight(),
		PricePerKg:      lot.PricePerKg,
		ExpiresAt:       lot.ExpiresAt,
		Active:          lot.Active,
		CreatedAt:       lot.CreatedAt,
		UpdatedAt:       lot.UpdatedAt,
	})
}
