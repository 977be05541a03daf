package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del diario de inventario (protegido).
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_kind (variant|weight_lot), item_id, type (in|out|adjustment), quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.uc.ApplyMovement(c.Context(), inventory.MovementInputDTO{
		ItemKind: entity.ItemKind(in.ItemKind),
		ItemID:   in.ItemID,
		Type:     in.Type,
		Quantity: in.Quantity,
		UserID:   userID,
		Note:     in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Listar movimientos del diario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "in | out | adjustment"
// @Param        user_id    query  string  false  "filtrar por usuario"
// @Param        item_kind  query  string  false  "variant | weight_lot (requiere item_id)"
// @Param        item_id    query  string  false  "filtrar por ítem"
// @Param        date       query  string  false  "día exacto YYYY-MM-DD"
// @Param        today      query  bool    false  "solo hoy"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	movs, err := h.uc.ListMovements(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener un movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.uc.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// DeleteMovement godoc
// @Summary      Eliminar un movimiento (siempre rechazado)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	// El diario es inmutable; el caso de uso siempre devuelve error.
	return respondError(c, h.uc.DeleteMovement(c.Context(), c.Params("id")))
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ItemKind:  string(m.Item.Kind),
		ItemID:    m.Item.ID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		UserID:    m.UserID,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}
