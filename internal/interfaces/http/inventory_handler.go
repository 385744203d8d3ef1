package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/inventory"
	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
)

// InventoryHandler maneja el historial de movimientos de stock (protegido).
type InventoryHandler struct {
	uc        *inventory.LedgerUseCase
	renderers map[string]inventory.MovementRenderer
}

// NewInventoryHandler construye el handler. renderers se indexa por formato (pdf, csv).
func NewInventoryHandler(uc *inventory.LedgerUseCase, renderers map[string]inventory.MovementRenderer) *InventoryHandler {
	return &InventoryHandler{uc: uc, renderers: renderers}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Una entrada suma y una salida resta la cantidad al stock del producto, en la misma transacción.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Llave para reintentos seguros"
// @Param        body             body    dto.RecordMovementRequest  true   "product_id, type (entrada|salida), quantity, description"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.RecordMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	m, err := h.uc.GetMovement(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inventory.ToMovementResponse(m))
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Filtros opcionales combinados; orden del más reciente al más antiguo.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        date_from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to     query  string  false  "Hasta, día incluido (YYYY-MM-DD)"
// @Param        user_id     query  int     false  "Usuario"
// @Param        product_id  query  int     false  "Producto"
// @Param        type        query  string  false  "entrada | salida"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, validation.Field("query", "invalid"))
	}
	out, err := h.uc.ListMovementsFromRequest(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportMovements godoc
// @Summary      Exportar movimientos
// @Description  Mismo filtro que el historial; format=pdf (por defecto) o csv.
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Produce      text/csv
// @Param        format      query  string  false  "pdf | csv"
// @Param        date_from   query  string  false  "Desde (YYYY-MM-DD)"
// @Param        date_to     query  string  false  "Hasta, día incluido (YYYY-MM-DD)"
// @Param        user_id     query  int     false  "Usuario"
// @Param        product_id  query  int     false  "Producto"
// @Param        type        query  string  false  "entrada | salida"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/export [get]
func (h *InventoryHandler) ExportMovements(c *fiber.Ctx) error {
	format := c.Query("format", inventory.ExportFormatPDF)
	renderer, ok := h.renderers[format]
	if !ok {
		return respondError(c, validation.Field("format", "oneof"))
	}
	var in dto.MovementFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, validation.Field("query", "invalid"))
	}
	data, err := h.uc.ExportMovements(c.UserContext(), in, renderer)
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("movimientos-%s.%s", time.Now().Format("20060102-150405"), renderer.FileExtension())
	c.Set(fiber.HeaderContentType, renderer.ContentType())
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento
// @Description  Borra el registro del historial. El stock del producto no se revierte.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.DeleteMovement(c.UserContext(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "movimiento eliminado"})
}
