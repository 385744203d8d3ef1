package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
)

// CatalogHandler categorías y ubicaciones de productos.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	locations  *usecase.LocationUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories *usecase.CategoryUseCase, locations *usecase.LocationUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, locations: locations}
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.categories.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CatalogEntryRequest  true  "name, description"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CatalogEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.categories.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la categoría"
// @Param        body  body  dto.CatalogEntryRequest  true  "name, description"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CatalogEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.categories.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría
// @Description  Los productos de la categoría quedan sin categoría.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.categories.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "categoría eliminada"})
}

// ListLocations godoc
// @Summary      Listar ubicaciones
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationResponse
// @Router       /api/locations [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	out, err := h.locations.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CatalogEntryRequest  true  "name, description"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CatalogEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.locations.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLocation godoc
// @Summary      Actualizar ubicación
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "ID de la ubicación"
// @Param        body  body  dto.CatalogEntryRequest  true  "name, description"
// @Success      200   {object}  dto.LocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *CatalogHandler) UpdateLocation(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CatalogEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.locations.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteLocation godoc
// @Summary      Eliminar ubicación
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la ubicación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *CatalogHandler) DeleteLocation(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.locations.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "ubicación eliminada"})
}
