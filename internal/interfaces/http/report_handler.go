package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-movimientos/internal/application/audit"
	"github.com/jhoicas/inventario-movimientos/internal/application/dto"
	"github.com/jhoicas/inventario-movimientos/internal/application/usecase"
	"github.com/jhoicas/inventario-movimientos/internal/application/validation"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/storage"
)

// ImageUploader guarda imágenes de producto y devuelve su ruta pública.
type ImageUploader interface {
	SaveImage(originalName string, size int64, r io.Reader) (*storage.Stored, error)
}

// ReportHandler reportes, bitácora y subida de imágenes.
type ReportHandler struct {
	reports  *usecase.ReportUseCase
	audit    *audit.UseCase
	uploader ImageUploader
}

// NewReportHandler construye el handler.
func NewReportHandler(reports *usecase.ReportUseCase, auditUC *audit.UseCase, uploader ImageUploader) *ReportHandler {
	return &ReportHandler{reports: reports, audit: auditUC, uploader: uploader}
}

// Summary godoc
// @Summary      Resumen de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.reports.Summary(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos bajo stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.reports.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAudit godoc
// @Summary      Bitácora de acciones
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        user_id  query  int  false  "Usuario"
// @Param        limit    query  int  false  "Límite"  default(50)
// @Param        offset   query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.AuditListResponse
// @Router       /api/audit [get]
func (h *ReportHandler) ListAudit(c *fiber.Ctx) error {
	var in dto.AuditFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return respondError(c, validation.Field("query", "invalid"))
	}
	out, err := h.audit.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadImage godoc
// @Summary      Subir imagen de producto
// @Tags         products
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Param        imagen  formData  file  true  "Imagen (jpg, png, gif, webp)"
// @Success      201  {object}  dto.UploadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/upload [post]
func (h *ReportHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("imagen")
	if err != nil {
		return respondError(c, validation.Field("imagen", "required"))
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()

	stored, err := h.uploader.SaveImage(fh.Filename, fh.Size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{URL: stored.URL, Filename: stored.Filename})
}
