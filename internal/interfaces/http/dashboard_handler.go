package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/algasur/algas-api/internal/application/dashboard"
	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/infrastructure/pdf"
)

// DashboardHandler expone el resumen ejecutivo y su exportación a PDF.
type DashboardHandler struct {
	uc  *dashboard.ResumenUseCase
	gen *pdf.MarotoReporteGenerator
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.ResumenUseCase, gen *pdf.MarotoReporteGenerator) *DashboardHandler {
	return &DashboardHandler{uc: uc, gen: gen}
}

// Resumen godoc
// @Summary      Resumen ejecutivo del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResumenDTO
// @Router       /api/dashboard/resumen [get]
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.GetResumen(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ReportePDF godoc
// @Summary      Reporte ejecutivo en PDF
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/dashboard/reporte.pdf [get]
func (h *DashboardHandler) ReportePDF(c *fiber.Ctx) error {
	resumen, err := h.uc.GetResumen(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	bytes, err := h.gen.GenerarReportePDF(c.Context(), resumen, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ejecutivo.pdf"`)
	return c.Send(bytes)
}
