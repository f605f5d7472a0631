package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/application/usecase"
)

// AuditoriaHandler expone la consulta del registro de auditoría.
type AuditoriaHandler struct {
	uc *usecase.AuditoriaUseCase
}

// NewAuditoriaHandler construye el handler.
func NewAuditoriaHandler(uc *usecase.AuditoriaUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{uc: uc}
}

// List godoc
// @Summary      Consultar registro de auditoría
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.AuditoriaListResponse
// @Router       /api/auditoria [get]
func (h *AuditoriaHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
