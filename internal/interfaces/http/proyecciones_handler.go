package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/application/proyecciones"
)

// ProyeccionesHandler dispara el batch de actualización de proyecciones.
type ProyeccionesHandler struct {
	uc *proyecciones.GenerarUseCase
}

// NewProyeccionesHandler construye el handler.
func NewProyeccionesHandler(uc *proyecciones.GenerarUseCase) *ProyeccionesHandler {
	return &ProyeccionesHandler{uc: uc}
}

// ResultadoResponse resumen de la corrida del batch.
type ResultadoResponse struct {
	EspeciesProcesadas int `json:"especies_procesadas"`
	EspeciesOmitidas   int `json:"especies_omitidas"`
	PuntosGuardados    int `json:"puntos_guardados"`
}

// Generar godoc
// @Summary      Actualizar proyecciones de producción
// @Tags         proyecciones
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  ResultadoResponse
// @Router       /api/proyecciones/generar [post]
func (h *ProyeccionesHandler) Generar(c *fiber.Ctx) error {
	res, err := h.uc.Generar(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(ResultadoResponse{
		EspeciesProcesadas: res.EspeciesProcesadas,
		EspeciesOmitidas:   res.EspeciesOmitidas,
		PuntosGuardados:    res.PuntosGuardados,
	})
}
