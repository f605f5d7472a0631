package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/application/usecase"
	"github.com/algasur/algas-api/internal/domain"
)

// EspecieHandler maneja las peticiones HTTP para Especie (protegido).
type EspecieHandler struct {
	uc *usecase.EspecieUseCase
}

// NewEspecieHandler construye el handler.
func NewEspecieHandler(uc *usecase.EspecieUseCase) *EspecieHandler {
	return &EspecieHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar especie
// @Tags         especies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEspecieRequest  true  "Datos de la especie"
// @Success      201   {object}  dto.EspecieResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/especies [post]
func (h *EspecieHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEspecieRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una especie con ese nombre"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de especie inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener especie por ID
// @Tags         especies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la especie"
// @Success      200  {object}  dto.EspecieResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/especies/{id} [get]
func (h *EspecieHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "especie no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar especies
// @Tags         especies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EspecieListResponse
// @Router       /api/especies [get]
func (h *EspecieHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar especie
// @Tags         especies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la especie"
// @Param        body  body  dto.UpdateEspecieRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.EspecieResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/especies/{id} [put]
func (h *EspecieHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateEspecieRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "especie no encontrada"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una especie con ese nombre"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar especie
// @Tags         especies
// @Security     Bearer
// @Param        id  path  string  true  "ID de la especie"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/especies/{id} [delete]
func (h *EspecieHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "especie no encontrada"})
		}
		if err == domain.ErrEnReferencia {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EN_REFERENCIA", Message: "la especie tiene movimientos o entregas asociadas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
