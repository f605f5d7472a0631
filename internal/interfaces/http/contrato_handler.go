package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/algasur/algas-api/internal/application/dto"
	"github.com/algasur/algas-api/internal/application/usecase"
	"github.com/algasur/algas-api/internal/domain"
)

// ContratoHandler maneja las peticiones HTTP para contratos y sus entregas (protegido).
type ContratoHandler struct {
	uc *usecase.ContratoUseCase
}

// NewContratoHandler construye el handler.
func NewContratoHandler(uc *usecase.ContratoUseCase) *ContratoHandler {
	return &ContratoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contrato
// @Tags         contratos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContratoRequest  true  "Datos del contrato"
// @Success      201   {object}  dto.ContratoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contratos [post]
func (h *ContratoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContratoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Cliente == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente es requerido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas o estado del contrato inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener contrato por ID
// @Tags         contratos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contrato"
// @Success      200  {object}  dto.ContratoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contratos/{id} [get]
func (h *ContratoHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar contratos
// @Tags         contratos
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ContratoListResponse
// @Router       /api/contratos [get]
func (h *ContratoHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
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

// Update godoc
// @Summary      Actualizar contrato
// @Tags         contratos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del contrato"
// @Param        body  body  dto.UpdateContratoRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ContratoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contratos/{id} [put]
func (h *ContratoHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateContratoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, GetUserID(c), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas o estado del contrato inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar contrato y sus entregas
// @Tags         contratos
// @Security     Bearer
// @Param        id  path  string  true  "ID del contrato"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contratos/{id} [delete]
func (h *ContratoHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateEntrega godoc
// @Summary      Comprometer entrega mensual
// @Tags         contratos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del contrato"
// @Param        body  body  dto.CreateEntregaRequest  true  "Datos de la entrega"
// @Success      201   {object}  dto.EntregaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/contratos/{id}/entregas [post]
func (h *ContratoHandler) CreateEntrega(c *fiber.Ctx) error {
	contratoID := c.Params("id")
	if contratoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.CreateEntregaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.EspecieID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "especie_id es requerido"})
	}
	out, err := h.uc.CreateEntrega(c.Context(), contratoID, in)
	if err != nil {
		return entregaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEntregas godoc
// @Summary      Listar entregas de un contrato
// @Tags         contratos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contrato"
// @Success      200  {object}  dto.EntregaListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contratos/{id}/entregas [get]
func (h *ContratoHandler) ListEntregas(c *fiber.Ctx) error {
	contratoID := c.Params("id")
	if contratoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListEntregas(contratoID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateEntrega godoc
// @Summary      Actualizar entrega (avance o compromiso)
// @Tags         contratos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        entregaId  path  string  true  "ID de la entrega"
// @Param        body       body  dto.UpdateEntregaRequest  true  "Datos a actualizar"
// @Success      200        {object}  dto.EntregaResponse
// @Failure      404        {object}  dto.ErrorResponse
// @Failure      422        {object}  dto.ErrorResponse
// @Router       /api/entregas/{entregaId} [put]
func (h *ContratoHandler) UpdateEntrega(c *fiber.Ctx) error {
	id := c.Params("entregaId")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "entregaId es requerido"})
	}
	var in dto.UpdateEntregaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateEntrega(c.Context(), id, in)
	if err != nil {
		return entregaError(c, err)
	}
	return c.JSON(out)
}

// DeleteEntrega godoc
// @Summary      Eliminar entrega
// @Tags         contratos
// @Security     Bearer
// @Param        entregaId  path  string  true  "ID de la entrega"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/entregas/{entregaId} [delete]
func (h *ContratoHandler) DeleteEntrega(c *fiber.Ctx) error {
	id := c.Params("entregaId")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "entregaId es requerido"})
	}
	if err := h.uc.DeleteEntrega(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "entrega no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// entregaError mapea los errores de negocio de entregas a HTTP.
func entregaError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "contrato, entrega o especie no encontrada"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "toneladas o mes de la entrega inválidos"})
	case domain.ErrStockInsuficiente:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: "no hay stock disponible para comprometer esa entrega"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
