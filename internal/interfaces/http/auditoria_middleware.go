package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/algasur/algas-api/pkg/logger"
)

// registrador es el contrato mínimo que necesita el middleware de auditoría.
// Lo implementa *usecase.AuditoriaUseCase.
type registrador interface {
	Registrar(username, accion, modulo, detalle string) error
}

// esEscritura indica si el método HTTP modifica estado.
func esEscritura(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}

// Auditar devuelve un middleware Fiber que registra la acción en el log de
// auditoría DESPUÉS de ejecutar el handler, y solo si el método modifica
// estado y la respuesta fue exitosa (2xx/3xx). Una operación rechazada por
// validación, permiso o error nunca genera entrada.
//
// detalle se evalúa de forma perezosa tras el handler, con acceso al ctx ya
// resuelto (params, status). Un fallo al registrar no altera la respuesta:
// se loggea y se sigue.
func Auditar(accion, modulo string, reg registrador, log *logger.Logger, detalle func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if !esEscritura(c.Method()) || status < 200 || status >= 400 {
			return nil
		}

		det := ""
		if detalle != nil {
			det = detalle(c)
		}
		if regErr := reg.Registrar(GetUsername(c), accion, modulo, det); regErr != nil {
			log.Warn().Err(regErr).
				Str("accion", accion).
				Str("modulo", modulo).
				Msg("no se pudo registrar auditoría")
		}
		return nil
	}
}
