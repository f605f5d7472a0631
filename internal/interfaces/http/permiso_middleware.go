package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/algasur/algas-api/internal/application/access"
	"github.com/algasur/algas-api/internal/application/dto"
)

// RequierePermiso devuelve un middleware Fiber que evalúa el permiso nombrado
// contra el rol actual del usuario. Debe usarse DESPUÉS de AuthMiddleware
// (necesita LocalUsername).
//
// Comportamiento:
//   - 403 Forbidden → permiso denegado; el cuerpo incluye el redirect
//     sugerido según el nivel del rol.
//   - 503 Service Unavailable → fallo de infraestructura al leer usuario/rol;
//     un error de DB nunca se traduce en autorización.
//   - Una sesión cuyo usuario fue eliminado o desactivado se trata igual
//     que una petición sin sesión: redirect a /login.
func RequierePermiso(permiso string, evaluator *access.Evaluator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		username := GetUsername(c)

		decision, err := evaluator.Evaluate(username, permiso)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISO_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}

		if !decision.Autorizado {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:     "FORBIDDEN",
				Message:  "no tiene el permiso '" + permiso + "'",
				Redirect: decision.Redirect,
			})
		}

		return c.Next()
	}
}
