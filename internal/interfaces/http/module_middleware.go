package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estatedesk-api/internal/application/dto"
)

// passwordChecker es el contrato mínimo que necesita el middleware del portal.
// Lo implementa *auth.AuthUseCase.
type passwordChecker interface {
	MustChangePassword(ctx context.Context, userID int64) (bool, error)
}

// RequirePasswordChanged bloquea el portal mientras la cuenta use la contraseña temporal.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID).
//
// Comportamiento:
//   - 403 Forbidden → contraseña temporal sin cambiar.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - 401 si no hay user_id en el contexto.
func RequirePasswordChanged(checker passwordChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "user_id no encontrado en el token",
			})
		}

		must, err := checker.MustChangePassword(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PASSWORD_CHECK_FAILED",
				Message: "no se pudo verificar la cuenta, intente más tarde",
			})
		}

		if must {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "PASSWORD_CHANGE_REQUIRED",
				Message: "debe cambiar la contraseña temporal antes de usar el portal",
			})
		}

		return c.Next()
	}
}
