package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/labtrack-api/internal/application/dto"
)

// LocalOrgID clave en c.Locals() donde el middleware deja la organización.
const LocalOrgID = "org_id"

// ScopeMiddleware exige el header X-Org-ID y lo deja en el contexto. La
// autenticación real (sesión, tokens) vive en un gateway por delante de
// esta API; aquí el org es solo el ámbito de los datos.
func ScopeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID := c.Get("X-Org-ID")
		if orgID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "header X-Org-ID requerido",
			})
		}
		c.Locals(LocalOrgID, orgID)
		return c.Next()
	}
}

// GetOrgID devuelve la organización puesta por ScopeMiddleware, o "" si no hay.
func GetOrgID(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalOrgID).(string); ok {
		return v
	}
	return ""
}
