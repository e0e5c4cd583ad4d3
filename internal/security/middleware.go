package security

import (
	"os"

	"github.com/gofiber/fiber/v2"
)

// APIKeyGuard authenticates player traffic and pins the caller's
// identity into locals. Dev mode skips the key check but still
// requires the identity header.
func APIKeyGuard(devMode bool) fiber.Handler {
	apiKey := os.Getenv("API_KEY")

	return func(c *fiber.Ctx) error {
		if !devMode && c.Get("X-API-Key") != apiKey {
			return c.Status(401).JSON(fiber.Map{"error": "unauthorized"})
		}
		player := c.Get("X-Player")
		if player == "" {
			return c.Status(401).JSON(fiber.Map{"error": "missing player identity"})
		}
		c.Locals("player", player)
		return c.Next()
	}
}

func AdminGuard() fiber.Handler {
	admin := os.Getenv("ADMIN_TOKEN")

	return func(c *fiber.Ctx) error {
		if c.Get("X-Admin-Token") != admin {
			return c.Status(403).JSON(fiber.Map{"error": "forbidden"})
		}
		return c.Next()
	}
}
