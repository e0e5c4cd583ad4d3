package vault

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"rollhouse/internal/audit"
)

func RegisterRoutes(app fiber.Router, service *Service) {

	app.Get("/wallet/balance/:player", func(c *fiber.Ctx) error {
		b, err := service.Balance(c.Params("player"))
		if err != nil {
			return c.Status(404).JSON(fiber.Map{"error": "not found"})
		}
		return c.JSON(fiber.Map{"balance": b})
	})
}

// RegisterAdminRoutes exposes the operator faucet.
func RegisterAdminRoutes(app fiber.Router, service *Service, auditService *audit.Service) {

	app.Post("/wallet/credit", func(c *fiber.Ctx) error {
		type Req struct {
			Player string `json:"player"`
			Amount uint64 `json:"amount"`
		}
		var r Req
		c.BodyParser(&r)
		if r.Player == "" || r.Amount == 0 {
			return c.Status(400).JSON(fiber.Map{"error": "player and amount required"})
		}

		tx, err := service.db.Begin()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		defer tx.Rollback()
		if err := service.CreditTx(tx, r.Player, r.Amount); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		if err := tx.Commit(); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}

		auditService.Log("admin", audit.ActionWalletCredit, "", fmt.Sprintf("player=%s amount=%d", r.Player, r.Amount))
		return c.JSON(fiber.Map{"status": "credited"})
	})
}
