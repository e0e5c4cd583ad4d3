package leaderboard

import (
	"github.com/gofiber/fiber/v2"

	"rollhouse/internal/event"
	"rollhouse/internal/house"
)

// RegisterConsumers accrues net results as settlements land.
func RegisterConsumers(bus *event.Bus, board *Board) {
	bus.Subscribe(event.EventRoundSettled, func(payload interface{}) {
		ev, ok := payload.(*house.SettleEvent)
		if !ok {
			return
		}
		if ev.Net != 0 {
			board.Record(ev.Player, ev.Net)
		}
	})
}

func RegisterRoutes(r fiber.Router, board *Board) {

	r.Get("/leaderboard", func(c *fiber.Ctx) error {
		n := c.QueryInt("n", 20)
		if n <= 0 || n > 100 {
			n = 20
		}
		return c.JSON(board.Top(n))
	})
}
