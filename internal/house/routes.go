package house

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rollhouse/internal/engine"
)

func isOctet(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), "application/octet-stream")
}

func player(c *fiber.Ctx) string {
	return c.Locals("player").(string)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, engine.ErrUnknownGame), errors.Is(err, engine.ErrNothingToClaim):
		return 404
	case errors.Is(err, engine.ErrInsufficientFunds):
		return 402
	case errors.Is(err, engine.ErrAlreadySettled), errors.Is(err, engine.ErrStaleEpoch),
		errors.Is(err, engine.ErrUnsettledBets), errors.Is(err, engine.ErrUnclaimedWinnings),
		errors.Is(err, engine.ErrNotHalted):
		return 409
	case errors.Is(err, engine.ErrRoundNotReady), errors.Is(err, engine.ErrRoundNotExpired):
		return 425
	case errors.Is(err, engine.ErrRoundExpired), errors.Is(err, engine.ErrRoundNotActive):
		return 410
	case errors.Is(err, engine.ErrInsolventHouse), errors.Is(err, engine.ErrGameHalted):
		return 503
	case errors.Is(err, engine.ErrInvalidBet), errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrBetTooSmall), errors.Is(err, engine.ErrBetTooLarge),
		errors.Is(err, engine.ErrUnknownBetKind), errors.Is(err, engine.ErrEntropyUnusable),
		errors.Is(err, engine.ErrOverflow):
		return 422
	case errors.Is(err, ErrBadPayload):
		return 400
	}
	return 500
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
}

// roundParam reads the round id from the path; a binary body, when
// present, must agree with it.
func roundParam(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, ErrBadPayload
	}
	if isOctet(c) && len(c.Body()) > 0 {
		wire, err := DecodeRoundID(c.Body())
		if err != nil {
			return 0, err
		}
		if wire != id {
			return 0, ErrBadPayload
		}
	}
	return id, nil
}

// gameParam reads the target game from the JSON body or query string,
// defaulting to craps.
func gameParam(c *fiber.Ctx) engine.GameID {
	if !isOctet(c) {
		type Req struct {
			Game string `json:"game"`
		}
		var body Req
		c.BodyParser(&body)
		if body.Game != "" {
			return engine.GameID(body.Game)
		}
	}
	return engine.GameID(c.Query("game", "craps"))
}

func settleResponse(c *fiber.Ctx, res *engine.SettleResult) error {
	resp := fiber.Map{
		"round":       res.Round,
		"paid":        res.Paid,
		"forfeited":   res.Forfeited,
		"refunded":    res.Refunded,
		"net":         res.PlayerNet(),
		"point":       res.Point,
		"epoch_ended": res.EpochEnded,
		"no_bets":     res.NoBets,
	}
	if res.Outcome != nil {
		resp["dice"] = []uint8{res.Outcome.Die1, res.Outcome.Die2}
		resp["sum"] = res.Outcome.Sum
		resp["hard"] = res.Outcome.Hard
	}
	return c.JSON(resp)
}

func RegisterRoutes(r fiber.Router, s *Service) {

	r.Post("/bets", func(c *fiber.Ctx) error {
		var (
			game   engine.GameID
			kind   engine.BetKind
			aux    uint8
			amount uint64
		)
		if isOctet(c) {
			k, a, amt, err := DecodePlaceBet(c.Body())
			if err != nil {
				return fail(c, err)
			}
			game = engine.GameID(c.Query("game", "craps"))
			kind, aux, amount = k, a, amt
		} else {
			type Req struct {
				Game   string `json:"game"`
				Kind   uint8  `json:"kind"`
				Aux    uint8  `json:"aux"`
				Amount uint64 `json:"amount"`
			}
			var body Req
			if err := c.BodyParser(&body); err != nil {
				return c.SendStatus(400)
			}
			game = engine.GameID(body.Game)
			kind, aux, amount = engine.BetKind(body.Kind), body.Aux, body.Amount
		}

		receipt, err := s.PlaceBet(c.Context(), game, player(c), kind, aux, amount)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(receipt)
	})

	r.Post("/rounds/:id/deal", func(c *fiber.Ctx) error {
		id, err := roundParam(c)
		if err != nil {
			return fail(c, err)
		}
		if err := s.Deal(c.Context(), gameParam(c), player(c), id); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "awaiting_settlement", "round": id})
	})

	r.Post("/rounds/:id/settle", func(c *fiber.Ctx) error {
		id, err := roundParam(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := s.Settle(c.Context(), gameParam(c), player(c), id)
		if err != nil {
			return fail(c, err)
		}
		return settleResponse(c, res)
	})

	r.Post("/rounds/:id/force-settle", func(c *fiber.Ctx) error {
		id, err := roundParam(c)
		if err != nil {
			return fail(c, err)
		}
		res, err := s.ForceSettle(c.Context(), gameParam(c), player(c), id, player(c))
		if err != nil {
			return fail(c, err)
		}
		return settleResponse(c, res)
	})

	r.Post("/claims", func(c *fiber.Ctx) error {
		amount, err := s.Claim(c.Context(), gameParam(c), player(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "claimed", "amount": amount})
	})

	r.Post("/claims/debt", func(c *fiber.Ctx) error {
		amount, err := s.ClaimDebt(c.Context(), gameParam(c), player(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "claimed", "amount": amount})
	})

	r.Get("/games", func(c *fiber.Ctx) error {
		views, err := s.Games()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(views)
	})

	r.Get("/games/:id/position", func(c *fiber.Ctx) error {
		v, err := s.Position(engine.GameID(c.Params("id")), player(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(v)
	})

	r.Get("/rounds/current", func(c *fiber.Ctx) error {
		v, err := s.CurrentRound()
		if errors.Is(err, engine.ErrRoundNotActive) {
			return c.Status(404).JSON(fiber.Map{"error": "no round open"})
		}
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(v)
	})
}

func RegisterAdminRoutes(r fiber.Router, s *Service) {

	r.Post("/fund", func(c *fiber.Ctx) error {
		var (
			game   engine.GameID
			amount uint64
		)
		if isOctet(c) {
			amt, err := DecodeAmount(c.Body())
			if err != nil {
				return fail(c, err)
			}
			game = engine.GameID(c.Query("game", "craps"))
			amount = amt
		} else {
			type Req struct {
				Game   string `json:"game"`
				Amount uint64 `json:"amount"`
			}
			var body Req
			if err := c.BodyParser(&body); err != nil {
				return c.SendStatus(400)
			}
			game = engine.GameID(body.Game)
			amount = body.Amount
		}

		if err := s.FundHouse(c.Context(), game, amount, "admin"); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "funded", "game": game, "amount": amount})
	})

	r.Post("/resolve", func(c *fiber.Ctx) error {
		type Req struct {
			Game   string `json:"game"`
			Player string `json:"player"`
			Round  uint64 `json:"round"`
		}
		var body Req
		if err := c.BodyParser(&body); err != nil {
			return c.SendStatus(400)
		}
		res, err := s.ResolveInsolvency(c.Context(), engine.GameID(body.Game), body.Player, body.Round, "admin")
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "resolved", "paid": res.Paid, "debt": res.Debt})
	})

	r.Get("/journal/:game", func(c *fiber.Ctx) error {
		entries, err := s.Journal(engine.GameID(c.Params("game")), c.QueryInt("limit", 50))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(entries)
	})

	r.Get("/audit", func(c *fiber.Ctx) error {
		rows, err := s.AuditTrail(c.QueryInt("limit", 50))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(rows)
	})
}
