// handlers/game.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"versusfut/services"
)

type gameHandler struct {
	ledger *services.LedgerService
}

func SetupGameRoutes(app *fiber.App, ledger *services.LedgerService, owner fiber.Handler) {
	h := &gameHandler{ledger: ledger}

	app.Get("/internal-matches/:id/games", h.list)
	app.Get("/internal-matches/:id/summary", h.summary)

	app.Post("/internal-matches/:id/games", owner, h.add)
	app.Post("/internal-matches/:id/games/random", owner, h.addRandom)
	app.Post("/games/:game_id/start", owner, h.start)
	app.Post("/games/:game_id/result", owner, h.result)
}

func (h *gameHandler) list(c *fiber.Ctx) error {
	games, err := h.ledger.ListGames(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"games": games})
}

func (h *gameHandler) summary(c *fiber.Ctx) error {
	sum, err := h.ledger.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(sum)
}

func (h *gameHandler) add(c *fiber.Ctx) error {
	var body struct {
		TeamAID string `json:"team_a_id"`
		TeamBID string `json:"team_b_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(err)
	}
	g, err := h.ledger.AddGame(c.UserContext(), c.Params("id"), body.TeamAID, body.TeamBID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(g)
}

func (h *gameHandler) addRandom(c *fiber.Ctx) error {
	g, err := h.ledger.AddRandomGame(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(g)
}

func (h *gameHandler) start(c *fiber.Ctx) error {
	g, err := h.ledger.StartGame(c.UserContext(), c.Params("game_id"))
	if err != nil {
		return err
	}
	return c.JSON(g)
}

func (h *gameHandler) result(c *fiber.Ctx) error {
	var in services.ResultInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}
	g, lines, err := h.ledger.RecordResult(c.UserContext(), c.Params("game_id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"game": g, "stats": lines})
}
