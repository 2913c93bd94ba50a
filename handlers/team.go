package handlers

import (
	"github.com/gofiber/fiber/v2"

	"versusfut/services"
)

type teamHandler struct {
	stats   *services.StatsService
	players *services.PlayerService
}

func SetupTeamRoutes(app *fiber.App, stats *services.StatsService, players *services.PlayerService, owner fiber.Handler) {
	h := &teamHandler{stats: stats, players: players}

	app.Get("/teams/:team_id/season-stats", h.season)
	app.Get("/teams/:team_id/players", h.listPlayers)
	app.Put("/teams/:team_id/players/:player_id", owner, h.upsertPlayer)
}

// season accepts optional ?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *teamHandler) season(c *fiber.Ctx) error {
	out, err := h.stats.TeamSeason(c.UserContext(), c.Params("team_id"), c.Query("from"), c.Query("to"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *teamHandler) listPlayers(c *fiber.Ctx) error {
	players, err := h.players.ListByTeam(c.UserContext(), c.Params("team_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"players": players})
}

func (h *teamHandler) upsertPlayer(c *fiber.Ctx) error {
	var in services.PlayerInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}
	p, err := h.players.Upsert(c.UserContext(), c.Params("team_id"), c.Params("player_id"), in)
	if err != nil {
		return err
	}
	return c.JSON(p)
}
