package handlers

import (
	"github.com/gofiber/fiber/v2"

	"versusfut/services"
)

type squadHandler struct {
	squads *services.SquadService
}

func SetupSquadRoutes(app *fiber.App, squads *services.SquadService, owner fiber.Handler) {
	h := &squadHandler{squads: squads}

	app.Get("/internal-matches/:id/squads", h.list)
	app.Post("/internal-matches/:id/squads/preview", owner, h.preview)
	app.Put("/internal-matches/:id/squads", owner, h.confirm)
}

func (h *squadHandler) list(c *fiber.Ctx) error {
	teams, err := h.squads.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"squads": teams})
}

// preview never writes; an empty body uses the configured squad size
func (h *squadHandler) preview(c *fiber.Ctx) error {
	var body struct {
		PlayersPerTeam int `json:"players_per_team"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return badBody(err)
		}
	}
	drafts, err := h.squads.Preview(c.UserContext(), c.Params("id"), body.PlayersPerTeam)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"squads": drafts})
}

func (h *squadHandler) confirm(c *fiber.Ctx) error {
	var body struct {
		Squads []services.SquadDraft `json:"squads"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(err)
	}
	teams, err := h.squads.Confirm(c.UserContext(), c.Params("id"), body.Squads)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"squads": teams})
}
