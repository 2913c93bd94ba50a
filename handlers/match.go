// handlers/match.go
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"versusfut/services"
)

type matchHandler struct {
	matches *services.MatchService
	reports *services.ReportService
}

func SetupMatchRoutes(app *fiber.App, matches *services.MatchService, reports *services.ReportService, owner fiber.Handler) {
	h := &matchHandler{matches: matches, reports: reports}

	app.Get("/teams/:team_id/internal-matches", h.list)
	app.Get("/internal-matches/:id", h.get)
	app.Get("/internal-matches/:id/report", h.report)

	// 🔐 Owner actions
	app.Post("/internal-matches", owner, h.schedule)
	app.Post("/internal-matches/:id/start", owner, h.start)
	app.Post("/internal-matches/:id/complete", owner, h.complete)
	app.Post("/internal-matches/:id/cancel", owner, h.cancel)
	app.Delete("/internal-matches/:id", owner, h.delete)
	app.Post("/internal-matches/:id/report/archive", owner, h.archive)
}

func (h *matchHandler) schedule(c *fiber.Ctx) error {
	var in services.ScheduleInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}
	m, err := h.matches.Schedule(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *matchHandler) list(c *fiber.Ctx) error {
	matches, err := h.matches.ListByTeam(c.UserContext(), c.Params("team_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"internal_matches": matches})
}

func (h *matchHandler) get(c *fiber.Ctx) error {
	m, err := h.matches.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(m)
}

func (h *matchHandler) start(c *fiber.Ctx) error {
	m, err := h.matches.Start(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(m)
}

func (h *matchHandler) complete(c *fiber.Ctx) error {
	m, forced, err := h.matches.Complete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"match": m, "forced_games": forced})
}

func (h *matchHandler) cancel(c *fiber.Ctx) error {
	m, err := h.matches.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(m)
}

func (h *matchHandler) delete(c *fiber.Ctx) error {
	if err := h.matches.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *matchHandler) report(c *fiber.Ctx) error {
	r, err := h.reports.Build(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(r)
}

func (h *matchHandler) archive(c *fiber.Ctx) error {
	if !h.reports.Enabled() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "report archive is not configured")
	}
	url, err := h.reports.Archive(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"report_url": url})
}
