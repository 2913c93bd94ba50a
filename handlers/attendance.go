package handlers

import (
	"github.com/gofiber/fiber/v2"

	"versusfut/services"
)

type attendanceHandler struct {
	roster *services.AttendanceService
}

func SetupAttendanceRoutes(app *fiber.App, roster *services.AttendanceService, owner fiber.Handler) {
	h := &attendanceHandler{roster: roster}

	app.Get("/internal-matches/:id/attendance", h.list)
	app.Get("/internal-matches/:id/available-players", h.available)

	app.Post("/internal-matches/:id/attendance/players", owner, h.addPlayer)
	app.Post("/internal-matches/:id/attendance/guests", owner, h.addGuests)
	app.Delete("/attendance/:entry_id", owner, h.remove)
}

func (h *attendanceHandler) list(c *fiber.Ctx) error {
	entries, err := h.roster.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"attendance": entries})
}

func (h *attendanceHandler) available(c *fiber.Ctx) error {
	players, err := h.roster.AvailablePlayers(c.UserContext(), c.Params("id"), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"players": players})
}

func (h *attendanceHandler) addPlayer(c *fiber.Ctx) error {
	var body struct {
		PlayerID string `json:"player_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(err)
	}
	entry, created, err := h.roster.AddPlayer(c.UserContext(), c.Params("id"), body.PlayerID)
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"entry": entry, "created": created})
}

func (h *attendanceHandler) addGuests(c *fiber.Ctx) error {
	var body struct {
		Names []string `json:"names"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badBody(err)
	}
	entries, err := h.roster.AddGuests(c.UserContext(), c.Params("id"), body.Names)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"attendance": entries})
}

func (h *attendanceHandler) remove(c *fiber.Ctx) error {
	if err := h.roster.Remove(c.UserContext(), c.Params("entry_id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
