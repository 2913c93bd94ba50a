package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"versusfut/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler maps domain errors to HTTP statuses and renders {"error": "..."}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, msg := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(code).JSON(ErrorResponse{Error: msg})
}

func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case eris.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case eris.Is(err, services.ErrInsufficientPlayers):
		return fiber.StatusUnprocessableEntity, err.Error()
	case eris.Is(err, services.ErrStateTransition):
		return fiber.StatusConflict, err.Error()
	case eris.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	default:
		// persistence details stay in the log
		return fiber.StatusInternalServerError, "internal server error"
	}
}

func badBody(err error) error {
	return fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
}
