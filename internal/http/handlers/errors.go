package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"fruitstand/internal/config"
	"fruitstand/internal/domain"
	applog "fruitstand/internal/log"
	"fruitstand/web"
)

const friendlyMessage = "Something went wrong. Please try again."

// ErrorPolicy turns store errors into responses. In lenient mode the error
// is logged and the handler carries on as if the call succeeded; in strict
// mode it becomes a *fiber.Error with a matching status.
type ErrorPolicy struct {
	Strict bool
}

func NewErrorPolicy(mode string) ErrorPolicy {
	return ErrorPolicy{Strict: mode == config.ErrorModeStrict}
}

// Check returns nil when the handler should continue.
func (p ErrorPolicy) Check(c *fiber.Ctx, action string, err error) error {
	if err == nil {
		return nil
	}
	applog.Error(c, action, err, nil)
	if !p.Strict {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "This fruit does not exist.")
	case errors.Is(err, domain.ErrInvalidID):
		return fiber.NewError(fiber.StatusBadRequest, "That is not a valid fruit id.")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, friendlyMessage)
	}
}

// ErrorHandler renders errors that reach the app. Server errors never show
// their message to the user.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := friendlyMessage
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Title": "Oops", "Message": msg}, web.Layout); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
