package serverutils

import (
	"errors"

	"pdf-chat-be/pkg/ai/router"

	"github.com/gofiber/fiber/v2"
)

const InvalidTaskMessage = "Invalid task"

// ErrorHandlerMiddleware turns errors returned by handlers into the BaseResponse envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := Classify(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// Classify maps an error to its HTTP status and client-facing message.
func Classify(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, validationErr.Error()
	}

	if errors.Is(err, router.ErrInvalidTask) {
		return fiber.StatusUnprocessableEntity, InvalidTaskMessage
	}

	return fiber.StatusInternalServerError, err.Error()
}
