// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"errors"
	"log/slog"

	"fraudscope/internal/services/transaction"
	"fraudscope/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps errors returned by handlers to JSON responses.
//
//   - *transaction.ValidationError -> 400 with the rejected fields
//   - *transaction.StorageError    -> 500
//   - *fiber.Error                 -> its own status code
//
// Anything else is a 500 with a generic message.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var vErr *transaction.ValidationError
		if errors.As(err, &vErr) {
			return response.ValidationError(c, transaction.ErrValidation.Error(), vErr.Fields)
		}

		var sErr *transaction.StorageError
		if errors.As(err, &sErr) {
			return response.ServerError(c, "failed to access "+sErr.Collection+" store")
		}

		var fErr *fiber.Error
		if errors.As(err, &fErr) {
			return response.Error(c, fErr.Code, fErr.Message)
		}

		logger.ErrorContext(c.UserContext(), "unhandled error",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return response.ServerError(c, "internal server error")
	}
}
