package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Domain error taxonomy. Services wrap these with %w; controllers map
// them onto HTTP statuses via JSONError.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("already exists")
	ErrInvalid         = errors.New("invalid request")
	ErrUpstreamAuth    = errors.New("invalid session id")
)

// HTTPStatus maps a domain error onto its response status.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalid):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUpstreamAuth):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// JSONError writes the standard error body for a domain error.
func JSONError(c *fiber.Ctx, err error) error {
	return c.Status(HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
