package handler

import (
	"errors"

	"go-almacen-pos/internal/engine"
	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Helpers to read user info from the JWT context (set by RequireAuth).
func actor(c *fiber.Ctx) string {
	if username, ok := c.Locals("username").(string); ok {
		return username
	}
	return "system"
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, engine.ErrProposalPending):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, engine.ErrInsufficientStock),
		errors.Is(err, engine.ErrValidation),
		errors.Is(err, engine.ErrInvalidFormat):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}

// respondCommitted handles the post-commit result of a mutation: a
// persistence failure is a warning, not a failed request — the in-memory
// state already advanced and the till keeps working unsaved.
func respondCommitted(c *fiber.Ctx, err error, body fiber.Map) error {
	if err == nil {
		return c.JSON(body)
	}
	if service.IsPersistenceWarning(err) {
		body["warning"] = "State updated but could not be saved to disk; the write will be retried on the next change"
		return c.JSON(body)
	}
	return respondError(c, err)
}
