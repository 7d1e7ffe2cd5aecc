package handler

import (
	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AssistantHandler struct {
	assistant service.AssistantService
}

func NewAssistantHandler(assistant service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Ask forwards a free-text business question with an aggregated metrics
// snapshot; advisory only, nothing is mutated
// POST /api/v1/assistant/ask
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Query == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Query is required"})
	}

	response, err := h.assistant.Ask(c.Context(), req.Query)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(response)
}
