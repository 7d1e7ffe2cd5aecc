package handler

import (
	"go-almacen-pos/internal/engine"
	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	pos *service.PosService
}

func NewCustomerHandler(pos *service.PosService) *CustomerHandler {
	return &CustomerHandler{pos: pos}
}

func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	return c.JSON(h.pos.Snapshot().Customers)
}

func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var spec engine.CustomerSpec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.pos.AddCustomer(actor(c), spec)
	if err != nil && !service.IsPersistenceWarning(err) {
		return respondError(c, err)
	}
	c.Status(201)
	return respondCommitted(c, err, fiber.Map{"message": "Customer created"})
}

func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	var spec engine.CustomerSpec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.pos.EditCustomer(actor(c), c.Params("id"), spec)
	return respondCommitted(c, err, fiber.Map{"message": "Customer updated"})
}
