package handler

import (
	"go-almacen-pos/internal/engine"
	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ConsignmentHandler struct {
	pos *service.PosService
}

func NewConsignmentHandler(pos *service.PosService) *ConsignmentHandler {
	return &ConsignmentHandler{pos: pos}
}

func (h *ConsignmentHandler) GetConsignments(c *fiber.Ctx) error {
	return c.JSON(h.pos.Snapshot().Consignments)
}

// GetDebtsByCustomer groups open debts per customer with totals
// GET /api/v1/consignments/by-customer
func (h *ConsignmentHandler) GetDebtsByCustomer(c *fiber.Ctx) error {
	return c.JSON(h.pos.DebtsByCustomer())
}

type settleRequest struct {
	Amount float64 `json:"amount"`
}

// Settle proposes a payment against one consignment
// POST /api/v1/consignments/:id/settle
func (h *ConsignmentHandler) Settle(c *fiber.Ctx) error {
	var req settleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.pos.ProposeSettleConsignment(actor(c), c.Params("id"), req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"receipt": receipt})
}

// SettleCustomer proposes a bulk payment distributed across a customer's
// open debts, oldest first
// POST /api/v1/customers/:id/settle
func (h *ConsignmentHandler) SettleCustomer(c *fiber.Ctx) error {
	var req settleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.pos.ProposeSettleCustomerDebt(actor(c), c.Params("id"), req.Amount)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"receipt": receipt})
}

// Edit is the admin-only manual correction of a debt record
// PUT /api/v1/consignments/:id
func (h *ConsignmentHandler) Edit(c *fiber.Ctx) error {
	var edit engine.ConsignmentEdit
	if err := c.BodyParser(&edit); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.pos.EditConsignment(actor(c), c.Params("id"), edit)
	return respondCommitted(c, err, fiber.Map{"message": "Debt record updated"})
}
