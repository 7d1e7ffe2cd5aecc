package handler

import (
	"go-almacen-pos/internal/engine"
	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler drives the two-phase checkout/settlement flow: propose,
// review (optionally edit the receipt's cosmetic fields), then confirm or
// cancel.
type CheckoutHandler struct {
	pos *service.PosService
}

func NewCheckoutHandler(pos *service.PosService) *CheckoutHandler {
	return &CheckoutHandler{pos: pos}
}

// Propose computes a checkout without committing it
// POST /api/v1/checkout
func (h *CheckoutHandler) Propose(c *fiber.Ctx) error {
	var cmd engine.CheckoutCommand
	if err := c.BodyParser(&cmd); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.pos.ProposeCheckout(actor(c), cmd)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"receipt": receipt})
}

// PendingReceipt returns the receipt under review
// GET /api/v1/checkout/pending
func (h *CheckoutHandler) PendingReceipt(c *fiber.Ctx) error {
	receipt, ok := h.pos.PendingReceipt()
	if !ok {
		return c.Status(404).JSON(fiber.Map{"error": "No proposal is pending"})
	}
	return c.JSON(fiber.Map{"receipt": receipt})
}

// EditReceipt adjusts title/customer name/notes/print date on the pending
// receipt; the financial transition is untouched
// PATCH /api/v1/checkout/pending
func (h *CheckoutHandler) EditReceipt(c *fiber.Ctx) error {
	var edit service.ReceiptEdit
	if err := c.BodyParser(&edit); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	receipt, err := h.pos.EditPendingReceipt(edit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"receipt": receipt})
}

// Confirm commits the pending transition and returns the final receipt
// POST /api/v1/checkout/confirm
func (h *CheckoutHandler) Confirm(c *fiber.Ctx) error {
	receipt, err := h.pos.ConfirmPending(actor(c))
	if err != nil && !service.IsPersistenceWarning(err) {
		return respondError(c, err)
	}
	return respondCommitted(c, err, fiber.Map{"message": "Committed", "receipt": receipt})
}

// Cancel discards the pending transition with zero side effects
// POST /api/v1/checkout/cancel
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	h.pos.CancelPending()
	return c.JSON(fiber.Map{"message": "Proposal discarded"})
}
