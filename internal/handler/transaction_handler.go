package handler

import (
	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	pos *service.PosService
}

func NewTransactionHandler(pos *service.PosService) *TransactionHandler {
	return &TransactionHandler{pos: pos}
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	return c.JSON(h.pos.Snapshot().Transactions)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	state := h.pos.Snapshot()
	tx := state.TransactionByID(c.Params("id"))
	if tx == nil {
		return c.Status(404).JSON(fiber.Map{"error": "Transaction not found"})
	}
	return c.JSON(tx)
}

// Delete reverses a transaction: the inverse effect is applied to stock and
// debts and the entry leaves the ledger. Irreversible once applied, so the
// client must confirm with the operator before calling.
// DELETE /api/v1/transactions/:id
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	err := h.pos.ReverseTransaction(actor(c), c.Params("id"))
	return respondCommitted(c, err, fiber.Map{"message": "Transaction reversed"})
}

func (h *TransactionHandler) GetLogs(c *fiber.Ctx) error {
	return c.JSON(h.pos.Snapshot().Logs)
}
