package handler

import (
	"fmt"
	"time"

	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

// BackupHandler covers export, import (full replacement) and factory reset.
// All admin-only.
type BackupHandler struct {
	pos *service.PosService
}

func NewBackupHandler(pos *service.PosService) *BackupHandler {
	return &BackupHandler{pos: pos}
}

// Export downloads the whole state as one JSON document
// GET /api/v1/backup/export
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	doc, err := h.pos.Export()
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("almacen-pos-backup-%s.json", time.Now().Format("2006-01-02"))
	c.Set("Content-Type", "application/json")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}

// Import validates and fully replaces the state with the posted document.
// No merge: the previous state is gone once this returns success.
// POST /api/v1/backup/import
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	err := h.pos.Import(actor(c), c.Body())
	return respondCommitted(c, err, fiber.Map{"message": "Backup restored"})
}

// Reset wipes everything back to factory defaults
// POST /api/v1/backup/reset
func (h *BackupHandler) Reset(c *fiber.Ctx) error {
	if err := h.pos.FactoryReset(actor(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Application reset to factory state"})
}
