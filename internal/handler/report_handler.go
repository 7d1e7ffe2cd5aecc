package handler

import (
	"time"

	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	pos *service.PosService
}

func NewReportHandler(pos *service.PosService) *ReportHandler {
	return &ReportHandler{pos: pos}
}

// GetDailyReport sums the cash movement of one local calendar day
// GET /api/v1/reports/daily?date=2006-01-02
func (h *ReportHandler) GetDailyReport(c *fiber.Ctx) error {
	day := c.Query("date")
	if day == "" {
		day = time.Now().Local().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	stats, receipt := h.pos.DailyReport(actor(c), day)
	return c.JSON(fiber.Map{"stats": stats, "receipt": receipt})
}

func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	return c.JSON(h.pos.Dashboard())
}

func (h *ReportHandler) GetSalesChart(c *fiber.Ctx) error {
	return c.JSON(h.pos.SalesByDay())
}
