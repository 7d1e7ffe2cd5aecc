package handler

import (
	"go-almacen-pos/internal/engine"
	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	pos *service.PosService
}

func NewCatalogHandler(pos *service.PosService) *CatalogHandler {
	return &CatalogHandler{pos: pos}
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	state := h.pos.Snapshot()
	category := c.Query("category")
	if category == "" {
		return c.JSON(state.Products)
	}
	filtered := state.Products[:0:0]
	for _, p := range state.Products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return c.JSON(filtered)
}

func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(h.pos.Snapshot().Categories)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var spec engine.ProductSpec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.pos.AddProduct(actor(c), spec)
	if err != nil && !service.IsPersistenceWarning(err) {
		return respondError(c, err)
	}
	c.Status(201)
	return respondCommitted(c, err, fiber.Map{"message": "Product created"})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var spec engine.ProductSpec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.pos.EditProduct(actor(c), c.Params("id"), spec)
	return respondCommitted(c, err, fiber.Map{"message": "Product updated"})
}

// AddStock records a restock for one product
// POST /api/v1/products/:id/stock
func (h *CatalogHandler) AddStock(c *fiber.Ctx) error {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.pos.AddStock(actor(c), c.Params("id"), req.Quantity)
	return respondCommitted(c, err, fiber.Map{"message": "Stock recorded"})
}
