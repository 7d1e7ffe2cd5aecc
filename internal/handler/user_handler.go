package handler

import (
	"go-almacen-pos/internal/model"
	"go-almacen-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	pos *service.PosService
}

func NewUserHandler(pos *service.PosService) *UserHandler {
	return &UserHandler{pos: pos}
}

func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	state := h.pos.Snapshot()
	users := make([]model.UserResponse, 0, len(state.Users))
	for _, u := range state.Users {
		users = append(users, u.ToResponse())
	}
	return c.JSON(users)
}

type userRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.pos.CreateUser(actor(c), req.Username, req.Name, req.Password, model.UserRole(req.Role))
	if err != nil && !service.IsPersistenceWarning(err) {
		return respondError(c, err)
	}
	c.Status(201)
	return respondCommitted(c, err, fiber.Map{"message": "User created"})
}

func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	err := h.pos.UpdateUser(actor(c), c.Params("id"), req.Name, req.Password, model.UserRole(req.Role))
	return respondCommitted(c, err, fiber.Map{"message": "User updated"})
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	err := h.pos.DeleteUser(actor(c), c.Params("id"))
	return respondCommitted(c, err, fiber.Map{"message": "User deleted"})
}
