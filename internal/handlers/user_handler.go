package handlers

import (
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	base
	service *services.UserService
	guards  Guards
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, guards Guards, log *zap.Logger) *UserHandler {
	return &UserHandler{base: newBase(log, "users"), service: service, guards: guards}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Post("/", h.HandleRegister)
	users.Get("/", h.guards.User, h.guards.Admin, h.HandleList)
	users.Get("/:id", h.HandleGet)
	users.Put("/:id", h.guards.User, h.HandleUpdate)
	users.Delete("/:id", h.guards.User, h.HandleDelete)

	router.Get("/me", h.guards.User, h.HandleMe)
	router.Put("/admin/users/:id/role", h.guards.User, h.guards.Admin, h.HandleChangeRole)
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var in services.RegisterInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	user, err := h.service.Register(c.UserContext(), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleList returns one page of users.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	p, err := page(c)
	if err != nil {
		return h.respondError(c, err)
	}
	users, err := h.service.List(c.UserContext(), p)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(users)
}

// HandleGet returns a single user.
func (h *UserHandler) HandleGet(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}

// HandleMe returns the authenticated user.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.service.Get(c.UserContext(), identity(c).UserID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}

// HandleUpdate applies a partial update to a user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.UserUpdate
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	user, err := h.service.Update(c.UserContext(), identity(c), c.Params("id"), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}

// HandleDelete deletes a user and returns the deleted record.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	user, err := h.service.Delete(c.UserContext(), identity(c), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}

type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

// HandleChangeRole sets the role of a user.
func (h *UserHandler) HandleChangeRole(c *fiber.Ctx) error {
	var req roleRequest
	if ok, err := h.parseBody(c, &req); !ok {
		return err
	}

	user, err := h.service.ChangeRole(c.UserContext(), c.Params("id"), req.Role)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(user)
}
