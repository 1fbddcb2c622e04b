package handlers

import (
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AddressHandler handles HTTP requests for user addresses.
type AddressHandler struct {
	base
	service *services.AddressService
	guards  Guards
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService, guards Guards, log *zap.Logger) *AddressHandler {
	return &AddressHandler{base: newBase(log, "addresses"), service: service, guards: guards}
}

// RegisterRoutes registers the address routes with the Fiber app.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addresses := router.Group("/addresses", h.guards.User)
	addresses.Post("/", h.HandleCreate)
	addresses.Get("/:user_id", h.HandleList)
	addresses.Put("/:id", h.HandleUpdate)
	addresses.Post("/:id/update", h.HandleUpdate)
	addresses.Delete("/:id", h.HandleDelete)
}

// HandleCreate adds an address for ?user_id=, defaulting to the caller.
func (h *AddressHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.AddressInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	id := identity(c)
	userID := c.Query("user_id", id.UserID)
	address, err := h.service.Create(c.UserContext(), id, userID, in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(address)
}

// HandleList returns the addresses of a user.
func (h *AddressHandler) HandleList(c *fiber.Ctx) error {
	addresses, err := h.service.ListByUser(c.UserContext(), identity(c), c.Params("user_id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(addresses)
}

// HandleUpdate applies a partial update to an address.
func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.AddressUpdate
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	address, err := h.service.Update(c.UserContext(), identity(c), c.Params("id"), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(address)
}

// HandleDelete deletes an address.
func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), identity(c), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return message(c, fiber.StatusOK, "Address deleted successfully")
}
