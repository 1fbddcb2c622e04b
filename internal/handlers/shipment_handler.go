package handlers

import (
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShipmentHandler handles HTTP requests for shipments.
type ShipmentHandler struct {
	base
	service *services.ShipmentService
	guards  Guards
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(service *services.ShipmentService, guards Guards, log *zap.Logger) *ShipmentHandler {
	return &ShipmentHandler{base: newBase(log, "shipments"), service: service, guards: guards}
}

// RegisterRoutes registers the shipment routes with the Fiber app.
func (h *ShipmentHandler) RegisterRoutes(router fiber.Router) {
	shipments := router.Group("/shipments", h.guards.User, h.guards.AdminOrSeller)
	shipments.Post("/", h.HandleCreate)
	shipments.Get("/", h.HandleList)
	shipments.Get("/:id", h.HandleGet)
	shipments.Put("/:id", h.HandleUpdateStatus)
}

// HandleCreate opens the shipment of an order.
func (h *ShipmentHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.ShipmentInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	shipment, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(shipment)
}

// HandleList returns one page of shipments.
func (h *ShipmentHandler) HandleList(c *fiber.Ctx) error {
	p, err := page(c)
	if err != nil {
		return h.respondError(c, err)
	}
	shipments, err := h.service.List(c.UserContext(), p)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(shipments)
}

// HandleGet returns a single shipment.
func (h *ShipmentHandler) HandleGet(c *fiber.Ctx) error {
	shipment, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(shipment)
}

type statusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateStatus moves a shipment to the status given in the JSON body
// or the ?status= query parameter.
func (h *ShipmentHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if len(c.Body()) > 0 {
		var req statusRequest
		if ok, err := h.parseBody(c, &req); !ok {
			return err
		}
		if req.Status != "" {
			status = req.Status
		}
	}
	if status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for shipment status update.",
			"error":   "INVALID_INPUT",
		})
	}

	shipment, err := h.service.UpdateStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(shipment)
}
