package handlers

import (
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for shopping carts.
type CartHandler struct {
	base
	service *services.CartService
	guards  Guards
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, guards Guards, log *zap.Logger) *CartHandler {
	return &CartHandler{base: newBase(log, "cart"), service: service, guards: guards}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cart := router.Group("/cart", h.guards.User)
	cart.Put("/items/:id", h.HandleUpdateItem)
	cart.Delete("/items/:id", h.HandleRemoveItem)
	cart.Get("/:user_id", h.HandleGet)
	cart.Post("/:user_id/items", h.HandleAddItem)
}

// HandleGet returns the cart of a user, creating it on first access.
func (h *CartHandler) HandleGet(c *fiber.Ctx) error {
	cart, err := h.service.Get(c.UserContext(), identity(c), c.Params("user_id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleAddItem adds a product to a user's cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var in services.CartItemInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	item, err := h.service.AddItem(c.UserContext(), identity(c), c.Params("user_id"), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(item)
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

// HandleUpdateItem sets the quantity of a cart item, read from the JSON body
// or the ?quantity= query parameter.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	quantity, ok := intQuery(c, "quantity")
	if len(c.Body()) > 0 {
		var req quantityRequest
		if parsed, err := h.parseBody(c, &req); !parsed {
			return err
		}
		if req.Quantity != nil {
			quantity, ok = *req.Quantity, true
		}
	}
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "quantity is required",
			"error":   "INVALID_INPUT",
		})
	}

	item, err := h.service.UpdateItem(c.UserContext(), identity(c), c.Params("id"), quantity)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(item)
}

// HandleRemoveItem deletes a cart item.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.UserContext(), identity(c), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return message(c, fiber.StatusOK, "Cart Item Deleted Successfully")
}

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	base
	service *services.OrderService
	guards  Guards
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, guards Guards, log *zap.Logger) *OrderHandler {
	return &OrderHandler{base: newBase(log, "orders"), service: service, guards: guards}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders", h.guards.User)
	orders.Post("/", h.HandleCreateOrder)
	orders.Get("/detail/:order_id", h.HandleGetOrderByID)
	orders.Get("/:user_id", h.HandleGetOrders)
}

type createOrderRequest struct {
	AddressID string `json:"address_id"`
}

// HandleCreateOrder turns the cart of ?user_id= (default: the caller) into an order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if len(c.Body()) > 0 {
		if ok, err := h.parseBody(c, &req); !ok {
			return err
		}
	}

	id := identity(c)
	userID := c.Query("user_id", id.UserID)
	addressID := c.Query("address_id", req.AddressID)

	order, err := h.service.CreateFromCart(c.UserContext(), id, userID, addressID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders returns the orders of a user, newest first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListByUser(c.UserContext(), identity(c), c.Params("user_id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	order, err := h.service.Get(c.UserContext(), identity(c), c.Params("order_id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(order)
}
