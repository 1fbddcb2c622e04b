package handlers

import (
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WishlistHandler handles HTTP requests for wishlists.
type WishlistHandler struct {
	base
	service *services.WishlistService
	guards  Guards
}

// NewWishlistHandler creates a new WishlistHandler.
func NewWishlistHandler(service *services.WishlistService, guards Guards, log *zap.Logger) *WishlistHandler {
	return &WishlistHandler{base: newBase(log, "wishlist"), service: service, guards: guards}
}

// RegisterRoutes registers the wishlist routes with the Fiber app.
func (h *WishlistHandler) RegisterRoutes(router fiber.Router) {
	wishlist := router.Group("/wishlist", h.guards.User)
	wishlist.Post("/", h.HandleAdd)
	wishlist.Get("/", h.HandleList)
	wishlist.Delete("/:id", h.HandleRemove)
}

// HandleAdd saves a product to the caller's wishlist. A product already
// saved is answered with the existing entry and 200.
func (h *WishlistHandler) HandleAdd(c *fiber.Ctx) error {
	var in services.WishlistInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	entry, created, err := h.service.Add(c.UserContext(), identity(c), in)
	if err != nil {
		return h.respondError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(entry)
}

// HandleList returns the caller's wishlist.
func (h *WishlistHandler) HandleList(c *fiber.Ctx) error {
	entries, err := h.service.List(c.UserContext(), identity(c))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(entries)
}

// HandleRemove deletes a wishlist entry.
func (h *WishlistHandler) HandleRemove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.UserContext(), identity(c), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	base
	service *services.ReviewService
	guards  Guards
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, guards Guards, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{base: newBase(log, "reviews"), service: service, guards: guards}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviews := router.Group("/reviews")
	reviews.Post("/", h.guards.User, h.HandleCreate)
	reviews.Get("/:product_id", h.HandleList)
}

// HandleCreate records the caller's review of a product.
func (h *ReviewHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.ReviewInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	review, err := h.service.Create(c.UserContext(), identity(c), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleList returns the reviews of a product.
func (h *ReviewHandler) HandleList(c *fiber.Ctx) error {
	reviews, err := h.service.ListByProduct(c.UserContext(), c.Params("product_id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(reviews)
}
