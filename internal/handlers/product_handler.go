package handlers

import (
	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	base
	service *services.CategoryService
	guards  Guards
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, guards Guards, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{base: newBase(log, "categories"), service: service, guards: guards}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleList)
	categories.Post("/", h.guards.User, h.guards.AdminOrSeller, h.HandleCreate)
	categories.Put("/:id", h.guards.User, h.guards.AdminOrSeller, h.HandleUpdate)
	categories.Delete("/:id", h.guards.User, h.guards.Admin, h.HandleDelete)
}

// HandleList returns every category.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.List(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreate adds a category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.CategoryInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	category, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate replaces a category.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	var in services.CategoryInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	category, err := h.service.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(category)
}

// HandleDelete deletes a category.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return message(c, fiber.StatusOK, "Category deleted successfully")
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	base
	service *services.ProductService
	guards  Guards
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, guards Guards, log *zap.Logger) *ProductHandler {
	return &ProductHandler{base: newBase(log, "products"), service: service, guards: guards}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Get("/:id", h.HandleGet)
	products.Post("/", h.guards.User, h.HandleCreate)

	seller := router.Group("/seller/products", h.guards.User, h.guards.Seller)
	seller.Get("/", h.HandleSellerList)
	seller.Put("/:id", h.HandleSellerUpdate)
	seller.Delete("/:id", h.HandleSellerDelete)

	router.Delete("/admin/products/:id", h.guards.User, h.guards.Admin, h.HandleAdminDelete)
}

// HandleList returns one page of products, optionally filtered by ?category_id=.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	p, err := page(c)
	if err != nil {
		return h.respondError(c, err)
	}
	products, err := h.service.List(c.UserContext(), repositories.ProductFilter{
		Page:       p,
		CategoryID: c.Query("category_id"),
	})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(products)
}

// HandleGet returns a single product.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(product)
}

// HandleCreate adds a product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var in services.ProductInput
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	product, err := h.service.Create(c.UserContext(), identity(c), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleSellerList returns the caller's products.
func (h *ProductHandler) HandleSellerList(c *fiber.Ctx) error {
	p, err := page(c)
	if err != nil {
		return h.respondError(c, err)
	}
	products, err := h.service.ListForSeller(c.UserContext(), identity(c), p)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(products)
}

// HandleSellerUpdate applies a partial update to one of the caller's products.
func (h *ProductHandler) HandleSellerUpdate(c *fiber.Ctx) error {
	var in services.ProductUpdate
	if ok, err := h.parseBody(c, &in); !ok {
		return err
	}

	product, err := h.service.UpdateAsSeller(c.UserContext(), identity(c), c.Params("id"), in)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(product)
}

// HandleSellerDelete deletes one of the caller's products.
func (h *ProductHandler) HandleSellerDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteAsSeller(c.UserContext(), identity(c), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return message(c, fiber.StatusOK, "Product deleted successfully")
}

// HandleAdminDelete deletes any product.
func (h *ProductHandler) HandleAdminDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteAsAdmin(c.UserContext(), c.Params("id")); err != nil {
		return h.respondError(c, err)
	}
	return message(c, fiber.StatusOK, "Product deleted successfully")
}
