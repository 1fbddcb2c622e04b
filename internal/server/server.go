// Package server assembles the HTTP application from its repositories,
// services and handlers.
package server

import (
	"context"
	"errors"
	"time"

	"minishop/internal/handlers"
	"minishop/internal/logger"
	"minishop/internal/middleware"
	"minishop/internal/repositories"
	"minishop/internal/services"
	"minishop/internal/tokenstore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the external resources the application runs on.
type Deps struct {
	DB        *gorm.DB
	Log       *zap.Logger
	JWTSecret string
	TokenTTL  time.Duration
	Tokens    tokenstore.Store        // nil keeps revoked tokens in memory
	Events    services.EventPublisher // nil disables event publishing
}

// Services are the domain services the application is built from.
type Services struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Addresses *services.AddressService
	Category  *services.CategoryService
	Products  *services.ProductService
	Cart      *services.CartService
	Orders    *services.OrderService
	Wishlist  *services.WishlistService
	Reviews   *services.ReviewService
	Shipments *services.ShipmentService
}

// NewServices wires every repository and service on top of deps.
func NewServices(deps Deps) *Services {
	log := logger.OrNop(deps.Log)

	userRepo := repositories.NewGORMUserRepository(deps.DB)
	addressRepo := repositories.NewGORMAddressRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	cartRepo := repositories.NewGORMCartRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)
	wishlistRepo := repositories.NewGORMWishlistRepository(deps.DB)
	reviewRepo := repositories.NewGORMReviewRepository(deps.DB)
	shipmentRepo := repositories.NewGORMShipmentRepository(deps.DB)

	return &Services{
		Auth:      services.NewAuthService(userRepo, deps.JWTSecret, deps.TokenTTL, deps.Tokens, log),
		Users:     services.NewUserService(userRepo, log),
		Addresses: services.NewAddressService(addressRepo, userRepo),
		Category:  services.NewCategoryService(categoryRepo),
		Products:  services.NewProductService(productRepo, categoryRepo, log),
		Cart:      services.NewCartService(cartRepo, productRepo, userRepo),
		Orders:    services.NewOrderService(orderRepo, cartRepo, addressRepo, deps.Events, log),
		Wishlist:  services.NewWishlistService(wishlistRepo, productRepo),
		Reviews:   services.NewReviewService(reviewRepo, productRepo),
		Shipments: services.NewShipmentService(shipmentRepo, orderRepo, deps.Events, log),
	}
}

// New builds the Fiber app with every route registered.
func New(deps Deps) *fiber.App {
	log := logger.OrNop(deps.Log)
	svc := NewServices(deps)

	app := fiber.New(fiber.Config{
		AppName:      "minishop",
		Immutable:    true,
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: zap.NewStdLog(log.Named("http")).Writer(),
	}))

	// --- Health Check Endpoint ---
	app.Get("/health", healthHandler(deps.DB))

	// --- API Routes ---
	guards := handlers.NewGuards(middleware.AuthRequired(svc.Auth, log))
	routes := []interface{ RegisterRoutes(fiber.Router) }{
		handlers.NewAuthHandler(svc.Auth, guards, log),
		handlers.NewUserHandler(svc.Users, guards, log),
		handlers.NewAddressHandler(svc.Addresses, guards, log),
		handlers.NewCategoryHandler(svc.Category, guards, log),
		handlers.NewProductHandler(svc.Products, guards, log),
		handlers.NewCartHandler(svc.Cart, guards, log),
		handlers.NewOrderHandler(svc.Orders, guards, log),
		handlers.NewWishlistHandler(svc.Wishlist, guards, log),
		handlers.NewReviewHandler(svc.Reviews, guards, log),
		handlers.NewShipmentHandler(svc.Shipments, guards, log),
	}
	for _, r := range routes {
		r.RegisterRoutes(app)
	}

	return app
}

// errorHandler renders errors no handler dealt with, such as unknown routes.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(code).JSON(fiber.Map{
				"message": "Internal server error",
				"error":   "internal server error",
			})
		}
		return c.Status(code).JSON(fiber.Map{
			"message": err.Error(),
			"error":   errorCode(code),
		})
	}
}

func errorCode(code int) string {
	switch code {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "INVALID_INPUT"
	default:
		return "ERROR"
	}
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		database := "connected"

		sqlDB, err := db.DB()
		if err == nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			status, code, database = "unhealthy", fiber.StatusServiceUnavailable, "unreachable"
		}

		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"database": database,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}
