package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"minishop/internal/apperrors"
	"minishop/internal/logger"
	"minishop/internal/middleware"
	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Guards are the route middlewares handlers attach to protected endpoints.
type Guards struct {
	User          fiber.Handler // any authenticated caller
	Admin         fiber.Handler
	Seller        fiber.Handler // sellers and admins
	AdminOrSeller fiber.Handler
}

// NewGuards builds the guards around an authentication middleware.
func NewGuards(authRequired fiber.Handler) Guards {
	return Guards{
		User:          authRequired,
		Admin:         middleware.RequireAdmin(),
		Seller:        middleware.RequireSeller(),
		AdminOrSeller: middleware.RequireAdminOrSeller(),
	}
}

// base bundles what every handler needs to parse requests and report errors.
type base struct {
	validate *validator.Validate
	log      *zap.Logger
}

func newBase(log *zap.Logger, name string) base {
	return base{validate: validator.New(), log: logger.OrNop(log).Named(name)}
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindInvalid:
		return fiber.StatusBadRequest
	case apperrors.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes err as a JSON error body with the status of its kind.
// Internal errors are logged and their details are not exposed.
func (b base) respondError(c *fiber.Ctx, err error) error {
	kind := apperrors.KindOf(err)
	status := statusFor(kind)
	if status >= fiber.StatusInternalServerError {
		b.log.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(status).JSON(fiber.Map{
			"message": "Internal server error",
			"error":   "internal server error",
		})
	}
	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(fiber.Map{
		"message": apperrors.Message(err),
		"error":   kind.String(),
	})
}

// parseBody decodes the request body into out and validates it. On failure
// it writes the 400 response and returns ok == false.
func (b base) parseBody(c *fiber.Ctx, out interface{}) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		b.log.Debug("error parsing request body", zap.String("path", c.Path()), zap.Error(err))
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return b.validateStruct(c, out)
}

func (b base) validateStruct(c *fiber.Ctx, v interface{}) (bool, error) {
	err := b.validate.Struct(v)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, b.respondError(c, err)
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// page reads the skip and limit query parameters.
func page(c *fiber.Ctx) (repositories.Page, error) {
	return repositories.NewPage(c.QueryInt("skip", 0), c.QueryInt("limit", repositories.DefaultLimit))
}

// intQuery reads an integer query parameter, reporting whether it was present and valid.
func intQuery(c *fiber.Ctx, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func identity(c *fiber.Ctx) *services.Identity {
	return middleware.CurrentIdentity(c)
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
