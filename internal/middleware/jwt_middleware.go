package middleware

import (
	"context"
	"strings"

	"minishop/internal/apperrors"
	"minishop/internal/logger"
	"minishop/internal/models"
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// identityKey is the c.Locals key holding the *services.Identity of the caller.
const identityKey = "identity"

// Authenticator resolves a bearer token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*services.Identity, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(auth Authenticator, log *zap.Logger) fiber.Handler {
	log = logger.OrNop(log).Named("auth")
	return func(c *fiber.Ctx) error {
		tokenString, err := bearerToken(c)
		if err != nil {
			return unauthorized(c, err.Error())
		}

		id, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			if apperrors.KindOf(err) != apperrors.KindUnauthenticated {
				log.Error("authentication failed", zap.Error(err))
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Could not validate credentials",
					"error":   "internal server error",
				})
			}
			log.Debug("JWT validation failed", zap.Error(err))
			return unauthorized(c, apperrors.Message(err))
		}

		c.Locals(identityKey, id)
		return c.Next()
	}
}

// RequireRoles rejects callers that hold none of roles. It must run after AuthRequired.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := CurrentIdentity(c)
		if id == nil {
			return unauthorized(c, "Authorization header is required")
		}
		if !id.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Insufficient permissions",
				"error":   "forbidden",
			})
		}
		return c.Next()
	}
}

// RequireAdmin allows admins only.
func RequireAdmin() fiber.Handler {
	return RequireRoles(models.RoleAdmin)
}

// RequireSeller allows sellers and admins.
func RequireSeller() fiber.Handler {
	return RequireRoles(models.RoleSeller, models.RoleAdmin)
}

// RequireAdminOrSeller allows admins and sellers.
func RequireAdminOrSeller() fiber.Handler {
	return RequireRoles(models.RoleAdmin, models.RoleSeller)
}

// CurrentIdentity returns the caller resolved by AuthRequired, or nil.
func CurrentIdentity(c *fiber.Ctx) *services.Identity {
	id, _ := c.Locals(identityKey).(*services.Identity)
	return id
}

type headerError string

func (e headerError) Error() string { return string(e) }

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", headerError("Authorization header is required")
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", headerError("Authorization header format must be 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": msg,
		"error":   "unauthorized",
	})
}
