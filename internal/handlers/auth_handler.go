package handlers

import (
	"minishop/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	base
	authService *services.AuthService
	guards      Guards
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, guards Guards, log *zap.Logger) *AuthHandler {
	return &AuthHandler{base: newBase(log, "auth"), authService: authService, guards: guards}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/login", h.HandleLogin)
	router.Post("/logout", h.guards.User, h.HandleLogout)
}

// LoginRequest represents the request body for login. Username carries the
// email address; both form and JSON bodies are accepted.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if ok, err := h.parseBody(c, &req); !ok {
		return err
	}

	token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		h.log.Info("login failed", zap.String("username", req.Username), zap.Error(err))
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// HandleLogout revokes the token of the current request.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), identity(c)); err != nil {
		return h.respondError(c, err)
	}
	return message(c, fiber.StatusOK, "Successfully logged out")
}
