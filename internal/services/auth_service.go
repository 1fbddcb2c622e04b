package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"minishop/internal/apperrors"
	"minishop/internal/logger"
	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/tokenstore"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// DefaultTokenTTL is how long an access token stays valid.
const DefaultTokenTTL = 60 * time.Minute

const invalidCredentials = "Incorrect email or password"

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	revoked   tokenstore.Store
	log       *zap.Logger
}

// NewAuthService creates a new AuthService. A zero ttl means DefaultTokenTTL
// and a nil store keeps revoked tokens in memory.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, ttl time.Duration, store tokenstore.Store, log *zap.Logger) *AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if store == nil {
		store = tokenstore.NewMemory()
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  ttl,
		revoked:   store,
		log:       logger.OrNop(log).Named("auth"),
	}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Login authenticates a user by email and password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperrors.KindOf(err) != apperrors.KindNotFound {
			return "", err
		}
		// Unknown email and wrong password look the same to the caller.
		return "", apperrors.Unauthenticated(invalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.Unauthenticated(invalidCredentials)
	}
	if !user.IsActive {
		return "", apperrors.Unauthenticated("account is disabled")
	}
	return s.IssueToken(user)
}

// IssueToken signs an access token for user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"jti":     uuid.New().String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to generate token", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	// jwt-go treats a missing exp as valid; every token issued here has one.
	if _, ok := claims["exp"]; !ok {
		return nil, fmt.Errorf("invalid token: missing expiry")
	}
	return claims, nil
}

// Authenticate resolves a bearer token to the identity of an existing, active user.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*Identity, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		s.log.Debug("token rejected", zap.Error(err))
		return nil, apperrors.Unauthenticated("Could not validate credentials")
	}

	userID, _ := claims["user_id"].(string)
	jti, _ := claims["jti"].(string)
	if userID == "" || jti == "" {
		return nil, apperrors.Unauthenticated("Could not validate credentials")
	}

	revoked, err := s.revoked.IsRevoked(ctx, jti)
	if err != nil {
		return nil, apperrors.Internal("failed to check token", err)
	}
	if revoked {
		return nil, apperrors.Unauthenticated("token has been revoked")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Unauthenticated("Could not validate credentials")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.Unauthenticated("account is disabled")
	}

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0)
	}

	// Role and email come from the stored user so role changes apply at once.
	return &Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TokenID:   jti,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the token the identity was resolved from.
func (s *AuthService) Logout(ctx context.Context, id *Identity) error {
	if id == nil || id.TokenID == "" {
		return apperrors.Unauthenticated("authentication required")
	}
	if err := s.revoked.Revoke(ctx, id.TokenID, time.Until(id.ExpiresAt)); err != nil {
		return apperrors.Internal("failed to revoke token", err)
	}
	s.log.Info("token revoked", zap.String("user_id", id.UserID))
	return nil
}
