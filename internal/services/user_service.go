package services

import (
	"context"
	"fmt"
	"strings"

	"minishop/internal/apperrors"
	"minishop/internal/logger"
	"minishop/internal/models"
	"minishop/internal/repositories"

	"go.uber.org/zap"
)

// RegisterInput is the payload of a public sign-up.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

// UserUpdate is a partial update of a user; nil fields are left unchanged.
type UserUpdate struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role"`
}

// UserService handles business logic for user accounts.
type UserService struct {
	repo repositories.UserRepository
	log  *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, log: logger.OrNop(log).Named("users")}
}

// Register creates a customer account. A taken email is a bad request.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.create(ctx, in, models.RoleCustomer)
}

func (s *UserService) create(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.Invalid("Email already registered")
	} else if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Internal("could not register user", err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    email,
		Password: hashed,
		Phone:    in.Phone,
		Role:     role,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent sign-up for the same email.
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return nil, apperrors.Invalid("Email already registered")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// EnsureAdmin creates an admin account for email, or promotes the existing
// account to admin. Used to bootstrap the first administrator.
func (s *UserService) EnsureAdmin(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return existing, nil
		}
		existing.Role = models.RoleAdmin
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.log.Info("user promoted to admin", zap.String("user_id", existing.ID))
		return existing, nil
	case apperrors.KindOf(err) == apperrors.KindNotFound:
		return s.create(ctx, in, models.RoleAdmin)
	default:
		return nil, err
	}
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns one page of users.
func (s *UserService) List(ctx context.Context, page repositories.Page) ([]models.User, error) {
	return s.repo.List(ctx, page.Normalize())
}

// Update applies a partial update to user id. Only admins may change roles.
func (s *UserService) Update(ctx context.Context, requester *Identity, id string, in UserUpdate) (*models.User, error) {
	if err := Authorize(requester, id, "modify this user"); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Role != nil && *in.Role != string(user.Role) {
		if !requester.IsAdmin() {
			return nil, apperrors.Forbidden("Only admins can change roles")
		}
		role := models.Role(*in.Role)
		if !role.Valid() {
			return nil, apperrors.Invalid("Invalid role")
		}
		user.Role = role
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Password != nil {
		hashed, err := HashPassword(*in.Password)
		if err != nil {
			return nil, apperrors.Internal("could not update user", err)
		}
		user.Password = hashed
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole sets the role of user id. Callers must be admins.
func (s *UserService) ChangeRole(ctx context.Context, id, role string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r := models.Role(role)
	if !r.Valid() {
		return nil, apperrors.Invalid("Invalid role")
	}
	user.Role = r
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user role changed", zap.String("user_id", id), zap.String("role", role))
	return user, nil
}

// Delete removes user id and returns the deleted record.
func (s *UserService) Delete(ctx context.Context, requester *Identity, id string) (*models.User, error) {
	if err := Authorize(requester, id, "delete this user"); err != nil {
		return nil, err
	}
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.log.Info("user deleted", zap.String("user_id", id), zap.String("by", requester.UserID))
	return user, nil
}

// requireUser returns NotFound unless user id exists.
func requireUser(ctx context.Context, users repositories.UserRepository, id string) error {
	if _, err := users.GetByID(ctx, id); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return apperrors.NotFound("user not found")
		}
		return err
	}
	return nil
}
