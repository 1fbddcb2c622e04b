package repositories

import (
	"context"

	"minishop/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, page Page) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

// AddressRepository defines the interface for address data access.
type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	GetByID(ctx context.Context, id string) (*models.Address, error)
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	Update(ctx context.Context, address *models.Address) error
	Delete(ctx context.Context, id string) error
}
