package repositories

import (
	"context"

	"minishop/internal/models"
)

// ProductFilter narrows a product listing. Empty fields do not filter.
type ProductFilter struct {
	Page
	CategoryID string
	SellerID   string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Exists(ctx context.Context, userID, productID string) (bool, error)
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

// WishlistRepository defines the interface for wishlist data access.
type WishlistRepository interface {
	Find(ctx context.Context, userID, productID string) (*models.Wishlist, error)
	GetByID(ctx context.Context, id string) (*models.Wishlist, error)
	Create(ctx context.Context, entry *models.Wishlist) error
	ListByUser(ctx context.Context, userID string) ([]models.Wishlist, error)
	Delete(ctx context.Context, id string) error
}
