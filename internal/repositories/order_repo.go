package repositories

import (
	"context"

	"minishop/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	// AddItem adds quantity units of a product, summing into an existing line.
	AddItem(ctx context.Context, cartID, productID string, quantity int) (*models.CartItem, error)
	GetItem(ctx context.Context, id string) (*models.CartItem, error)
	UpdateItemQuantity(ctx context.Context, id string, quantity int) error
	DeleteItem(ctx context.Context, id string) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	// Place stores order with its items and empties the cart in one transaction.
	Place(ctx context.Context, order *models.Order, cartID string) error
}

// ShipmentRepository defines the interface for shipment data access.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *models.Shipment) error
	GetByID(ctx context.Context, id string) (*models.Shipment, error)
	List(ctx context.Context, page Page) ([]models.Shipment, error)
	UpdateStatus(ctx context.Context, id string, status models.ShipmentStatus) error
}
