package repositories

import (
	"context"
	"errors"
	"fmt"

	"minishop/internal/apperrors"
	"minishop/internal/models"

	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("Items.Product")
}

// GetByUserID returns the user's cart with its items and their products.
func (r *GORMCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.preloaded(ctx).First(&cart, "user_id = ?", userID).Error; err != nil {
		return nil, notFoundOr(err, "cart", "get cart of user "+userID)
	}
	return &cart, nil
}

func (r *GORMCartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.preloaded(ctx).First(&cart, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "cart", "get cart "+id)
	}
	return &cart, nil
}

func (r *GORMCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	if err := r.db.WithContext(ctx).Omit("Items").Create(cart).Error; err != nil {
		return duplicateOr(err, "cart already exists", "create cart")
	}
	return nil
}

// AddItem increments the existing line for the product, or inserts one.
func (r *GORMCartRepository) AddItem(ctx context.Context, cartID, productID string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			item = models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
			if err := tx.Omit("Product").Create(&item).Error; err != nil {
				return err
			}
		}
		return tx.Preload("Product").First(&item, "cart_id = ? AND product_id = ?", cartID, productID).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add product %s to cart %s: %w", productID, cartID, err)
	}
	return &item, nil
}

func (r *GORMCartRepository) GetItem(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "cart item", "get cart item "+id)
	}
	return &item, nil
}

func (r *GORMCartRepository) UpdateItemQuantity(ctx context.Context, id string, quantity int) error {
	res := r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item not found")
	}
	return nil
}

func (r *GORMCartRepository) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("cart item not found")
	}
	return nil
}

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("order with ID %s", id), "get order "+id)
	}
	return &order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *GORMOrderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of user %s: %w", userID, err)
	}
	return orders, nil
}

// ErrCartChanged is returned by Place when the cart lost lines between the
// snapshot and the commit.
var ErrCartChanged = errors.New("cart changed while placing order")

// Place inserts the order and its items and clears the cart's items atomically.
func (r *GORMOrderRepository) Place(ctx context.Context, order *models.Order, cartID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		res := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCartChanged
		}
		return nil
	})
	if errors.Is(err, ErrCartChanged) {
		return apperrors.Invalid("cart is empty")
	}
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}
	return nil
}

// GORMShipmentRepository is a GORM implementation of ShipmentRepository.
type GORMShipmentRepository struct {
	db *gorm.DB
}

// NewGORMShipmentRepository creates a new instance of GORMShipmentRepository.
func NewGORMShipmentRepository(db *gorm.DB) *GORMShipmentRepository {
	return &GORMShipmentRepository{db: db}
}

func (r *GORMShipmentRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	if err := r.db.WithContext(ctx).Create(shipment).Error; err != nil {
		return duplicateOr(err, fmt.Sprintf("order %s already has a shipment", shipment.OrderID), "create shipment")
	}
	return nil
}

func (r *GORMShipmentRepository) GetByID(ctx context.Context, id string) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "shipment", "get shipment "+id)
	}
	return &shipment, nil
}

func (r *GORMShipmentRepository) List(ctx context.Context, page Page) ([]models.Shipment, error) {
	var shipments []models.Shipment
	if err := page.apply(r.db.WithContext(ctx)).Order("created_at").Find(&shipments).Error; err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	return shipments, nil
}

func (r *GORMShipmentRepository) UpdateStatus(ctx context.Context, id string, status models.ShipmentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Shipment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update shipment status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("shipment not found")
	}
	return nil
}
