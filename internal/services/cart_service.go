package services

import (
	"context"

	"minishop/internal/apperrors"
	"minishop/internal/models"
	"minishop/internal/repositories"
)

// CartItemInput is the payload of an add-to-cart request.
type CartItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// CartService handles business logic for shopping carts.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
	users    repositories.UserRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository, users repositories.UserRepository) *CartService {
	return &CartService{carts: carts, products: products, users: users}
}

// Get returns the cart of userID, creating it on first access.
func (s *CartService) Get(ctx context.Context, requester *Identity, userID string) (*models.Cart, error) {
	if err := Authorize(requester, userID, "access this cart"); err != nil {
		return nil, err
	}
	return s.getOrCreate(ctx, userID)
}

func (s *CartService) getOrCreate(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetByUserID(ctx, userID)
	if err == nil {
		return withItems(cart), nil
	}
	if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, err
	}
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}

	cart = &models.Cart{UserID: userID}
	if err := s.carts.Create(ctx, cart); err != nil {
		// A concurrent request created it first.
		if apperrors.KindOf(err) == apperrors.KindConflict {
			existing, err := s.carts.GetByUserID(ctx, userID)
			if err != nil {
				return nil, err
			}
			return withItems(existing), nil
		}
		return nil, err
	}
	return withItems(cart), nil
}

// AddItem adds quantity units of a product to the cart of userID. Adding a
// product already in the cart increases that line's quantity.
func (s *CartService) AddItem(ctx context.Context, requester *Identity, userID string, in CartItemInput) (*models.CartItem, error) {
	if err := Authorize(requester, userID, "modify this cart"); err != nil {
		return nil, err
	}
	if in.Quantity < 1 {
		return nil, apperrors.Invalid("quantity must be at least 1")
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Invalid("product %s does not exist", in.ProductID)
		}
		return nil, err
	}

	cart, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.carts.AddItem(ctx, cart.ID, in.ProductID, in.Quantity)
}

// UpdateItem sets the quantity of cart item id.
func (s *CartService) UpdateItem(ctx context.Context, requester *Identity, id string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, apperrors.Invalid("quantity must be at least 1")
	}
	item, err := s.authorizedItem(ctx, requester, id, "modify this cart")
	if err != nil {
		return nil, err
	}
	if err := s.carts.UpdateItemQuantity(ctx, id, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// RemoveItem deletes cart item id.
func (s *CartService) RemoveItem(ctx context.Context, requester *Identity, id string) error {
	if _, err := s.authorizedItem(ctx, requester, id, "modify this cart"); err != nil {
		return err
	}
	return s.carts.DeleteItem(ctx, id)
}

func (s *CartService) authorizedItem(ctx context.Context, requester *Identity, id, action string) (*models.CartItem, error) {
	item, err := s.carts.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.GetByID(ctx, item.CartID)
	if err != nil {
		return nil, err
	}
	if err := Authorize(requester, cart.UserID, action); err != nil {
		return nil, err
	}
	return item, nil
}

func withItems(cart *models.Cart) *models.Cart {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart
}
