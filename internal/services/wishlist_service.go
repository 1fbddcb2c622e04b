package services

import (
	"context"

	"minishop/internal/apperrors"
	"minishop/internal/models"
	"minishop/internal/repositories"
)

// WishlistInput is the payload of an add-to-wishlist request.
type WishlistInput struct {
	ProductID string `json:"product_id" validate:"required"`
}

// WishlistService handles business logic for wishlists.
type WishlistService struct {
	wishlist repositories.WishlistRepository
	products repositories.ProductRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlist repositories.WishlistRepository, products repositories.ProductRepository) *WishlistService {
	return &WishlistService{wishlist: wishlist, products: products}
}

// Add saves a product to the requester's wishlist. Adding a product that is
// already saved returns the existing entry and created == false.
func (s *WishlistService) Add(ctx context.Context, requester *Identity, in WishlistInput) (entry *models.Wishlist, created bool, err error) {
	if requester == nil {
		return nil, false, apperrors.Unauthenticated("authentication required")
	}
	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, false, apperrors.Invalid("product %s does not exist", in.ProductID)
		}
		return nil, false, err
	}

	if existing, err := s.wishlist.Find(ctx, requester.UserID, in.ProductID); err == nil {
		return existing, false, nil
	} else if apperrors.KindOf(err) != apperrors.KindNotFound {
		return nil, false, err
	}

	entry = &models.Wishlist{UserID: requester.UserID, ProductID: in.ProductID}
	if err := s.wishlist.Create(ctx, entry); err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			existing, findErr := s.wishlist.Find(ctx, requester.UserID, in.ProductID)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	entry.Product = product
	return entry, true, nil
}

// List returns the requester's wishlist with products.
func (s *WishlistService) List(ctx context.Context, requester *Identity) ([]models.Wishlist, error) {
	if requester == nil {
		return nil, apperrors.Unauthenticated("authentication required")
	}
	return s.wishlist.ListByUser(ctx, requester.UserID)
}

// Remove deletes wishlist entry id.
func (s *WishlistService) Remove(ctx context.Context, requester *Identity, id string) error {
	entry, err := s.wishlist.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(requester, entry.UserID, "remove this wishlist item"); err != nil {
		return err
	}
	return s.wishlist.Delete(ctx, id)
}
