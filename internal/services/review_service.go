package services

import (
	"context"

	"minishop/internal/apperrors"
	"minishop/internal/models"
	"minishop/internal/repositories"
)

// ReviewInput is the payload of a new review.
type ReviewInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// ReviewService handles business logic for product reviews.
type ReviewService struct {
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews repositories.ReviewRepository, products repositories.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Create records the requester's review of a product. A user reviews each
// product at most once.
func (s *ReviewService) Create(ctx context.Context, requester *Identity, in ReviewInput) (*models.Review, error) {
	if requester == nil {
		return nil, apperrors.Unauthenticated("authentication required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperrors.Invalid("Rating must be between 1 and 5")
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Invalid("product %s does not exist", in.ProductID)
		}
		return nil, err
	}

	exists, err := s.reviews.Exists(ctx, requester.UserID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Invalid("You have already reviewed this product")
	}

	review := &models.Review{
		UserID:    requester.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			return nil, apperrors.Invalid("You have already reviewed this product")
		}
		return nil, err
	}
	return review, nil
}

// ListByProduct returns the reviews of a product.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	return s.reviews.ListByProduct(ctx, productID)
}
