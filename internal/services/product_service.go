package services

import (
	"context"

	"minishop/internal/apperrors"
	"minishop/internal/logger"
	"minishop/internal/models"
	"minishop/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CategoryInput is the payload of a category create or update.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// CategoryService handles business logic for categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns every category.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx)
}

// Create adds a category. A taken name is a Conflict.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	category := &models.Category{Name: in.Name, Description: in.Description}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update replaces the name and description of category id.
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = in.Name
	category.Description = in.Description
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes category id.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ProductInput is the payload of a new product.
type ProductInput struct {
	Name        string          `json:"name" validate:"required,max=100"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"gte=0"`
	CategoryID  string          `json:"category_id" validate:"required"`
	SellerID    *string         `json:"seller_id"`
}

// ProductUpdate is a partial product update; nil fields are left unchanged.
type ProductUpdate struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *string          `json:"category_id" validate:"omitempty,min=1"`
}

// ProductService handles business logic for products.
type ProductService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	log        *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(products repositories.ProductRepository, categories repositories.CategoryRepository, log *zap.Logger) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
		log:        logger.OrNop(log).Named("products"),
	}
}

// List returns one page of products, optionally within a category.
func (s *ProductService) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	filter.Page = filter.Page.Normalize()
	return s.products.List(ctx, filter)
}

// Get returns a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// Create adds a product. Sellers always own the products they create.
func (s *ProductService) Create(ctx context.Context, requester *Identity, in ProductInput) (*models.Product, error) {
	if requester == nil {
		return nil, apperrors.Unauthenticated("authentication required")
	}
	if in.Price.IsNegative() {
		return nil, apperrors.Invalid("price must not be negative")
	}
	if in.Stock < 0 {
		return nil, apperrors.Invalid("stock must not be negative")
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}
	// Sellers always own what they create; only admins may assign a seller.
	switch {
	case requester.Role == models.RoleSeller:
		sellerID := requester.UserID
		product.SellerID = &sellerID
	case requester.IsAdmin():
		product.SellerID = in.SellerID
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.log.Info("product created", zap.String("product_id", product.ID), zap.String("by", requester.UserID))
	return product, nil
}

// ListForSeller returns the requester's own products, or every product for admins.
func (s *ProductService) ListForSeller(ctx context.Context, requester *Identity, page repositories.Page) ([]models.Product, error) {
	filter := repositories.ProductFilter{Page: page.Normalize()}
	if !requester.IsAdmin() {
		filter.SellerID = requester.UserID
	}
	return s.products.List(ctx, filter)
}

// UpdateAsSeller applies a partial update to a product the requester owns.
// Products the requester cannot see are reported as not found.
func (s *ProductService) UpdateAsSeller(ctx context.Context, requester *Identity, id string, in ProductUpdate) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, apperrors.Invalid("price must not be negative")
		}
		product.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, apperrors.Invalid("stock must not be negative")
		}
		product.Stock = *in.Stock
	}
	if in.CategoryID != nil && *in.CategoryID != product.CategoryID {
		if err := s.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteAsSeller removes a product the requester owns.
func (s *ProductService) DeleteAsSeller(ctx context.Context, requester *Identity, id string) error {
	if _, err := s.ownedProduct(ctx, requester, id); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.String("product_id", id), zap.String("by", requester.UserID))
	return nil
}

// DeleteAsAdmin removes any product.
func (s *ProductService) DeleteAsAdmin(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product deleted by admin", zap.String("product_id", id))
	return nil
}

func (s *ProductService) ownedProduct(ctx context.Context, requester *Identity, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !requester.IsAdmin() && !product.OwnedBy(requester.UserID) {
		return nil, apperrors.NotFound("Product not found or not owned by seller")
	}
	return product, nil
}

func (s *ProductService) checkCategory(ctx context.Context, id string) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return apperrors.Invalid("category %s does not exist", id)
		}
		return err
	}
	return nil
}
