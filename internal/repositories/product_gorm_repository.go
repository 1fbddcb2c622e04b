package repositories

import (
	"context"
	"fmt"

	"minishop/internal/apperrors"
	"minishop/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// List retrieves one page of products matching filter.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx)
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SellerID != "" {
		q = q.Where("seller_id = ?", filter.SellerID)
	}

	var products []models.Product
	if err := filter.Page.apply(q).Order("created_at").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("product with ID %s", id), "get product by ID "+id)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(product).Select("*").Omit("created_at").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(fmt.Sprintf("product with ID %s not found", product.ID))
	}
	return nil
}

// Delete deletes a product and the cart lines, wishlist entries and reviews
// pointing at it. Order items keep their product ID as history.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound(fmt.Sprintf("product with ID %s not found", id))
		}
		for _, m := range []interface{}{&models.CartItem{}, &models.Wishlist{}, &models.Review{}} {
			if err := tx.Where("product_id = ?", id).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to delete references to product %s: %w", id, err)
			}
		}
		return nil
	})
}

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "category", "get category "+id)
	}
	return &category, nil
}

func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return duplicateOr(err, fmt.Sprintf("category '%s' already exists", category.Name), "create category")
	}
	return nil
}

func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return duplicateOr(err, fmt.Sprintf("category '%s' already exists", category.Name), "update category")
	}
	return nil
}

func (r *GORMCategoryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("category not found")
	}
	return nil
}

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return duplicateOr(err, "product already reviewed by this user", "create review")
	}
	return nil
}

func (r *GORMReviewRepository) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up review: %w", err)
	}
	return count > 0, nil
}

// ListByProduct returns a product's reviews, newest first.
func (r *GORMReviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews of product %s: %w", productID, err)
	}
	return reviews, nil
}

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{db: db}
}

func (r *GORMWishlistRepository) Find(ctx context.Context, userID, productID string) (*models.Wishlist, error) {
	var entry models.Wishlist
	err := r.db.WithContext(ctx).Preload("Product").
		First(&entry, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return nil, notFoundOr(err, "wishlist item", "find wishlist item")
	}
	return &entry, nil
}

func (r *GORMWishlistRepository) GetByID(ctx context.Context, id string) (*models.Wishlist, error) {
	var entry models.Wishlist
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "wishlist item", "get wishlist item "+id)
	}
	return &entry, nil
}

func (r *GORMWishlistRepository) Create(ctx context.Context, entry *models.Wishlist) error {
	if err := r.db.WithContext(ctx).Omit("Product").Create(entry).Error; err != nil {
		return duplicateOr(err, "product already in wishlist", "add wishlist item")
	}
	return nil
}

func (r *GORMWishlistRepository) ListByUser(ctx context.Context, userID string) ([]models.Wishlist, error) {
	var entries []models.Wishlist
	if err := r.db.WithContext(ctx).Preload("Product").Where("user_id = ?", userID).Order("created_at").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list wishlist of user %s: %w", userID, err)
	}
	return entries, nil
}

func (r *GORMWishlistRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Wishlist{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete wishlist item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("wishlist item not found")
	}
	return nil
}
