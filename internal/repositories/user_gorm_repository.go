package repositories

import (
	"context"
	"fmt"

	"minishop/internal/apperrors"
	"minishop/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{db: db}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return duplicateOr(err, fmt.Sprintf("email '%s' already registered", user.Email), "create user")
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, notFoundOr(err, "user", "get user by email")
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "user", "get user by ID "+id)
	}
	return &user, nil
}

// List returns one page of users ordered by creation time.
func (r *GORMUserRepository) List(ctx context.Context, page Page) ([]models.User, error) {
	var users []models.User
	if err := page.apply(r.db.WithContext(ctx)).Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update saves every field of user.
func (r *GORMUserRepository) Update(ctx context.Context, user *models.User) error {
	res := r.db.WithContext(ctx).Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	return nil
}

// Delete removes a user together with the rows only they can reach:
// addresses, cart and wishlist. Orders and reviews are kept as history.
func (r *GORMUserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.NotFound("user not found")
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Address{}).Error; err != nil {
			return fmt.Errorf("failed to delete addresses of user %s: %w", id, err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Wishlist{}).Error; err != nil {
			return fmt.Errorf("failed to delete wishlist of user %s: %w", id, err)
		}
		carts := tx.Model(&models.Cart{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("cart_id IN (?)", carts).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items of user %s: %w", id, err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Cart{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart of user %s: %w", id, err)
		}
		return nil
	})
}

// GORMAddressRepository is a GORM implementation of AddressRepository.
type GORMAddressRepository struct {
	db *gorm.DB
}

// NewGORMAddressRepository creates a new instance of GORMAddressRepository.
func NewGORMAddressRepository(db *gorm.DB) *GORMAddressRepository {
	return &GORMAddressRepository{db: db}
}

func (r *GORMAddressRepository) Create(ctx context.Context, address *models.Address) error {
	if err := r.db.WithContext(ctx).Create(address).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *GORMAddressRepository) GetByID(ctx context.Context, id string) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err, "address", "get address "+id)
	}
	return &address, nil
}

// ListByUser returns a user's addresses, oldest first.
func (r *GORMAddressRepository) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to list addresses of user %s: %w", userID, err)
	}
	return addresses, nil
}

func (r *GORMAddressRepository) Update(ctx context.Context, address *models.Address) error {
	if err := r.db.WithContext(ctx).Save(address).Error; err != nil {
		return fmt.Errorf("failed to update address: %w", err)
	}
	return nil
}

func (r *GORMAddressRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Address{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete address: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("address not found")
	}
	return nil
}
