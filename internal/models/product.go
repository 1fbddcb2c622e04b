package models

import "github.com/shopspring/decimal"

// Category groups products.
type Category struct {
	Base
	Name        string `json:"name" gorm:"uniqueIndex;type:varchar(100);not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`
}

// Product represents a product in the store. A nil SellerID means the platform owns it.
type Product struct {
	Base
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	CategoryID  string          `json:"category_id" gorm:"type:varchar(36);not null;index"`
	SellerID    *string         `json:"seller_id" gorm:"type:varchar(36);index"`
}

// OwnedBy reports whether the product belongs to the given seller.
func (p *Product) OwnedBy(sellerID string) bool {
	return p.SellerID != nil && *p.SellerID == sellerID
}

// Review is a user's rating of a product.
type Review struct {
	Base
	UserID    string `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_product"`
	ProductID string `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_product;index"`
	Rating    int    `json:"rating" gorm:"not null"`
	Comment   string `json:"comment,omitempty" gorm:"type:text"`
}

// Wishlist is a single saved product of a user.
type Wishlist struct {
	Base
	UserID    string   `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_wishlist_user_product"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
