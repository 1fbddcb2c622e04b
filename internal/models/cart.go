package models

// Cart is the single shopping cart of a user.
type Cart struct {
	Base
	UserID string     `json:"user_id" gorm:"type:varchar(36);not null;uniqueIndex"`
	Items  []CartItem `json:"items" gorm:"foreignKey:CartID"`
}

// CartItem is one product line of a cart. A product appears at most once per cart.
type CartItem struct {
	Base
	CartID    string   `json:"cart_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product"`
	Quantity  int      `json:"quantity" gorm:"not null"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
