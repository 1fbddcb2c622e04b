package models

// Role is the authorization role of a user.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// User represents a user of the store.
type User struct {
	Base
	Name     string `json:"name" gorm:"type:varchar(100);not null"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password string `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	Phone    string `json:"phone,omitempty" gorm:"type:varchar(32)"`
	Role     Role   `json:"role" gorm:"type:varchar(16);not null;default:customer"`
	IsActive bool   `json:"is_active" gorm:"not null;default:true"`
}

// Address is a postal address owned by a user.
type Address struct {
	Base
	UserID     string `json:"user_id" gorm:"type:varchar(36);not null;index"`
	Street     string `json:"street" gorm:"not null"`
	City       string `json:"city" gorm:"not null"`
	State      string `json:"state" gorm:"not null"`
	Country    string `json:"country" gorm:"not null"`
	PostalCode string `json:"postal_code" gorm:"type:varchar(20);not null"`
}
