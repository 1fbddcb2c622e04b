package models

import "github.com/shopspring/decimal"

// OrderStatusPlaced is the status of every freshly created order.
const OrderStatusPlaced = "placed"

// OrderItem represents a single item within an order.
type OrderItem struct {
	Base
	OrderID   string          `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductID string          `json:"product_id" gorm:"type:varchar(36);not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(12,2);not null"` // Price at the time of order
}

// Subtotal is the line price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer order. It is never modified after creation.
type Order struct {
	Base
	UserID      string          `json:"user_id" gorm:"type:varchar(36);not null;index"`
	AddressID   *string         `json:"address_id" gorm:"type:varchar(36)"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2);not null"`
	Status      string          `json:"status" gorm:"type:varchar(20);not null"`
	Items       []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
}

// ShipmentStatus is the delivery state of a shipment.
type ShipmentStatus string

const (
	ShipmentPending   ShipmentStatus = "pending"
	ShipmentShipped   ShipmentStatus = "shipped"
	ShipmentDelivered ShipmentStatus = "delivered"
	ShipmentCancelled ShipmentStatus = "cancelled"
)

var shipmentTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentPending: {ShipmentShipped, ShipmentCancelled},
	ShipmentShipped: {ShipmentDelivered, ShipmentCancelled},
}

// Valid reports whether s is a known status.
func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentPending, ShipmentShipped, ShipmentDelivered, ShipmentCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a shipment in status s may move to next.
// Staying in the same status is always allowed.
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range shipmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Shipment tracks the delivery of one order.
type Shipment struct {
	Base
	OrderID        string         `json:"order_id" gorm:"type:varchar(36);not null;uniqueIndex"`
	TrackingNumber string         `json:"tracking_number,omitempty" gorm:"type:varchar(100)"`
	Carrier        string         `json:"carrier,omitempty" gorm:"type:varchar(100)"`
	Status         ShipmentStatus `json:"status" gorm:"type:varchar(20);not null"`
}
