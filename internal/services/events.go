package services

import (
	"time"

	"minishop/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Routing keys of published domain events.
const (
	EventOrderPlaced           = "order.placed"
	EventShipmentStatusChanged = "shipment.status_changed"
)

// EventPublisher publishes domain events. *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(routingKey string, payload interface{}) error
}

// OrderPlacedEvent is published after an order is committed.
type OrderPlacedEvent struct {
	OrderID    string          `json:"order_id"`
	UserID     string          `json:"user_id"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ShipmentStatusChangedEvent is published after a shipment status update.
type ShipmentStatusChangedEvent struct {
	ShipmentID string                `json:"shipment_id"`
	OrderID    string                `json:"order_id"`
	From       models.ShipmentStatus `json:"from"`
	To         models.ShipmentStatus `json:"to"`
	OccurredAt time.Time             `json:"occurred_at"`
}

// publish sends an event when a publisher is configured. Failures are logged
// and never fail the operation that produced the event.
func publish(p EventPublisher, log *zap.Logger, routingKey string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		log.Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
