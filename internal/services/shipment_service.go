package services

import (
	"context"
	"time"

	"minishop/internal/apperrors"
	"minishop/internal/logger"
	"minishop/internal/models"
	"minishop/internal/repositories"

	"go.uber.org/zap"
)

// ShipmentInput is the payload of a new shipment.
type ShipmentInput struct {
	OrderID        string `json:"order_id" validate:"required"`
	TrackingNumber string `json:"tracking_number" validate:"max=100"`
	Carrier        string `json:"carrier" validate:"max=100"`
	Status         string `json:"status"`
}

// ShipmentService handles business logic for shipments.
type ShipmentService struct {
	shipments repositories.ShipmentRepository
	orders    repositories.OrderRepository
	events    EventPublisher
	log       *zap.Logger
}

// NewShipmentService creates a new ShipmentService. events may be nil.
func NewShipmentService(shipments repositories.ShipmentRepository, orders repositories.OrderRepository, events EventPublisher, log *zap.Logger) *ShipmentService {
	return &ShipmentService{
		shipments: shipments,
		orders:    orders,
		events:    events,
		log:       logger.OrNop(log).Named("shipments"),
	}
}

// Create opens the shipment of an order. An order has at most one shipment.
func (s *ShipmentService) Create(ctx context.Context, in ShipmentInput) (*models.Shipment, error) {
	status := models.ShipmentPending
	if in.Status != "" {
		status = models.ShipmentStatus(in.Status)
		if !status.Valid() {
			return nil, apperrors.Invalid("invalid shipment status %q", in.Status)
		}
	}
	if _, err := s.orders.GetByID(ctx, in.OrderID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Invalid("order %s does not exist", in.OrderID)
		}
		return nil, err
	}

	shipment := &models.Shipment{
		OrderID:        in.OrderID,
		TrackingNumber: in.TrackingNumber,
		Carrier:        in.Carrier,
		Status:         status,
	}
	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}
	s.log.Info("shipment created", zap.String("shipment_id", shipment.ID), zap.String("order_id", in.OrderID))
	return shipment, nil
}

// List returns one page of shipments.
func (s *ShipmentService) List(ctx context.Context, page repositories.Page) ([]models.Shipment, error) {
	return s.shipments.List(ctx, page.Normalize())
}

// Get returns a shipment by ID.
func (s *ShipmentService) Get(ctx context.Context, id string) (*models.Shipment, error) {
	return s.shipments.GetByID(ctx, id)
}

// UpdateStatus moves shipment id to status when the transition is allowed.
func (s *ShipmentService) UpdateStatus(ctx context.Context, id, status string) (*models.Shipment, error) {
	next := models.ShipmentStatus(status)
	if !next.Valid() {
		return nil, apperrors.Invalid("invalid shipment status %q", status)
	}
	shipment, err := s.shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shipment.Status == next {
		return shipment, nil
	}
	if !shipment.Status.CanTransitionTo(next) {
		return nil, apperrors.Invalid("cannot change shipment status from %s to %s", shipment.Status, next)
	}

	if err := s.shipments.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	previous := shipment.Status
	shipment.Status = next

	s.log.Info("shipment status changed",
		zap.String("shipment_id", id),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)
	publish(s.events, s.log, EventShipmentStatusChanged, ShipmentStatusChangedEvent{
		ShipmentID: id,
		OrderID:    shipment.OrderID,
		From:       previous,
		To:         next,
		OccurredAt: time.Now().UTC(),
	})
	return shipment, nil
}
