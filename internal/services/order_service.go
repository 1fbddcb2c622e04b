package services

import (
	"context"
	"time"

	"minishop/internal/apperrors"
	"minishop/internal/logger"
	"minishop/internal/models"
	"minishop/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles business logic for orders.
type OrderService struct {
	orders    repositories.OrderRepository
	carts     repositories.CartRepository
	addresses repositories.AddressRepository
	events    EventPublisher
	log       *zap.Logger
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orders repositories.OrderRepository, carts repositories.CartRepository, addresses repositories.AddressRepository, events EventPublisher, log *zap.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		addresses: addresses,
		events:    events,
		log:       logger.OrNop(log).Named("orders"),
	}
}

// CreateFromCart turns the cart of userID into an order and empties the cart.
// Each line keeps the product price at the time of ordering. addressID is
// optional; without it the user's first address is used if there is one.
func (s *OrderService) CreateFromCart(ctx context.Context, requester *Identity, userID, addressID string) (*models.Order, error) {
	if err := Authorize(requester, userID, "create orders for this user"); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetByUserID(ctx, userID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Invalid("Cart is empty")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.Invalid("Cart is empty")
	}

	shipTo, err := s.resolveAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:    userID,
		AddressID: shipTo,
		Status:    models.OrderStatusPlaced,
		Items:     make([]models.OrderItem, 0, len(cart.Items)),
	}
	total := decimal.Zero
	for _, line := range cart.Items {
		if line.Product == nil {
			return nil, apperrors.Invalid("product %s is no longer available", line.ProductID)
		}
		item := models.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		}
		total = total.Add(item.Subtotal())
		order.Items = append(order.Items, item)
	}
	order.TotalAmount = total

	if err := s.orders.Place(ctx, order, cart.ID); err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.String("total", total.StringFixed(2)),
		zap.Int("items", len(order.Items)),
	)
	publish(s.events, s.log, EventOrderPlaced, OrderPlacedEvent{
		OrderID:    order.ID,
		UserID:     userID,
		Total:      total,
		ItemCount:  len(order.Items),
		OccurredAt: time.Now().UTC(),
	})
	return order, nil
}

func (s *OrderService) resolveAddress(ctx context.Context, userID, addressID string) (*string, error) {
	if addressID != "" {
		address, err := s.addresses.GetByID(ctx, addressID)
		if err != nil {
			if apperrors.KindOf(err) == apperrors.KindNotFound {
				return nil, apperrors.Invalid("address %s does not exist", addressID)
			}
			return nil, err
		}
		if address.UserID != userID {
			return nil, apperrors.Invalid("address %s does not belong to user %s", addressID, userID)
		}
		return &address.ID, nil
	}

	addresses, err := s.addresses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, nil
	}
	return &addresses[0].ID, nil
}

// ListByUser returns the orders of userID, newest first.
func (s *OrderService) ListByUser(ctx context.Context, requester *Identity, userID string) ([]models.Order, error) {
	if err := Authorize(requester, userID, "view orders of this user"); err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, userID)
}

// Get returns order id with its items.
func (s *OrderService) Get(ctx context.Context, requester *Identity, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(requester, order.UserID, "view this order"); err != nil {
		return nil, err
	}
	return order, nil
}
