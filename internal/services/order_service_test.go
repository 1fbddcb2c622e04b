package services_test

import (
	"context"
	"errors"
	"testing"

	"minishop/internal/apperrors"
	"minishop/internal/models"
	"minishop/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	products := new(MockProductRepository)
	users := new(MockUserRepository)
	cartService := services.NewCartService(carts, products, users)
	owner := &services.Identity{UserID: "u1", Role: models.RoleCustomer}

	users.On("GetByID", mock.Anything, "u1").Return(&models.User{Base: models.Base{ID: "u1"}}, nil).Once()

	products.On("GetByID", mock.Anything, "p1").Return(&models.Product{Base: models.Base{ID: "p1"}}, nil)
	products.On("GetByID", mock.Anything, "ghost").Return(nil, apperrors.NotFound("Product not found"))
	carts.On("GetByUserID", mock.Anything, "u1").Return(nil, apperrors.NotFound("Cart not found")).Once()
	carts.On("Create", mock.Anything, mock.AnythingOfType("*models.Cart")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Cart).ID = "cart-1"
	}).Return(nil).Once()
	carts.On("AddItem", mock.Anything, "cart-1", "p1", 2).Return(&models.CartItem{CartID: "cart-1", ProductID: "p1", Quantity: 2}, nil).Once()

	item, err := cartService.AddItem(ctx, owner, "u1", services.CartItemInput{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	_, err = cartService.AddItem(ctx, owner, "u1", services.CartItemInput{ProductID: "p1", Quantity: 0})
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))

	_, err = cartService.AddItem(ctx, owner, "u1", services.CartItemInput{ProductID: "ghost", Quantity: 1})
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))

	stranger := &services.Identity{UserID: "u2", Role: models.RoleCustomer}
	_, err = cartService.AddItem(ctx, stranger, "u1", services.CartItemInput{ProductID: "p1", Quantity: 1})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	carts.AssertExpectations(t)
}

func TestCartService_GetCreatesLazily(t *testing.T) {
	carts := new(MockCartRepository)
	users := new(MockUserRepository)
	cartService := services.NewCartService(carts, new(MockProductRepository), users)

	users.On("GetByID", mock.Anything, "u1").Return(&models.User{Base: models.Base{ID: "u1"}}, nil).Once()
	carts.On("GetByUserID", mock.Anything, "u1").Return(nil, apperrors.NotFound("Cart not found")).Once()
	carts.On("Create", mock.Anything, mock.AnythingOfType("*models.Cart")).Return(nil).Once()

	cart, err := cartService.Get(context.Background(), &services.Identity{UserID: "u1"}, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.NotNil(t, cart.Items)
	carts.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestCartService_UnknownUserHasNoCart(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	users := new(MockUserRepository)
	products := new(MockProductRepository)
	cartService := services.NewCartService(carts, products, users)
	admin := &services.Identity{UserID: "a1", Role: models.RoleAdmin}

	users.On("GetByID", mock.Anything, "ghost").Return(nil, apperrors.NotFound("user not found"))
	carts.On("GetByUserID", mock.Anything, "ghost").Return(nil, apperrors.NotFound("cart not found"))
	products.On("GetByID", mock.Anything, "p1").Return(&models.Product{Base: models.Base{ID: "p1"}}, nil)

	_, err := cartService.Get(ctx, admin, "ghost")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = cartService.AddItem(ctx, admin, "ghost", services.CartItemInput{ProductID: "p1", Quantity: 1})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_UpdateItemChecksOwnerAfterLookup(t *testing.T) {
	ctx := context.Background()
	carts := new(MockCartRepository)
	cartService := services.NewCartService(carts, new(MockProductRepository), new(MockUserRepository))

	carts.On("GetItem", mock.Anything, "missing").Return(nil, apperrors.NotFound("Cart item not found"))
	carts.On("GetItem", mock.Anything, "item-1").Return(&models.CartItem{Base: models.Base{ID: "item-1"}, CartID: "cart-1", Quantity: 1}, nil)
	carts.On("GetByID", mock.Anything, "cart-1").Return(&models.Cart{Base: models.Base{ID: "cart-1"}, UserID: "u1"}, nil)
	carts.On("UpdateItemQuantity", mock.Anything, "item-1", 4).Return(nil).Once()

	stranger := &services.Identity{UserID: "u2", Role: models.RoleCustomer}
	_, err := cartService.UpdateItem(ctx, stranger, "missing", 1)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = cartService.UpdateItem(ctx, stranger, "item-1", 4)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	admin := &services.Identity{UserID: "a1", Role: models.RoleAdmin}
	item, err := cartService.UpdateItem(ctx, admin, "item-1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	carts.AssertExpectations(t)
}

func TestOrderService_CreateFromCart(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderRepository)
	carts := new(MockCartRepository)
	addresses := new(MockAddressRepository)
	publisher := new(MockPublisher)
	orderService := services.NewOrderService(orders, carts, addresses, publisher, nil)
	owner := &services.Identity{UserID: "u1", Role: models.RoleCustomer}

	cart := &models.Cart{
		Base:   models.Base{ID: "cart-1"},
		UserID: "u1",
		Items: []models.CartItem{
			{ProductID: "p1", Quantity: 2, Product: &models.Product{Base: models.Base{ID: "p1"}, Price: decimal.RequireFromString("10.50")}},
			{ProductID: "p2", Quantity: 1, Product: &models.Product{Base: models.Base{ID: "p2"}, Price: decimal.RequireFromString("4.00")}},
		},
	}
	carts.On("GetByUserID", mock.Anything, "u1").Return(cart, nil).Once()
	addresses.On("ListByUser", mock.Anything, "u1").Return([]models.Address{{Base: models.Base{ID: "addr-1"}, UserID: "u1"}}, nil).Once()
	orders.On("Place", mock.Anything, mock.AnythingOfType("*models.Order"), "cart-1").Return(nil).Once()
	publisher.On("Publish", services.EventOrderPlaced, mock.AnythingOfType("services.OrderPlacedEvent")).Return(errors.New("broker down")).Once()

	order, err := orderService.CreateFromCart(ctx, owner, "u1", "")
	require.NoError(t, err, "publish failures must not fail the order")

	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.True(t, decimal.RequireFromString("25").Equal(order.TotalAmount))
	require.Len(t, order.Items, 2)
	assert.True(t, decimal.RequireFromString("10.50").Equal(order.Items[0].Price))
	require.NotNil(t, order.AddressID)
	assert.Equal(t, "addr-1", *order.AddressID)

	orders.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOrderService_CreateFromEmptyCart(t *testing.T) {
	carts := new(MockCartRepository)
	orders := new(MockOrderRepository)
	orderService := services.NewOrderService(orders, carts, new(MockAddressRepository), nil, nil)

	carts.On("GetByUserID", mock.Anything, "u1").Return(&models.Cart{Base: models.Base{ID: "cart-1"}, UserID: "u1"}, nil).Once()

	_, err := orderService.CreateFromCart(context.Background(), &services.Identity{UserID: "u1"}, "u1", "")
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))
	orders.AssertNotCalled(t, "Place", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderService_CreateRejectsForeignAddress(t *testing.T) {
	carts := new(MockCartRepository)
	addresses := new(MockAddressRepository)
	orderService := services.NewOrderService(new(MockOrderRepository), carts, addresses, nil, nil)

	carts.On("GetByUserID", mock.Anything, "u1").Return(&models.Cart{
		Base:  models.Base{ID: "cart-1"},
		Items: []models.CartItem{{ProductID: "p1", Quantity: 1, Product: &models.Product{Price: decimal.NewFromInt(1)}}},
	}, nil).Once()
	addresses.On("GetByID", mock.Anything, "addr-9").Return(&models.Address{Base: models.Base{ID: "addr-9"}, UserID: "u9"}, nil).Once()

	_, err := orderService.CreateFromCart(context.Background(), &services.Identity{UserID: "u1"}, "u1", "addr-9")
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))
}

func TestOrderService_GetAppliesOwnership(t *testing.T) {
	ctx := context.Background()
	orders := new(MockOrderRepository)
	orderService := services.NewOrderService(orders, new(MockCartRepository), new(MockAddressRepository), nil, nil)

	orders.On("GetByID", mock.Anything, "o1").Return(&models.Order{Base: models.Base{ID: "o1"}, UserID: "u1"}, nil)
	orders.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("order with ID missing not found"))

	_, err := orderService.Get(ctx, &services.Identity{UserID: "u2"}, "o1")
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	_, err = orderService.Get(ctx, &services.Identity{UserID: "u2"}, "missing")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	order, err := orderService.Get(ctx, &services.Identity{UserID: "a1", Role: models.RoleAdmin}, "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
}
