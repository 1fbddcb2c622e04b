package services_test

import (
	"context"
	"fmt"
	"testing"

	"minishop/internal/apperrors"
	"minishop/internal/models"
	"minishop/internal/repositories"
	"minishop/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_CreateForcesSeller(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	productService := services.NewProductService(products, categories, nil)

	categories.On("GetByID", mock.Anything, "cat-1").Return(&models.Category{Base: models.Base{ID: "cat-1"}}, nil)
	products.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

	seller := &services.Identity{UserID: "seller-1", Role: models.RoleSeller}
	product, err := productService.Create(ctx, seller, services.ProductInput{
		Name:       "Lamp",
		Price:      decimal.RequireFromString("19.99"),
		Stock:      3,
		CategoryID: "cat-1",
		SellerID:   strPtr("someone-else"),
	})
	require.NoError(t, err)
	require.NotNil(t, product.SellerID)
	assert.Equal(t, "seller-1", *product.SellerID)

	customer := &services.Identity{UserID: "cust-1", Role: models.RoleCustomer}
	product, err = productService.Create(ctx, customer, services.ProductInput{Name: "Chair", Price: decimal.NewFromInt(5), CategoryID: "cat-1"})
	require.NoError(t, err)
	assert.Nil(t, product.SellerID)

	// A customer cannot place a product in a seller's listing.
	product, err = productService.Create(ctx, customer, services.ProductInput{
		Name:       "Fake",
		Price:      decimal.NewFromInt(5),
		CategoryID: "cat-1",
		SellerID:   strPtr("seller-1"),
	})
	require.NoError(t, err)
	assert.Nil(t, product.SellerID)

	admin := &services.Identity{UserID: "a1", Role: models.RoleAdmin}
	product, err = productService.Create(ctx, admin, services.ProductInput{
		Name:       "Assigned",
		Price:      decimal.NewFromInt(5),
		CategoryID: "cat-1",
		SellerID:   strPtr("seller-1"),
	})
	require.NoError(t, err)
	require.NotNil(t, product.SellerID)
	assert.Equal(t, "seller-1", *product.SellerID)
	products.AssertExpectations(t)
}

func TestProductService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	categories := new(MockCategoryRepository)
	productService := services.NewProductService(products, categories, nil)
	admin := &services.Identity{UserID: "a1", Role: models.RoleAdmin}

	categories.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("Category not found"))

	tests := []struct {
		name  string
		input services.ProductInput
	}{
		{"negative price", services.ProductInput{Name: "X", Price: decimal.NewFromInt(-1), CategoryID: "missing"}},
		{"negative stock", services.ProductInput{Name: "X", Price: decimal.NewFromInt(1), Stock: -1, CategoryID: "missing"}},
		{"unknown category", services.ProductInput{Name: "X", Price: decimal.NewFromInt(1), CategoryID: "missing"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := productService.Create(ctx, admin, tt.input)
			assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))
		})
	}
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_SellerCannotTouchOthersProducts(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	productService := services.NewProductService(products, new(MockCategoryRepository), nil)

	owned := &models.Product{Base: models.Base{ID: "p1"}, Name: "Desk", Price: decimal.NewFromInt(100), SellerID: strPtr("seller-s")}
	products.On("GetByID", mock.Anything, "p1").Return(owned, nil)

	other := &services.Identity{UserID: "seller-t", Role: models.RoleSeller}
	_, err := productService.UpdateAsSeller(ctx, other, "p1", services.ProductUpdate{Name: strPtr("Mine now")})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(productService.DeleteAsSeller(ctx, other, "p1")))

	products.On("Update", mock.Anything, owned).Return(nil).Once()
	owner := &services.Identity{UserID: "seller-s", Role: models.RoleSeller}
	price := decimal.NewFromInt(80)
	updated, err := productService.UpdateAsSeller(ctx, owner, "p1", services.ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(updated.Price))
	assert.Equal(t, "Desk", updated.Name)

	products.On("Delete", mock.Anything, "p1").Return(nil).Once()
	admin := &services.Identity{UserID: "a1", Role: models.RoleAdmin}
	assert.NoError(t, productService.DeleteAsSeller(ctx, admin, "p1"))
	products.AssertExpectations(t)
}

func TestProductService_ListForSeller(t *testing.T) {
	ctx := context.Background()
	products := new(MockProductRepository)
	productService := services.NewProductService(products, new(MockCategoryRepository), nil)

	products.On("List", mock.Anything, repositories.ProductFilter{Page: repositories.Page{Limit: 100}, SellerID: "seller-1"}).Return([]models.Product{{Name: "Own"}}, nil).Once()
	products.On("List", mock.Anything, repositories.ProductFilter{Page: repositories.Page{Limit: 100}}).Return([]models.Product{{Name: "Own"}, {Name: "Other"}}, nil).Once()

	own, err := productService.ListForSeller(ctx, &services.Identity{UserID: "seller-1", Role: models.RoleSeller}, repositories.Page{})
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := productService.ListForSeller(ctx, &services.Identity{UserID: "a1", Role: models.RoleAdmin}, repositories.Page{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	products.AssertExpectations(t)
}

func TestProductService_DeleteAsAdmin(t *testing.T) {
	products := new(MockProductRepository)
	productService := services.NewProductService(products, new(MockCategoryRepository), nil)

	products.On("Delete", mock.Anything, "99").Return(apperrors.NotFound("Product not found")).Once()
	err := productService.DeleteAsAdmin(context.Background(), "99")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	products.On("Delete", mock.Anything, "1").Return(fmt.Errorf("database error")).Once()
	err = productService.DeleteAsAdmin(context.Background(), "1")
	assert.Contains(t, err.Error(), "database error")
	products.AssertExpectations(t)
}

func TestCategoryService_UpdateMissing(t *testing.T) {
	categories := new(MockCategoryRepository)
	categoryService := services.NewCategoryService(categories)

	categories.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("Category not found")).Once()
	_, err := categoryService.Update(context.Background(), "missing", services.CategoryInput{Name: "X"})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	categories.AssertExpectations(t)
}
