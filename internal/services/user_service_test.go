package services_test

import (
	"context"
	"testing"

	"minishop/internal/apperrors"
	"minishop/internal/models"
	"minishop/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string { return &s }

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	mockRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, apperrors.NotFound("User not found")).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := userService.Register(ctx, services.RegisterInput{
		Name:     "New",
		Email:    "New@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	mockRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(&models.User{Email: "taken@example.com"}, nil).Once()

	_, err := userService.Register(context.Background(), services.RegisterInput{Name: "X", Email: "taken@example.com", Password: "password123"})
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_UpdateOwnership(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	owner := &services.Identity{UserID: "u1", Role: models.RoleCustomer}
	stranger := &services.Identity{UserID: "u2", Role: models.RoleCustomer}
	admin := &services.Identity{UserID: "a1", Role: models.RoleAdmin}

	_, err := userService.Update(ctx, stranger, "u1", services.UserUpdate{Name: strPtr("Hacked")})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	mockRepo.On("GetByID", mock.Anything, "u1").Return(&models.User{Base: models.Base{ID: "u1"}, Name: "Old", Role: models.RoleCustomer}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	// Customers may not promote themselves.
	_, err = userService.Update(ctx, owner, "u1", services.UserUpdate{Role: strPtr("admin")})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	user, err := userService.Update(ctx, owner, "u1", services.UserUpdate{Name: strPtr("New")})
	require.NoError(t, err)
	assert.Equal(t, "New", user.Name)

	user, err = userService.Update(ctx, admin, "u1", services.UserUpdate{Role: strPtr("seller")})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, user.Role)

	_, err = userService.Update(ctx, admin, "u1", services.UserUpdate{Role: strPtr("superuser")})
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))
}

func TestUserService_ChangeRole(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	mockRepo.On("GetByID", mock.Anything, "u1").Return(&models.User{Base: models.Base{ID: "u1"}, Role: models.RoleCustomer}, nil)
	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("User not found"))
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := userService.ChangeRole(ctx, "u1", "seller")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSeller, user.Role)

	_, err = userService.ChangeRole(ctx, "u1", "root")
	assert.Equal(t, apperrors.KindInvalid, apperrors.KindOf(err))

	_, err = userService.ChangeRole(ctx, "missing", "seller")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	mockRepo.AssertExpectations(t)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	userService := services.NewUserService(mockRepo, nil)

	existing := &models.User{Base: models.Base{ID: "u1"}, Email: "boss@example.com", Role: models.RoleCustomer}
	mockRepo.On("GetByEmail", mock.Anything, "boss@example.com").Return(existing, nil).Once()
	mockRepo.On("Update", mock.Anything, existing).Return(nil).Once()

	user, err := userService.EnsureAdmin(ctx, services.RegisterInput{Name: "Boss", Email: "boss@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	mockRepo.On("GetByEmail", mock.Anything, "root@example.com").Return(nil, apperrors.NotFound("User not found")).Twice()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

	created, err := userService.EnsureAdmin(ctx, services.RegisterInput{Name: "Root", Email: "root@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)
	mockRepo.AssertExpectations(t)
}

func TestAddressService_Ownership(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAddressRepository)
	addressService := services.NewAddressService(mockRepo, new(MockUserRepository))

	owner := &services.Identity{UserID: "u1", Role: models.RoleCustomer}
	stranger := &services.Identity{UserID: "u2", Role: models.RoleCustomer}
	address := &models.Address{Base: models.Base{ID: "addr-1"}, UserID: "u1", City: "Old Town"}

	mockRepo.On("GetByID", mock.Anything, "addr-1").Return(address, nil)
	mockRepo.On("Update", mock.Anything, address).Return(nil).Once()

	_, err := addressService.Update(ctx, stranger, "addr-1", services.AddressUpdate{City: strPtr("Elsewhere")})
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	updated, err := addressService.Update(ctx, owner, "addr-1", services.AddressUpdate{City: strPtr("New Town")})
	require.NoError(t, err)
	assert.Equal(t, "New Town", updated.City)

	_, err = addressService.ListByUser(ctx, stranger, "u1")
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(addressService.Delete(ctx, stranger, "addr-1")))
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAddressService_CreateForUnknownUser(t *testing.T) {
	ctx := context.Background()
	addresses := new(MockAddressRepository)
	users := new(MockUserRepository)
	addressService := services.NewAddressService(addresses, users)
	admin := &services.Identity{UserID: "a1", Role: models.RoleAdmin}
	in := services.AddressInput{Street: "1 Main St", City: "Springfield", State: "IL", Country: "US", PostalCode: "62701"}

	users.On("GetByID", mock.Anything, "ghost").Return(nil, apperrors.NotFound("user not found"))
	users.On("GetByID", mock.Anything, "u1").Return(&models.User{Base: models.Base{ID: "u1"}}, nil)
	addresses.On("Create", mock.Anything, mock.AnythingOfType("*models.Address")).Return(nil).Once()

	_, err := addressService.Create(ctx, admin, "ghost", in)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	address, err := addressService.Create(ctx, admin, "u1", in)
	require.NoError(t, err)
	assert.Equal(t, "u1", address.UserID)
	addresses.AssertExpectations(t)
}
