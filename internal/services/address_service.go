package services

import (
	"context"

	"minishop/internal/models"
	"minishop/internal/repositories"
)

// AddressInput is the payload of a new address.
type AddressInput struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
}

// AddressUpdate is a partial address update; nil fields are left unchanged.
type AddressUpdate struct {
	Street     *string `json:"street" validate:"omitempty,min=1"`
	City       *string `json:"city" validate:"omitempty,min=1"`
	State      *string `json:"state" validate:"omitempty,min=1"`
	Country    *string `json:"country" validate:"omitempty,min=1"`
	PostalCode *string `json:"postal_code" validate:"omitempty,min=1,max=20"`
}

// AddressService handles business logic for user addresses.
type AddressService struct {
	repo  repositories.AddressRepository
	users repositories.UserRepository
}

// NewAddressService creates a new AddressService.
func NewAddressService(repo repositories.AddressRepository, users repositories.UserRepository) *AddressService {
	return &AddressService{repo: repo, users: users}
}

// Create adds an address for userID.
func (s *AddressService) Create(ctx context.Context, requester *Identity, userID string, in AddressInput) (*models.Address, error) {
	if err := Authorize(requester, userID, "add an address for this user"); err != nil {
		return nil, err
	}
	if err := requireUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	address := &models.Address{
		UserID:     userID,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		Country:    in.Country,
		PostalCode: in.PostalCode,
	}
	if err := s.repo.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// ListByUser returns the addresses of userID.
func (s *AddressService) ListByUser(ctx context.Context, requester *Identity, userID string) ([]models.Address, error) {
	if err := Authorize(requester, userID, "view addresses of this user"); err != nil {
		return nil, err
	}
	return s.repo.ListByUser(ctx, userID)
}

// Update applies a partial update to address id.
func (s *AddressService) Update(ctx context.Context, requester *Identity, id string, in AddressUpdate) (*models.Address, error) {
	address, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(requester, address.UserID, "update this address"); err != nil {
		return nil, err
	}

	if in.Street != nil {
		address.Street = *in.Street
	}
	if in.City != nil {
		address.City = *in.City
	}
	if in.State != nil {
		address.State = *in.State
	}
	if in.Country != nil {
		address.Country = *in.Country
	}
	if in.PostalCode != nil {
		address.PostalCode = *in.PostalCode
	}

	if err := s.repo.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes address id.
func (s *AddressService) Delete(ctx context.Context, requester *Identity, id string) error {
	address, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(requester, address.UserID, "delete this address"); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
