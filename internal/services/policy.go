package services

import (
	"time"

	"minishop/internal/apperrors"
	"minishop/internal/models"
)

// Identity is the authenticated caller of an operation.
type Identity struct {
	UserID    string
	Email     string
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

// IsAdmin reports whether the caller holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == models.RoleAdmin
}

// HasRole reports whether the caller holds one of roles.
func (i *Identity) HasRole(roles ...models.Role) bool {
	if i == nil {
		return false
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// CanAccess is the ownership rule: the owner and admins may act on a
// user-scoped resource, nobody else.
func CanAccess(requester *Identity, ownerID string) bool {
	if requester == nil {
		return false
	}
	return requester.UserID == ownerID || requester.IsAdmin()
}

// Authorize returns a Forbidden error unless CanAccess allows the request.
func Authorize(requester *Identity, ownerID, action string) error {
	if requester == nil {
		return apperrors.Unauthenticated("authentication required")
	}
	if !CanAccess(requester, ownerID) {
		return apperrors.Forbidden("You are not authorized to " + action)
	}
	return nil
}
