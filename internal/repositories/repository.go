package repositories

import (
	"errors"
	"fmt"

	"minishop/internal/apperrors"

	"gorm.io/gorm"
)

// DefaultLimit is the page size used when the caller gives none.
const DefaultLimit = 100

// Page is an offset/limit window over a list.
type Page struct {
	Skip  int
	Limit int
}

// NewPage validates a caller-supplied window: skip >= 0 and limit > 0.
func NewPage(skip, limit int) (Page, error) {
	if skip < 0 {
		return Page{}, apperrors.Invalid("skip must not be negative")
	}
	if limit <= 0 {
		return Page{}, apperrors.Invalid("limit must be greater than 0")
	}
	return Page{Skip: skip, Limit: limit}, nil
}

// Normalize fills in defaults for a zero or out-of-range page.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return db.Offset(p.Skip).Limit(p.Limit)
}

// notFoundOr converts gorm's not-found error into a domain NotFound error and
// wraps anything else with the given action.
func notFoundOr(err error, what, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(what + " not found")
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// duplicateOr converts a unique-index violation into a Conflict error.
func duplicateOr(err error, msg, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(msg)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
