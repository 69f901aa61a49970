package order

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrForbidden = errors.New("forbidden")
	ErrNoItems   = errors.New("at least one dish required")
)

// Repository defines all database operations for orders. Insert and
// Replace must write the order header, its items, and their ingredient
// lines as one transaction; a partial order must never persist.
type Repository interface {
	Insert(ctx context.Context, o *Order) error

	// GetByID returns the full aggregate: header with customer fields,
	// items ordered by id, ingredient lines ordered by ingredient name.
	GetByID(ctx context.Context, id int64) (*Order, error)

	// List returns order headers with items (no ingredient lines),
	// newest first. includeAll ignores the userID filter.
	List(ctx context.Context, userID string, includeAll bool) ([]Order, error)

	// Replace applies the header patch; when replaceItems is set all
	// previous items and lines are deleted and the given ones inserted,
	// in the same transaction.
	Replace(ctx context.Context, id int64, patch HeaderPatch, items []Item, replaceItems bool) error

	Delete(ctx context.Context, id int64) error
}
