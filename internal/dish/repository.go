package dish

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("dish not found")
	ErrDuplicate = errors.New("dish already exists")
	ErrInUse     = errors.New("dish is referenced by orders")
	ErrBadLine   = errors.New("invalid recipe line")
)

// Repository defines all database operations for dishes.
type Repository interface {
	List(ctx context.Context) ([]Dish, error)

	// GetByID returns the dish with its recipe lines ordered by
	// ingredient name.
	GetByID(ctx context.Context, id int64) (*Dish, error)

	// Create inserts the dish and its recipe lines in one transaction.
	Create(ctx context.Context, d *Dish) error

	// Update applies the header patch; when lines is non-nil the whole
	// recipe is replaced in the same transaction.
	Update(ctx context.Context, id int64, patch Patch, lines []RecipeLine) error

	Delete(ctx context.Context, id int64) error
}
