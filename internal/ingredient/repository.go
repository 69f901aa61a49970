package ingredient

import (
	"context"
	"errors"
)

var (
	ErrNotFound         = errors.New("ingredient not found")
	ErrDuplicate        = errors.New("ingredient already exists")
	ErrInUse            = errors.New("ingredient is referenced by orders")
	ErrCategoryNotFound = errors.New("category not found")
)

// Repository defines all database operations for ingredients.
type Repository interface {
	List(ctx context.Context) ([]Ingredient, error)
	Create(ctx context.Context, name string, categoryID int64) (*Ingredient, error)

	// Update keeps current values for nil fields (COALESCE semantics).
	Update(ctx context.Context, id int64, name *string, categoryID *int64) error

	Delete(ctx context.Context, id int64) error

	// Import upserts used by the CSV importer.
	UpsertCategory(ctx context.Context, name string) (id int64, created bool, err error)
	UpsertIngredient(ctx context.Context, name string, categoryID int64) (created bool, err error)
}
