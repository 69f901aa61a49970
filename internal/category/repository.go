package category

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrDuplicate = errors.New("category already exists")
	ErrInUse     = errors.New("category has ingredients")
)

// Repository defines all database operations for categories.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, name string) (*Category, error)

	// Rename keeps the current name when name is nil (COALESCE semantics).
	Rename(ctx context.Context, id int64, name *string) error

	Delete(ctx context.Context, id int64) error
	HasIngredients(ctx context.Context, id int64) (bool, error)
}
