package customer

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("customer not found")
	ErrInUse    = errors.New("customer has orders")
)

// Repository defines all database operations for customers.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	Create(ctx context.Context, cust *Customer) error

	// Update keeps the current value for every nil field (COALESCE semantics).
	Update(ctx context.Context, id int64, name, phone, email, address *string) error

	Delete(ctx context.Context, id int64) error
	HasOrders(ctx context.Context, id int64) (bool, error)
}
