package customer

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, phone, email, address, created_at
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []Customer
	for rows.Next() {
		var cust Customer
		if err := rows.Scan(&cust.ID, &cust.Name, &cust.Phone, &cust.Email, &cust.Address, &cust.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, cust)
	}
	return customers, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	cust := &Customer{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, phone, email, address, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&cust.ID, &cust.Name, &cust.Phone, &cust.Email, &cust.Address, &cust.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cust, nil
}

func (r *PostgresRepository) Create(ctx context.Context, cust *Customer) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO customers (name, phone, email, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, cust.Name, cust.Phone, cust.Email, cust.Address).Scan(&cust.ID, &cust.CreatedAt)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, name, phone, email, address *string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE customers
		SET name    = COALESCE($1, name),
		    phone   = COALESCE($2, phone),
		    email   = COALESCE($3, email),
		    address = COALESCE($4, address)
		WHERE id = $5
	`, name, phone, email, address, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrInUse
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) HasOrders(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM orders WHERE customer_id = $1
		)
	`, id).Scan(&exists)
	return exists, err
}
