package ingredient

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

func (r *PostgresRepository) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.name, i.category_id, c.name, i.created_at
		FROM ingredients i
		JOIN categories c ON c.id = i.category_id
		ORDER BY i.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.CategoryID, &ing.CategoryName, &ing.CreatedAt); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, name string, categoryID int64) (*Ingredient, error) {
	ing := &Ingredient{Name: name, CategoryID: categoryID}
	err := r.db.QueryRow(ctx, `
		INSERT INTO ingredients (name, category_id)
		VALUES ($1, $2)
		RETURNING id, created_at, (SELECT name FROM categories WHERE id = $2)
	`, name, categoryID).Scan(&ing.ID, &ing.CreatedAt, &ing.CategoryName)
	if err != nil {
		return nil, mapPgError(err)
	}
	return ing, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, name *string, categoryID *int64) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE ingredients
		SET name        = COALESCE($1, name),
		    category_id = COALESCE($2, category_id)
		WHERE id = $3
	`, name, categoryID, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
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

func (r *PostgresRepository) UpsertCategory(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM categories WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, err
	}

	err = r.db.QueryRow(ctx, `
		INSERT INTO categories (name) VALUES ($1) RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (r *PostgresRepository) UpsertIngredient(ctx context.Context, name string, categoryID int64) (bool, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM ingredients WHERE name = $1`, name).Scan(&id)
	if err == nil {
		// Already known: move it to the imported category if that changed.
		_, err = r.db.Exec(ctx, `UPDATE ingredients SET category_id = $1 WHERE id = $2`, categoryID, id)
		return false, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO ingredients (name, category_id) VALUES ($1, $2)
	`, name, categoryID)
	if err != nil {
		return false, err
	}
	return true, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrCategoryNotFound
		}
	}
	return err
}
