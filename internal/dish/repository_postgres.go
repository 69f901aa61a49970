package dish

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

func (r *PostgresRepository) List(ctx context.Context) ([]Dish, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, base_quantity, base_unit, price_per_base, cost_per_base, created_at
		FROM dishes
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dishes []Dish
	for rows.Next() {
		var d Dish
		if err := rows.Scan(&d.ID, &d.Name, &d.BaseQuantity, &d.BaseUnit,
			&d.PricePerBase, &d.CostPerBase, &d.CreatedAt); err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range dishes {
		lines, err := r.recipeLines(ctx, dishes[i].ID)
		if err != nil {
			return nil, err
		}
		dishes[i].Ingredients = lines
	}
	return dishes, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Dish, error) {
	d := &Dish{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, base_quantity, base_unit, price_per_base, cost_per_base, created_at
		FROM dishes
		WHERE id = $1
	`, id).Scan(&d.ID, &d.Name, &d.BaseQuantity, &d.BaseUnit,
		&d.PricePerBase, &d.CostPerBase, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.recipeLines(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Ingredients = lines
	return d, nil
}

func (r *PostgresRepository) recipeLines(ctx context.Context, dishID int64) ([]RecipeLine, error) {
	rows, err := r.db.Query(ctx, `
		SELECT di.ingredient_id, i.name, di.amount_per_base, di.unit
		FROM dish_ingredients di
		JOIN ingredients i ON i.id = di.ingredient_id
		WHERE di.dish_id = $1
		ORDER BY i.name
	`, dishID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []RecipeLine
	for rows.Next() {
		var line RecipeLine
		if err := rows.Scan(&line.IngredientID, &line.IngredientName, &line.AmountPerBase, &line.Unit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, d *Dish) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO dishes (name, base_quantity, base_unit, price_per_base, cost_per_base)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, d.Name, d.BaseQuantity, d.BaseUnit, d.PricePerBase, d.CostPerBase).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return mapPgError(err)
	}

	for _, line := range d.Ingredients {
		_, err := tx.Exec(ctx, `
			INSERT INTO dish_ingredients (dish_id, ingredient_id, amount_per_base, unit)
			VALUES ($1, $2, $3, $4)
		`, d.ID, line.IngredientID, line.AmountPerBase, line.Unit)
		if err != nil {
			return mapPgError(err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, patch Patch, lines []RecipeLine) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE dishes
		SET name           = COALESCE($1, name),
		    base_quantity  = COALESCE($2, base_quantity),
		    base_unit      = COALESCE($3, base_unit),
		    price_per_base = COALESCE($4, price_per_base),
		    cost_per_base  = COALESCE($5, cost_per_base)
		WHERE id = $6
	`, patch.Name, patch.BaseQuantity, patch.BaseUnit, patch.PricePerBase, patch.CostPerBase, id)
	if err != nil {
		return mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	// Recipe updates are always a full replacement, never a patch.
	if lines != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM dish_ingredients WHERE dish_id = $1`, id); err != nil {
			return err
		}
		for _, line := range lines {
			_, err := tx.Exec(ctx, `
				INSERT INTO dish_ingredients (dish_id, ingredient_id, amount_per_base, unit)
				VALUES ($1, $2, $3, $4)
			`, id, line.IngredientID, line.AmountPerBase, line.Unit)
			if err != nil {
				return mapPgError(err)
			}
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM dishes WHERE id = $1`, id)
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

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503", "23514":
			return ErrBadLine
		}
	}
	return err
}
