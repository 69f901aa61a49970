package report

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListItemRows(ctx context.Context) ([]ItemRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.created_at, oi.scale_factor, d.price_per_base, d.cost_per_base
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN dishes d ON d.id = oi.dish_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemRow
	for rows.Next() {
		var row ItemRow
		if err := rows.Scan(&row.OrderID, &row.CreatedAt, &row.ScaleFactor,
			&row.PricePerBase, &row.CostPerBase); err != nil {
			return nil, err
		}
		items = append(items, row)
	}
	return items, rows.Err()
}
