package order

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, o *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, customer_id, person_count, booking_date, booking_time,
		                    delivery_date, delivery_time, delivery_address, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, o.UserID, o.CustomerID, o.PersonCount, o.BookingDate, o.BookingTime,
		o.DeliveryDate, o.DeliveryTime, o.DeliveryAddress, o.Notes,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertItems(ctx, tx, o.ID, o.Items); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID int64, items []Item) error {
	for i := range items {
		item := &items[i]
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, dish_id, requested_quantity, requested_unit, scale_factor)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, orderID, item.DishID, item.RequestedQuantity, item.RequestedUnit, item.ScaleFactor,
		).Scan(&item.ID)
		if err != nil {
			return err
		}

		for _, line := range item.Ingredients {
			_, err := tx.Exec(ctx, `
				INSERT INTO order_ingredients (order_item_id, ingredient_id, scaled_amount, unit)
				VALUES ($1, $2, $3, $4)
			`, item.ID, line.IngredientID, line.ScaledAmount, line.Unit)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	o := &Order{}
	err := r.db.QueryRow(ctx, `
		SELECT o.id, o.user_id, o.customer_id,
		       c.name, c.phone, c.email, c.address,
		       o.person_count, o.booking_date, o.booking_time,
		       o.delivery_date, o.delivery_time, o.delivery_address,
		       o.notes, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE o.id = $1
	`, id).Scan(&o.ID, &o.UserID, &o.CustomerID,
		&o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &o.CustomerAddress,
		&o.PersonCount, &o.BookingDate, &o.BookingTime,
		&o.DeliveryDate, &o.DeliveryTime, &o.DeliveryAddress,
		&o.Notes, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range items {
		lines, err := r.linesForItem(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Ingredients = lines
	}
	o.Items = items
	return o, nil
}

func (r *PostgresRepository) itemsForOrder(ctx context.Context, orderID int64) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.dish_id, d.name, oi.requested_quantity, oi.requested_unit, oi.scale_factor
		FROM order_items oi
		JOIN dishes d ON d.id = oi.dish_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.DishID, &item.DishName,
			&item.RequestedQuantity, &item.RequestedUnit, &item.ScaleFactor); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) linesForItem(ctx context.Context, itemID int64) ([]Line, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.ingredient_id, i.name, oi.scaled_amount, oi.unit
		FROM order_ingredients oi
		JOIN ingredients i ON i.id = oi.ingredient_id
		WHERE oi.order_item_id = $1
		ORDER BY i.name
	`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var line Line
		if err := rows.Scan(&line.IngredientID, &line.IngredientName, &line.ScaledAmount, &line.Unit); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *PostgresRepository) List(ctx context.Context, userID string, includeAll bool) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.user_id, o.customer_id,
		       c.name, c.phone, c.email, c.address,
		       o.person_count, o.booking_date, o.booking_time,
		       o.delivery_date, o.delivery_time, o.delivery_address,
		       o.notes, o.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		WHERE $2 OR o.user_id = $1
		ORDER BY o.created_at DESC
	`, userID, includeAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CustomerID,
			&o.CustomerName, &o.CustomerPhone, &o.CustomerEmail, &o.CustomerAddress,
			&o.PersonCount, &o.BookingDate, &o.BookingTime,
			&o.DeliveryDate, &o.DeliveryTime, &o.DeliveryAddress,
			&o.Notes, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.itemsForOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *PostgresRepository) Replace(ctx context.Context, id int64, patch HeaderPatch, items []Item, replaceItems bool) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
		UPDATE orders
		SET customer_id      = COALESCE($1, customer_id),
		    person_count     = COALESCE($2, person_count),
		    booking_date     = COALESCE($3, booking_date),
		    booking_time     = COALESCE($4, booking_time),
		    delivery_date    = COALESCE($5, delivery_date),
		    delivery_time    = COALESCE($6, delivery_time),
		    delivery_address = COALESCE($7, delivery_address),
		    notes            = COALESCE($8, notes)
		WHERE id = $9
	`, patch.CustomerID, patch.PersonCount, patch.BookingDate, patch.BookingTime,
		patch.DeliveryDate, patch.DeliveryTime, patch.DeliveryAddress, patch.Notes, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	// Item updates delete everything and reinsert; lines cascade with
	// their items, so no partial patching can ever happen.
	if replaceItems {
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
			return err
		}
		if err := insertItems(ctx, tx, id, items); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
