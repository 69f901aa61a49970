package db

import (
	"context"
	"os"
	"time"

	"rasoighar/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Fatal("invalid DATABASE_URL: " + err.Error())
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		logger.Fatal("failed to create pool: " + err.Error())
	}

	if err := pool.Ping(context.Background()); err != nil {
		logger.Fatal("postgres connection failed: " + err.Error())
	}

	logger.Info("connected to PostgreSQL")

	if err := initSchema(pool); err != nil {
		logger.Fatal("failed to initialize schema: " + err.Error())
	}

	return pool
}

// initSchema creates the tables the first time the service starts.
// Deletion rules matter here: catalog rows referenced by recipes or
// orders are protected with RESTRICT, while order items and their
// ingredient lines cascade away with their parent order.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL CHECK (role IN ('admin','user')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS dishes (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) UNIQUE NOT NULL,
			base_quantity DOUBLE PRECISION NOT NULL CHECK (base_quantity > 0),
			base_unit VARCHAR(50) NOT NULL,
			price_per_base DOUBLE PRECISION,
			cost_per_base DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS dish_ingredients (
			id BIGSERIAL PRIMARY KEY,
			dish_id BIGINT NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
			ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE CASCADE,
			amount_per_base DOUBLE PRECISION NOT NULL CHECK (amount_per_base > 0),
			unit VARCHAR(50) NOT NULL,
			UNIQUE (dish_id, ingredient_id)
		)`,

		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(50),
			email VARCHAR(255),
			address TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			customer_id BIGINT NOT NULL REFERENCES customers(id) ON DELETE RESTRICT,
			person_count INTEGER,
			booking_date VARCHAR(20),
			booking_time VARCHAR(20),
			delivery_date VARCHAR(20),
			delivery_time VARCHAR(20),
			delivery_address TEXT,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			dish_id BIGINT NOT NULL REFERENCES dishes(id) ON DELETE RESTRICT,
			requested_quantity DOUBLE PRECISION NOT NULL CHECK (requested_quantity > 0),
			requested_unit VARCHAR(50) NOT NULL,
			scale_factor DOUBLE PRECISION NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS order_ingredients (
			id BIGSERIAL PRIMARY KEY,
			order_item_id BIGINT NOT NULL REFERENCES order_items(id) ON DELETE CASCADE,
			ingredient_id BIGINT NOT NULL REFERENCES ingredients(id) ON DELETE RESTRICT,
			scaled_amount DOUBLE PRECISION NOT NULL CHECK (scaled_amount >= 0),
			unit VARCHAR(50) NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	logger.Info("schema initialized")
	return nil
}
