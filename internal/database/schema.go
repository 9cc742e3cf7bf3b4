package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS vegetables (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		price BIGINT NOT NULL DEFAULT 0,
		stock_grams BIGINT NOT NULL DEFAULT 0 CHECK (stock_grams >= 0),
		available BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_mobile TEXT NOT NULL,
		customer_address TEXT NOT NULL,
		items JSONB NOT NULL,
		total_amount NUMERIC(10, 2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		payment_status TEXT NOT NULL DEFAULT 'unpaid',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_created_at_idx ON orders (created_at DESC)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS vegetables (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price BIGINT NOT NULL DEFAULT 0,
		stock_grams BIGINT NOT NULL DEFAULT 0,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		CONSTRAINT vegetables_stock_non_negative CHECK (stock_grams >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		customer_name VARCHAR(255) NOT NULL,
		customer_mobile VARCHAR(32) NOT NULL,
		customer_address TEXT NOT NULL,
		items JSON NOT NULL,
		total_amount DECIMAL(10, 2) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'pending',
		payment_status VARCHAR(32) NOT NULL DEFAULT 'unpaid',
		created_at DATETIME(6) NOT NULL,
		INDEX orders_created_at_idx (created_at)
	)`,
}

// EnsureSchema creates the vegetables and orders tables when they are
// missing. It never alters existing tables.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	statements := mysqlSchema
	if IsPostgres(db) {
		statements = postgresSchema
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
