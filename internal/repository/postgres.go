package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string, maxOpen, maxIdle int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id                  BIGSERIAL PRIMARY KEY,
		user_address        VARCHAR(42) NOT NULL,
		original_asset      VARCHAR(10) NOT NULL,
		original_amount     NUMERIC NOT NULL,
		usdc_amount         NUMERIC NOT NULL,
		lock_duration_weeks INTEGER NOT NULL,
		transaction_hash    VARCHAR(66) NOT NULL,
		timestamp           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS transactions_transaction_hash_key ON transactions (transaction_hash)`,
	`CREATE INDEX IF NOT EXISTS transactions_user_address_idx ON transactions (user_address)`,
	`CREATE INDEX IF NOT EXISTS transactions_timestamp_idx ON transactions (timestamp DESC, id DESC)`,
}

// Migrate creates the transactions table and its indexes when absent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
