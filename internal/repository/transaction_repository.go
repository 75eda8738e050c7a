package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NibiruChain/boosted-liquidity-backend/shared/models"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// TransactionWriteRepository handles all state-mutating operations for transactions.
// It operates exclusively against the PostgreSQL write store (source of truth).
type TransactionWriteRepository struct {
	db *sql.DB
}

func NewTransactionWriteRepository(db *sql.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Create inserts transaction in its own database transaction and fills in the
// server-assigned ID and Timestamp. A duplicate hash yields models.ErrTransactionExists
// and leaves the table untouched.
func (r *TransactionWriteRepository) Create(ctx context.Context, transaction *models.Transaction) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO transactions (user_address, original_asset, original_amount, usdc_amount, lock_duration_weeks, transaction_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, timestamp
	`
	err = tx.QueryRowContext(ctx, query,
		transaction.UserAddress, transaction.OriginalAsset,
		transaction.OriginalAmount, transaction.UsdcAmount,
		transaction.LockDurationWeeks, transaction.TransactionHash,
	).Scan(&transaction.ID, &transaction.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrTransactionExists
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return models.ErrTransactionExists
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
