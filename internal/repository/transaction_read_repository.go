package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/NibiruChain/boosted-liquidity-backend/shared/models"
	sharedredis "github.com/NibiruChain/boosted-liquidity-backend/shared/redis"
)

const TransactionViewKeyPrefix = "transaction:view:"

const selectTransactionColumns = `
	SELECT id, user_address, original_asset, original_amount, usdc_amount,
		lock_duration_weeks, transaction_hash, timestamp
	FROM transactions
`

// TransactionReadRepository handles all read operations for transactions.
// Single-record lookups go through the Redis view cache when one is configured;
// transactions are immutable, so cached views never go stale.
type TransactionReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.TransactionView]
}

// NewTransactionReadRepository builds a read repository. cache may be nil.
func NewTransactionReadRepository(db *sql.DB, cache *sharedredis.ViewCache[models.TransactionView]) *TransactionReadRepository {
	return &TransactionReadRepository{db: db, cache: cache}
}

// GetByHash returns a TransactionView by attempting Redis first, then PostgreSQL.
func (r *TransactionReadRepository) GetByHash(ctx context.Context, hash string) (*models.TransactionView, error) {
	if r.cache != nil {
		if view, ok := r.cache.Get(ctx, hash); ok {
			return view, nil
		}
	}

	row := r.db.QueryRowContext(ctx, selectTransactionColumns+`WHERE transaction_hash = $1`, hash)
	transaction, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	view := transaction.View()
	r.CacheTransactionView(ctx, view)
	return view, nil
}

// CountAll returns the number of stored transactions.
func (r *TransactionReadRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// CountByUser returns the number of transactions stored for userAddress.
func (r *TransactionReadRepository) CountByUser(ctx context.Context, userAddress string) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_address = $1`, userAddress,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count user transactions: %w", err)
	}
	return total, nil
}

// ListAll returns one page of transactions, newest first.
func (r *TransactionReadRepository) ListAll(ctx context.Context, limit int, offset int64) ([]models.TransactionView, error) {
	query := selectTransactionColumns + `
		ORDER BY timestamp DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

// ListByUser returns one page of a user's transactions, newest first.
func (r *TransactionReadRepository) ListByUser(ctx context.Context, userAddress string, limit int, offset int64) ([]models.TransactionView, error) {
	query := selectTransactionColumns + `
		WHERE user_address = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userAddress, limit, offset)
}

// CacheTransactionView stores the read model for a transaction in Redis.
// Called by the command service immediately after a successful Create.
func (r *TransactionReadRepository) CacheTransactionView(ctx context.Context, view *models.TransactionView) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, view.TransactionHash, view)
}

func (r *TransactionReadRepository) list(ctx context.Context, query string, args ...any) ([]models.TransactionView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	views := []models.TransactionView{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, *transaction.View())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return views, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	if err := row.Scan(
		&t.ID, &t.UserAddress, &t.OriginalAsset,
		&t.OriginalAmount, &t.UsdcAmount,
		&t.LockDurationWeeks, &t.TransactionHash, &t.Timestamp,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
