package command

import (
	"context"

	"github.com/NibiruChain/boosted-liquidity-backend/shared/cqrs"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/models"
	"go.uber.org/zap"
)

// TransactionWriter persists new transactions.
type TransactionWriter interface {
	Create(ctx context.Context, transaction *models.Transaction) error
}

// ViewCacher receives freshly written views so reads by hash can skip the database.
type ViewCacher interface {
	CacheTransactionView(ctx context.Context, view *models.TransactionView)
}

// TransactionCommandService records lock transactions. Input is validated by the
// handler; uniqueness of the hash is left to the store.
type TransactionCommandService struct {
	writeRepo TransactionWriter
	readRepo  ViewCacher
	log       *zap.Logger
}

func NewTransactionCommandService(writeRepo TransactionWriter, readRepo ViewCacher, log *zap.Logger) *TransactionCommandService {
	return &TransactionCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		log:       log,
	}
}

func (s *TransactionCommandService) CreateTransaction(ctx context.Context, cmd cqrs.CreateTransactionCommand) (*models.TransactionView, error) {
	transaction := &models.Transaction{
		UserAddress:       cmd.UserAddress,
		OriginalAsset:     cmd.OriginalAsset,
		OriginalAmount:    cmd.OriginalAmount,
		UsdcAmount:        cmd.UsdcAmount,
		LockDurationWeeks: cmd.LockDurationWeeks,
		TransactionHash:   cmd.TransactionHash,
	}
	if err := s.writeRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	view := transaction.View()
	s.readRepo.CacheTransactionView(ctx, view)
	s.log.Info("transaction recorded",
		zap.Int64("id", view.ID),
		zap.String("transaction_hash", view.TransactionHash),
		zap.String("user_address", view.UserAddress),
		zap.String("original_asset", view.OriginalAsset),
	)
	return view, nil
}
