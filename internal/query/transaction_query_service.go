package query

import (
	"context"

	"github.com/NibiruChain/boosted-liquidity-backend/shared/cqrs"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/models"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/utils"
)

// TransactionReader is the read side of the transaction store.
type TransactionReader interface {
	GetByHash(ctx context.Context, hash string) (*models.TransactionView, error)
	CountAll(ctx context.Context) (int64, error)
	CountByUser(ctx context.Context, userAddress string) (int64, error)
	ListAll(ctx context.Context, limit int, offset int64) ([]models.TransactionView, error)
	ListByUser(ctx context.Context, userAddress string, limit int, offset int64) ([]models.TransactionView, error)
}

// TransactionQueryService serves transaction reads. Count and page are read
// separately, so totals may shift between a client's successive page fetches.
type TransactionQueryService struct {
	readRepo TransactionReader
}

func NewTransactionQueryService(readRepo TransactionReader) *TransactionQueryService {
	return &TransactionQueryService{readRepo: readRepo}
}

func (s *TransactionQueryService) GetTransaction(ctx context.Context, q cqrs.GetTransactionQuery) (*models.TransactionView, error) {
	return s.readRepo.GetByHash(ctx, q.TransactionHash)
}

func (s *TransactionQueryService) ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) (*models.TransactionPage, error) {
	total, err := s.readRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	page := newPage(q.Pagination, total)

	offset, ok := utils.Offset(q.Page, q.PerPage)
	if !ok || offset >= total {
		return page, nil
	}
	views, err := s.readRepo.ListAll(ctx, q.PerPage, offset)
	if err != nil {
		return nil, err
	}
	if views != nil {
		page.Transactions = views
	}
	return page, nil
}

func (s *TransactionQueryService) ListUserTransactions(ctx context.Context, q cqrs.ListUserTransactionsQuery) (*models.TransactionPage, error) {
	total, err := s.readRepo.CountByUser(ctx, q.UserAddress)
	if err != nil {
		return nil, err
	}
	page := newPage(q.Pagination, total)
	page.UserAddress = q.UserAddress

	offset, ok := utils.Offset(q.Page, q.PerPage)
	if !ok || offset >= total {
		return page, nil
	}
	views, err := s.readRepo.ListByUser(ctx, q.UserAddress, q.PerPage, offset)
	if err != nil {
		return nil, err
	}
	if views != nil {
		page.Transactions = views
	}
	return page, nil
}

func newPage(p cqrs.Pagination, total int64) *models.TransactionPage {
	return &models.TransactionPage{
		Page:              p.Page,
		PerPage:           p.PerPage,
		TotalTransactions: total,
		TotalPages:        utils.TotalPages(total, p.PerPage),
		Transactions:      []models.TransactionView{},
	}
}
