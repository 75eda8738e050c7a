package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/NibiruChain/boosted-liquidity-backend/shared/cqrs"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/models"
)

// ---- in-memory store ----

type memoryReader struct {
	views   []models.TransactionView
	err     error
	listed  int
	counted int
}

func (m *memoryReader) sorted(filter func(models.TransactionView) bool) []models.TransactionView {
	out := []models.TransactionView{}
	for _, v := range m.views {
		if filter(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Timestamp.Time(), out[j].Timestamp.Time()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func window(views []models.TransactionView, limit int, offset int64) []models.TransactionView {
	if offset >= int64(len(views)) {
		return []models.TransactionView{}
	}
	end := offset + int64(limit)
	if end > int64(len(views)) {
		end = int64(len(views))
	}
	return views[offset:end]
}

func (m *memoryReader) GetByHash(ctx context.Context, hash string) (*models.TransactionView, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, v := range m.views {
		if v.TransactionHash == hash {
			view := v
			return &view, nil
		}
	}
	return nil, models.ErrTransactionNotFound
}

func (m *memoryReader) CountAll(ctx context.Context) (int64, error) {
	m.counted++
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.views)), nil
}

func (m *memoryReader) CountByUser(ctx context.Context, userAddress string) (int64, error) {
	m.counted++
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.sorted(byUser(userAddress)))), nil
}

func (m *memoryReader) ListAll(ctx context.Context, limit int, offset int64) ([]models.TransactionView, error) {
	m.listed++
	return window(m.sorted(func(models.TransactionView) bool { return true }), limit, offset), nil
}

func (m *memoryReader) ListByUser(ctx context.Context, userAddress string, limit int, offset int64) ([]models.TransactionView, error) {
	m.listed++
	return window(m.sorted(byUser(userAddress)), limit, offset), nil
}

func byUser(addr string) func(models.TransactionView) bool {
	return func(v models.TransactionView) bool { return v.UserAddress == addr }
}

// ---- test data ----

const (
	alice = "0x1111111111111111111111111111111111111111"
	bob   = "0x2222222222222222222222222222222222222222"
)

func hashFor(i int) string {
	return fmt.Sprintf("0x%064x", i)
}

func seed(users ...string) *memoryReader {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := &memoryReader{}
	for i, u := range users {
		m.views = append(m.views, models.TransactionView{
			ID:                int64(i + 1),
			UserAddress:       u,
			OriginalAsset:     "ETH",
			OriginalAmount:    1.5,
			UsdcAmount:        3000,
			LockDurationWeeks: 12,
			TransactionHash:   hashFor(i + 1),
			Timestamp:         models.ISOTime(base.Add(time.Duration(i) * time.Minute)),
		})
	}
	return m
}

func repeat(addr string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = addr
	}
	return out
}

// ---- tests ----

func TestListTransactionsPagination(t *testing.T) {
	svc := NewTransactionQueryService(seed(repeat(alice, 25)...))

	page, err := svc.ListTransactions(context.Background(), cqrs.ListTransactionsQuery{
		Pagination: cqrs.Pagination{Page: 2, PerPage: 10},
	})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if page.Page != 2 || page.PerPage != 10 {
		t.Errorf("echoed pagination = %d/%d, want 2/10", page.Page, page.PerPage)
	}
	if len(page.Transactions) != 10 {
		t.Fatalf("got %d transactions, want 10", len(page.Transactions))
	}
	if page.TotalTransactions != 25 || page.TotalPages != 3 {
		t.Errorf("totals = %d/%d, want 25/3", page.TotalTransactions, page.TotalPages)
	}
	if page.UserAddress != "" {
		t.Errorf("aggregate listing should not echo an address, got %q", page.UserAddress)
	}
	// Newest first: 25 records, page 2 starts at the 11th newest (ID 15).
	if page.Transactions[0].ID != 15 {
		t.Errorf("first ID on page 2 = %d, want 15", page.Transactions[0].ID)
	}
	for i := 1; i < len(page.Transactions); i++ {
		if page.Transactions[i].Timestamp.Time().After(page.Transactions[i-1].Timestamp.Time()) {
			t.Fatalf("transactions not in descending timestamp order at %d", i)
		}
	}
}

func TestListUserTransactions(t *testing.T) {
	users := append(repeat(alice, 15), repeat(bob, 4)...)
	svc := NewTransactionQueryService(seed(users...))

	page, err := svc.ListUserTransactions(context.Background(), cqrs.ListUserTransactionsQuery{
		UserAddress: alice,
		Pagination:  cqrs.Pagination{Page: 1, PerPage: 5},
	})
	if err != nil {
		t.Fatalf("ListUserTransactions() error = %v", err)
	}
	if len(page.Transactions) != 5 || page.TotalTransactions != 15 || page.TotalPages != 3 {
		t.Errorf("got %d records, total %d, pages %d; want 5/15/3",
			len(page.Transactions), page.TotalTransactions, page.TotalPages)
	}
	if page.UserAddress != alice {
		t.Errorf("UserAddress = %q, want %q", page.UserAddress, alice)
	}
	for _, v := range page.Transactions {
		if v.UserAddress != alice {
			t.Fatalf("leaked transaction of %s", v.UserAddress)
		}
	}
}

func TestOutOfRangePageIsEmpty(t *testing.T) {
	store := seed(repeat(alice, 3)...)
	svc := NewTransactionQueryService(store)

	page, err := svc.ListTransactions(context.Background(), cqrs.ListTransactionsQuery{
		Pagination: cqrs.Pagination{Page: 9, PerPage: 10},
	})
	if err != nil {
		t.Fatalf("ListTransactions() error = %v", err)
	}
	if page.Transactions == nil || len(page.Transactions) != 0 {
		t.Errorf("expected an empty, non-nil list, got %#v", page.Transactions)
	}
	if page.TotalTransactions != 3 || page.TotalPages != 1 {
		t.Errorf("totals = %d/%d, want 3/1", page.TotalTransactions, page.TotalPages)
	}
	if store.listed != 0 {
		t.Errorf("out-of-range page should not query rows, listed %d times", store.listed)
	}
}

func TestEmptyStore(t *testing.T) {
	svc := NewTransactionQueryService(&memoryReader{})

	page, err := svc.ListUserTransactions(context.Background(), cqrs.ListUserTransactionsQuery{
		UserAddress: bob,
		Pagination:  cqrs.Pagination{Page: 1, PerPage: 10},
	})
	if err != nil {
		t.Fatalf("ListUserTransactions() error = %v", err)
	}
	if page.TotalTransactions != 0 || page.TotalPages != 0 || len(page.Transactions) != 0 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestGetTransaction(t *testing.T) {
	svc := NewTransactionQueryService(seed(alice, bob))

	view, err := svc.GetTransaction(context.Background(), cqrs.GetTransactionQuery{TransactionHash: hashFor(2)})
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if view.UserAddress != bob {
		t.Errorf("UserAddress = %q, want %q", view.UserAddress, bob)
	}

	_, err = svc.GetTransaction(context.Background(), cqrs.GetTransactionQuery{TransactionHash: hashFor(99)})
	if !errors.Is(err, models.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewTransactionQueryService(&memoryReader{err: boom})

	_, err := svc.ListTransactions(context.Background(), cqrs.ListTransactionsQuery{
		Pagination: cqrs.Pagination{Page: 1, PerPage: 10},
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected store error, got %v", err)
	}
}
