package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTransactionExists   = errors.New("transaction already exists")
)

// Transaction is the write model of a token-lock transaction as stored in PostgreSQL.
// ID and Timestamp are assigned by the database on insert.
type Transaction struct {
	ID                int64
	UserAddress       string
	OriginalAsset     string
	OriginalAmount    decimal.Decimal
	UsdcAmount        decimal.Decimal
	LockDurationWeeks int
	TransactionHash   string
	Timestamp         time.Time
}

// View converts the write model into its serialized projection.
func (t *Transaction) View() *TransactionView {
	return &TransactionView{
		ID:                t.ID,
		UserAddress:       t.UserAddress,
		OriginalAsset:     t.OriginalAsset,
		OriginalAmount:    t.OriginalAmount.InexactFloat64(),
		UsdcAmount:        t.UsdcAmount.InexactFloat64(),
		LockDurationWeeks: t.LockDurationWeeks,
		TransactionHash:   t.TransactionHash,
		Timestamp:         ISOTime(t.Timestamp),
	}
}
