package cqrs

import "github.com/shopspring/decimal"

// CreateTransactionCommand carries an already validated lock transaction.
type CreateTransactionCommand struct {
	UserAddress       string
	OriginalAsset     string
	OriginalAmount    decimal.Decimal
	UsdcAmount        decimal.Decimal
	LockDurationWeeks int
	TransactionHash   string
}
