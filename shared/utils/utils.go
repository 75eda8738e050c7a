package utils

import (
	"math"

	"github.com/go-playground/validator/v10"
)

// Shape rules for on-chain identifiers. Lengths count characters, not bytes.
const (
	UserAddressRule     = "startswith=0x,len=42"
	TransactionHashRule = "startswith=0x,len=66"
	AssetSymbolRule     = "max=10"
)

var validate = validator.New()

// ValidateUserAddress reports whether s looks like a 0x-prefixed 20-byte address.
func ValidateUserAddress(s string) bool {
	return validate.Var(s, UserAddressRule) == nil
}

// ValidateTransactionHash reports whether s looks like a 0x-prefixed 32-byte hash.
func ValidateTransactionHash(s string) bool {
	return validate.Var(s, TransactionHashRule) == nil
}

// ValidateAssetSymbol reports whether s fits the original_asset column.
func ValidateAssetSymbol(s string) bool {
	return validate.Var(s, AssetSymbolRule) == nil
}

// TotalPages is ceil(total / perPage); zero when there is nothing to page through.
func TotalPages(total int64, perPage int) int64 {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + int64(perPage) - 1) / int64(perPage)
}

// Offset returns the row offset of a 1-based page. ok is false when the
// offset would overflow, in which case the page is necessarily empty.
func Offset(page, perPage int) (offset int64, ok bool) {
	if page <= 1 {
		return 0, true
	}
	p := int64(page - 1)
	if p > math.MaxInt64/int64(perPage) {
		return 0, false
	}
	return p * int64(perPage), true
}
