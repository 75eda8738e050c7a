package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/NibiruChain/boosted-liquidity-backend/shared/cqrs"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/middleware"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/utils"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

const (
	msgInvalidPayload    = "Invalid JSON payload."
	msgInvalidAddress    = "Invalid user_address format."
	msgInvalidAsset      = "Invalid original_asset format."
	msgInvalidAmounts    = "original_amount and usdc_amount must be positive numbers."
	msgInvalidDuration   = "lock_duration_weeks must be a positive integer."
	msgInvalidHash       = "Invalid transaction_hash format."
	msgInvalidPagination = "page and per_page must be positive integers."
)

// requiredFields is also the order in which missing fields are reported.
var requiredFields = []string{
	"user_address",
	"original_asset",
	"original_amount",
	"usdc_amount",
	"lock_duration_weeks",
	"transaction_hash",
}

// parseCreateTransaction decodes and validates a create payload. Checks run in a
// fixed order and the first failure is returned as a client-facing message.
func parseCreateTransaction(body io.Reader) (cqrs.CreateTransactionCommand, string) {
	var cmd cqrs.CreateTransactionCommand

	payload, err := decodeObject(body)
	if err != nil || len(payload) == 0 {
		return cmd, msgInvalidPayload
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := payload[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return cmd, "Missing required fields: " + strings.Join(missing, ", ") + "."
	}

	userAddress, ok := payload["user_address"].(string)
	if !ok || !utils.ValidateUserAddress(userAddress) {
		return cmd, msgInvalidAddress
	}

	originalAsset, ok := payload["original_asset"].(string)
	if !ok || !utils.ValidateAssetSymbol(originalAsset) {
		return cmd, msgInvalidAsset
	}

	originalAmount, ok := parseAmount(payload["original_amount"])
	if !ok {
		return cmd, msgInvalidAmounts
	}
	usdcAmount, ok := parseAmount(payload["usdc_amount"])
	if !ok {
		return cmd, msgInvalidAmounts
	}

	weeks, ok := parseWeeks(payload["lock_duration_weeks"])
	if !ok {
		return cmd, msgInvalidDuration
	}

	hash, ok := payload["transaction_hash"].(string)
	if !ok || !utils.ValidateTransactionHash(hash) {
		return cmd, msgInvalidHash
	}

	return cqrs.CreateTransactionCommand{
		UserAddress:       userAddress,
		OriginalAsset:     originalAsset,
		OriginalAmount:    originalAmount,
		UsdcAmount:        usdcAmount,
		LockDurationWeeks: weeks,
		TransactionHash:   hash,
	}, ""
}

// decodeObject reads exactly one JSON object, keeping numbers verbatim.
func decodeObject(body io.Reader) (map[string]any, error) {
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after JSON object")
	}
	return payload, nil
}

// Bounds on numeric input. A coefficient of at most maxNumberLength digits with an
// exponent in [minExponent, maxExponent] always converts to a finite float64.
const (
	maxNumberLength = 64
	minExponent     = -300
	maxExponent     = 200
)

// parseDecimal reads a JSON number or a numeric string within the bounds above.
func parseDecimal(v any) (decimal.Decimal, bool) {
	var raw string
	switch t := v.(type) {
	case json.Number:
		raw = t.String()
	case string:
		raw = strings.TrimSpace(t)
	default:
		return decimal.Decimal{}, false
	}
	if len(raw) > maxNumberLength {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.Exponent() < minExponent || d.Exponent() > maxExponent {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseAmount accepts a JSON number or a numeric string and requires a value >= 0.
func parseAmount(v any) (decimal.Decimal, bool) {
	d, ok := parseDecimal(v)
	if !ok || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseWeeks accepts an integral JSON number or an integer string in (0, MaxInt32].
func parseWeeks(v any) (int, bool) {
	var n int64
	switch t := v.(type) {
	case json.Number:
		d, ok := parseDecimal(t)
		if !ok || !d.IsInteger() || d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
			return 0, false
		}
		n = d.IntPart()
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(t), 10, 32)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n <= 0 {
		return 0, false
	}
	return int(n), true
}

type paginationParams struct {
	Page    int `validate:"gt=0"`
	PerPage int `validate:"gt=0"`
}

// parsePagination reads page/per_page, defaulting to 1 and 10. A parameter that is
// present but empty is rejected like any other non-integer.
func parsePagination(page, perPage string) (cqrs.Pagination, error) {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil {
		return cqrs.Pagination{}, fmt.Errorf("page: %w", err)
	}
	pp, err := strconv.Atoi(strings.TrimSpace(perPage))
	if err != nil {
		return cqrs.Pagination{}, fmt.Errorf("per_page: %w", err)
	}
	if err := middleware.ValidateRequest(paginationParams{Page: p, PerPage: pp}); err != nil {
		return cqrs.Pagination{}, err
	}
	return cqrs.Pagination{Page: p, PerPage: pp}, nil
}
