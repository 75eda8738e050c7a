package models

import (
	"strconv"
	"time"
)

// isoLayout renders microsecond precision, dropping trailing zeros.
const isoLayout = "2006-01-02T15:04:05.999999Z07:00"

// ISOTime is a timestamp that marshals as an ISO-8601 string in UTC.
type ISOTime time.Time

func (t ISOTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(time.Time(t).UTC().Format(isoLayout))), nil
}

func (t *ISOTime) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = ISOTime(parsed)
	return nil
}

func (t ISOTime) Time() time.Time {
	return time.Time(t)
}

// TransactionView is the read projection returned by the API and stored in the read cache.
// Amounts are coerced to floating point on the way out.
type TransactionView struct {
	ID                int64   `json:"id"`
	UserAddress       string  `json:"user_address"`
	OriginalAsset     string  `json:"original_asset"`
	OriginalAmount    float64 `json:"original_amount"`
	UsdcAmount        float64 `json:"usdc_amount"`
	LockDurationWeeks int     `json:"lock_duration_weeks"`
	TransactionHash   string  `json:"transaction_hash"`
	Timestamp         ISOTime `json:"timestamp"`
}

// TransactionPage is one page of a timestamp-descending listing.
// UserAddress is only set for user-scoped listings.
type TransactionPage struct {
	UserAddress       string            `json:"user_address,omitempty"`
	Page              int               `json:"page"`
	PerPage           int               `json:"per_page"`
	TotalTransactions int64             `json:"total_transactions"`
	TotalPages        int64             `json:"total_pages"`
	Transactions      []TransactionView `json:"transactions"`
}
