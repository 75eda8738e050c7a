package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/NibiruChain/boosted-liquidity-backend/internal/config"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/logger"
	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// seedTransaction is the create payload sent to the service.
type seedTransaction struct {
	UserAddress       string  `json:"user_address"`
	OriginalAsset     string  `json:"original_asset"`
	OriginalAmount    float64 `json:"original_amount"`
	UsdcAmount        float64 `json:"usdc_amount"`
	LockDurationWeeks int     `json:"lock_duration_weeks"`
	TransactionHash   string  `json:"transaction_hash"`
}

type outcome int

const (
	outcomeAdded outcome = iota
	outcomeExists
	outcomeFailed
)

func main() {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("SEED_API_URL", "http://localhost:5001")
	v.SetDefault("AUTH_TOKEN", config.DefaultAuthToken)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.AutomaticEnv()

	logr := logger.Must(v.GetString("LOG_LEVEL"), v.GetString("LOG_FORMAT"))
	defer func() { _ = logr.Sync() }()

	txs, err := sampleTransactions()
	if err != nil {
		logr.Fatal("failed to generate transaction hashes", zap.Error(err))
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(v.GetString("SEED_API_URL"), "/")).
		SetAuthToken(v.GetString("AUTH_TOKEN")).
		SetTimeout(10 * time.Second)

	failed := 0
	for _, tx := range txs {
		if post(client, tx, logr) == outcomeFailed {
			failed++
		}
	}
	if failed > 0 {
		logr.Fatal("seeding incomplete", zap.Int("failed", failed))
	}
}

func sampleTransactions() ([]seedTransaction, error) {
	txs := []seedTransaction{
		{
			UserAddress:       "0xab5801a7d398351b8be11c439e05c5b3259aec9b",
			OriginalAsset:     "ETH",
			OriginalAmount:    1.5,
			UsdcAmount:        3000,
			LockDurationWeeks: 12,
		},
		{
			UserAddress:       "0x5abfec25f74cd88437631a7731906932776356f9",
			OriginalAsset:     "DAI",
			OriginalAmount:    200,
			UsdcAmount:        200,
			LockDurationWeeks: 24,
		},
	}
	for i := range txs {
		hash, err := randomHash()
		if err != nil {
			return nil, err
		}
		txs[i].TransactionHash = hash
	}
	return txs, nil
}

// randomHash returns 0x followed by 64 random hex digits.
func randomHash() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(b), nil
}

func post(client *resty.Client, tx seedTransaction, log *zap.Logger) outcome {
	var apiErr struct {
		Error string `json:"error"`
	}
	resp, err := client.R().
		SetBody(tx).
		SetError(&apiErr).
		Post("/api/transactions")
	if err != nil {
		log.Error("request failed", zap.String("transaction_hash", tx.TransactionHash), zap.Error(err))
		return outcomeFailed
	}

	switch resp.StatusCode() {
	case http.StatusCreated:
		log.Info(fmt.Sprintf("Transaction %s added.", tx.TransactionHash))
		return outcomeAdded
	case http.StatusConflict:
		log.Info(fmt.Sprintf("Transaction %s already exists.", tx.TransactionHash))
		return outcomeExists
	default:
		log.Error("transaction rejected",
			zap.String("transaction_hash", tx.TransactionHash),
			zap.Int("status", resp.StatusCode()),
			zap.String("error", apiErr.Error),
		)
		return outcomeFailed
	}
}
