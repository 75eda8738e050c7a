package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NibiruChain/boosted-liquidity-backend/internal/command"
	"github.com/NibiruChain/boosted-liquidity-backend/internal/config"
	"github.com/NibiruChain/boosted-liquidity-backend/internal/handler"
	"github.com/NibiruChain/boosted-liquidity-backend/internal/query"
	"github.com/NibiruChain/boosted-liquidity-backend/internal/repository"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/logger"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/models"
	redisClient "github.com/NibiruChain/boosted-liquidity-backend/shared/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr := logger.Must(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = logr.Sync() }()

	if cfg.UsesDefaultAuthToken() {
		logr.Warn("AUTH_TOKEN is the development default; set a real secret before exposing the service")
	}

	ctx := context.Background()

	// Database connection
	db, err := repository.Open(ctx, cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		logr.Fatal("failed to migrate schema", zap.Error(err))
	}

	// Optional Redis read cache
	var viewCache *redisClient.ViewCache[models.TransactionView]
	if cfg.CacheEnabled() {
		redis, err := redisClient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logr.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redis.Close()
		viewCache = redisClient.NewViewCache[models.TransactionView](
			redis.Client, repository.TransactionViewKeyPrefix, cfg.CacheTTL, logr.Named("cache"))
		logr.Info("read cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	// CQRS: write repo, read repo
	writeRepo := repository.NewTransactionWriteRepository(db)
	readRepo := repository.NewTransactionReadRepository(db, viewCache)

	// Command + Query services
	commandSvc := command.NewTransactionCommandService(writeRepo, readRepo, logr)
	querySvc := query.NewTransactionQueryService(readRepo)

	transactionHandler := handler.NewTransactionHandler(commandSvc, querySvc, logr)

	gin.SetMode(cfg.GinMode)
	router := handler.NewRouter(transactionHandler, db, cfg.AuthToken, logr)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logr.Info("transaction service starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logr.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
