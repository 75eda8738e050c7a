package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/NibiruChain/boosted-liquidity-backend/shared/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// NewRouter builds the HTTP surface. Only the create route is guarded by authToken.
func NewRouter(h *TransactionHandler, db Pinger, authToken string, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(middleware.RequestID(), middleware.LoggingMiddleware(log), middleware.Recovery(log))
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	router.GET("/health", health(db))

	api := router.Group("/api")
	{
		api.POST("/transactions", middleware.AuthMiddleware(authToken), h.CreateTransaction)
		api.GET("/transactions", h.ListTransactions)
		api.GET("/transactions/:hash", h.GetTransaction)
		api.GET("/users/:address/transactions", h.ListUserTransactions)
	}

	return router
}

func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			_ = c.Error(err)
			middleware.RespondWithError(c, http.StatusServiceUnavailable, "Service unavailable.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
