package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/NibiruChain/boosted-liquidity-backend/shared/cqrs"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/middleware"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/models"
	"github.com/NibiruChain/boosted-liquidity-backend/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	CreateTransaction(context.Context, cqrs.CreateTransactionCommand) (*models.TransactionView, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	GetTransaction(context.Context, cqrs.GetTransactionQuery) (*models.TransactionView, error)
	ListTransactions(context.Context, cqrs.ListTransactionsQuery) (*models.TransactionPage, error)
	ListUserTransactions(context.Context, cqrs.ListUserTransactionsQuery) (*models.TransactionPage, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
	log      *zap.Logger
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier, log *zap.Logger) *TransactionHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TransactionHandler{commands: commands, queries: queries, log: log}
}

func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	cmd, msg := parseCreateTransaction(c.Request.Body)
	if msg != "" {
		middleware.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	view, err := h.commands.CreateTransaction(c.Request.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTransactionExists):
			middleware.RespondWithError(c, http.StatusConflict, "Transaction with this hash already exists.")
		default:
			h.log.Error("failed to add transaction",
				zap.Error(err),
				zap.String("transaction_hash", cmd.TransactionHash),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			middleware.RespondWithError(c, http.StatusInternalServerError, "An error occurred while adding the transaction.")
		}
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	hash := c.Param("hash")
	if !utils.ValidateTransactionHash(hash) {
		middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidHash)
		return
	}

	view, err := h.queries.GetTransaction(c.Request.Context(), cqrs.GetTransactionQuery{TransactionHash: hash})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTransactionNotFound):
			middleware.RespondWithError(c, http.StatusNotFound, "Transaction not found.")
		default:
			h.internalError(c, "failed to get transaction", err)
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	pagination, ok := h.pagination(c)
	if !ok {
		return
	}

	page, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{Pagination: pagination})
	if err != nil {
		h.internalError(c, "failed to list transactions", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *TransactionHandler) ListUserTransactions(c *gin.Context) {
	userAddress := c.Param("address")
	if !utils.ValidateUserAddress(userAddress) {
		middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidAddress)
		return
	}

	pagination, ok := h.pagination(c)
	if !ok {
		return
	}

	page, err := h.queries.ListUserTransactions(c.Request.Context(), cqrs.ListUserTransactionsQuery{
		UserAddress: userAddress,
		Pagination:  pagination,
	})
	if err != nil {
		h.internalError(c, "failed to list user transactions", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// pagination parses the paging parameters, answering 400 itself when they are invalid.
func (h *TransactionHandler) pagination(c *gin.Context) (cqrs.Pagination, bool) {
	p, err := parsePagination(c.DefaultQuery("page", "1"), c.DefaultQuery("per_page", "10"))
	if err != nil {
		h.log.Debug("invalid pagination",
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)),
		)
		middleware.RespondWithError(c, http.StatusBadRequest, msgInvalidPagination)
		return cqrs.Pagination{}, false
	}
	return p, true
}

func (h *TransactionHandler) internalError(c *gin.Context, msg string, err error) {
	h.log.Error(msg,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.GetRequestID(c)),
	)
	middleware.RespondWithError(c, http.StatusInternalServerError, "Internal server error.")
}
