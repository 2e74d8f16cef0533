package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/middleware"
	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/seed"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	svc    *data.Service
	logger *zap.Logger
}

func NewTransactionHandler(svc *data.Service, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{svc: svc, logger: logger}
}

// List handles GET /v1/admin/transactions?user=usr_123
func (h *TransactionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		txs []models.Transaction
		err error
	)
	if userID := c.Query("user"); userID != "" {
		txs, err = h.svc.QueryUserTransactions(ctx, userID)
	} else {
		txs, err = h.svc.QueryTransactions(ctx)
	}
	if err != nil {
		respondError(c, h.logger, "failed to list transactions", err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

type createTransactionRequest struct {
	UserID      string                   `json:"userId" binding:"required"`
	Amount      float64                  `json:"amount" binding:"required"`
	Currency    string                   `json:"currency"`
	Type        models.TransactionType   `json:"type" binding:"required"`
	Status      models.TransactionStatus `json:"status"`
	Description string                   `json:"description"`
}

// Create handles POST /v1/admin/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Currency == "" {
		req.Currency = seed.Currency
	}
	if req.Status == "" {
		req.Status = models.TxCompleted
	}

	tx, err := h.svc.CreateTransaction(c.Request.Context(), models.Transaction{
		UserID:      req.UserID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Type:        req.Type,
		Status:      req.Status,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, "failed to record transaction", err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// ListMine handles GET /v1/me/transactions
func (h *TransactionHandler) ListMine(c *gin.Context) {
	txs, err := h.svc.QueryUserTransactions(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, "failed to list transactions", err)
		return
	}
	c.JSON(http.StatusOK, txs)
}
