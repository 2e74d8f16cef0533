package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/repository"
	"github.com/nugabest/estatedb/internal/tablestore"
	"go.uber.org/zap"
)

// respondError maps data-layer errors to a status code. Validation messages
// are safe to echo; everything else is logged and replaced by msg.
func respondError(c *gin.Context, logger *zap.Logger, msg string, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, tablestore.ErrStorageUnavailable):
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
