package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/middleware"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

type SettingsHandler struct {
	svc    *data.Service
	logger *zap.Logger
}

func NewSettingsHandler(svc *data.Service, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{svc: svc, logger: logger}
}

// Get handles GET /v1/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.svc.QuerySettings(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to load settings", err)
		return
	}
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "settings not initialized"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// Update handles PUT /v1/admin/settings. The body replaces the whole record.
func (h *SettingsHandler) Update(c *gin.Context) {
	var s models.SystemSettings
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.UpdateSettings(c.Request.Context(), s); err != nil {
		respondError(c, h.logger, "failed to update settings", err)
		return
	}
	h.logger.Info("settings updated",
		zap.String("admin_id", middleware.GetUserID(c)),
		zap.Bool("maintenance_mode", s.MaintenanceMode),
		zap.Bool("ai_engine_enabled", s.AIEngineEnabled),
	)
	c.JSON(http.StatusOK, s)
}
