package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

type InquiryHandler struct {
	svc    *data.Service
	logger *zap.Logger
}

func NewInquiryHandler(svc *data.Service, logger *zap.Logger) *InquiryHandler {
	return &InquiryHandler{svc: svc, logger: logger}
}

type createInquiryRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Message    string `json:"message" binding:"required"`
	PropertyID string `json:"propertyId"`
}

// Create handles POST /v1/inquiries (the public contact form).
func (h *InquiryHandler) Create(c *gin.Context) {
	var req createInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inquiry := models.Inquiry{
		Name:       req.Name,
		Email:      req.Email,
		Message:    req.Message,
		PropertyID: req.PropertyID,
	}
	if err := h.svc.CreateInquiry(c.Request.Context(), inquiry); err != nil {
		respondError(c, h.logger, "failed to submit inquiry", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "received"})
}

// List handles GET /v1/admin/inquiries, newest first.
func (h *InquiryHandler) List(c *gin.Context) {
	inquiries, err := h.svc.QueryInquiries(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to list inquiries", err)
		return
	}
	c.JSON(http.StatusOK, inquiries)
}
