package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/middleware"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

type OfferHandler struct {
	svc    *data.Service
	logger *zap.Logger
}

func NewOfferHandler(svc *data.Service, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{svc: svc, logger: logger}
}

// List handles GET /v1/me/offers: offers the caller made or received.
func (h *OfferHandler) List(c *gin.Context) {
	offers, err := h.svc.QueryOffers(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, "failed to list offers", err)
		return
	}
	c.JSON(http.StatusOK, offers)
}

type makeOfferRequest struct {
	PropertyID string  `json:"propertyId" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// Create handles POST /v1/me/offers. The listing owner is the seller.
func (h *OfferHandler) Create(c *gin.Context) {
	var req makeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	buyerID := middleware.GetUserID(c)

	p, err := h.svc.GetProperty(ctx, req.PropertyID)
	if err != nil {
		respondError(c, h.logger, "failed to make offer", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if p.OwnerID == buyerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot make an offer on your own listing"})
		return
	}

	offer, err := h.svc.UpsertOffer(ctx, models.Offer{
		PropertyID: p.ID,
		BuyerID:    buyerID,
		SellerID:   p.OwnerID,
		Amount:     req.Amount,
		Currency:   p.Currency,
	})
	if err != nil {
		respondError(c, h.logger, "failed to make offer", err)
		return
	}
	c.JSON(http.StatusCreated, offer)
}

type offerStatusRequest struct {
	Status models.OfferStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /v1/me/offers/:id. Only the seller answers an
// offer.
func (h *OfferHandler) UpdateStatus(c *gin.Context) {
	var req offerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	offer, err := h.svc.GetOffer(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "failed to update offer", err)
		return
	}
	if offer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		return
	}
	if offer.SellerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the seller can answer this offer"})
		return
	}

	found, err := h.svc.UpdateOfferStatus(ctx, offer.ID, req.Status)
	if err != nil {
		respondError(c, h.logger, "failed to update offer", err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		return
	}
	offer.Status = req.Status
	c.JSON(http.StatusOK, offer)
}
