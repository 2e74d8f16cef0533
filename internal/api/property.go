package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/middleware"
	"github.com/nugabest/estatedb/internal/models"
	"github.com/nugabest/estatedb/internal/repository/kvstore"
	"go.uber.org/zap"
)

type PropertyHandler struct {
	svc    *data.Service
	logger *zap.Logger
}

func NewPropertyHandler(svc *data.Service, logger *zap.Logger) *PropertyHandler {
	return &PropertyHandler{svc: svc, logger: logger}
}

// publiclyVisible reports whether a listing shows up in the public catalog.
// Listings without a moderation status predate moderation and are visible.
func publiclyVisible(p models.Property) bool {
	return p.Status == nil || *p.Status == models.ListingApproved || *p.Status == models.ListingSold
}

// List handles GET /v1/properties?type=For%20Sale&category=Flat&location=lekki&featured=true
//
// Every filter is optional. Pending and rejected listings are hidden.
func (h *PropertyHandler) List(c *gin.Context) {
	props, err := h.svc.QueryProperties(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to list properties", err)
		return
	}

	listingType := models.ListingType(c.Query("type"))
	category := models.Category(c.Query("category"))
	location := strings.ToLower(c.Query("location"))
	featured := c.Query("featured") == "true"

	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		switch {
		case !publiclyVisible(p):
		case listingType != "" && p.Type != listingType:
		case category != "" && p.Category != category:
		case location != "" && !strings.Contains(strings.ToLower(p.Location), location):
		case featured && !p.Featured:
		default:
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/properties/:id and counts a view.
//
// Listings hidden from the catalog are only shown to their owner and admins.
func (h *PropertyHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := h.svc.GetProperty(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "failed to get property", err)
		return
	}
	if p != nil && !publiclyVisible(*p) && !middleware.IsAdmin(c) &&
		(p.OwnerID == "" || p.OwnerID != middleware.GetUserID(c)) {
		p = nil
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	h.svc.RecordView(ctx, p.ID)
	c.JSON(http.StatusOK, p)
}

// ListMine handles GET /v1/me/properties
func (h *PropertyHandler) ListMine(c *gin.Context) {
	props, err := h.svc.QueryPropertiesByOwner(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, "failed to list properties", err)
		return
	}
	c.JSON(http.StatusOK, props)
}

// Create handles POST /v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	h.save(c, kvstore.NewID("prp"))
}

// Upsert handles PUT /v1/properties/:id
func (h *PropertyHandler) Upsert(c *gin.Context) {
	h.save(c, c.Param("id"))
}

// save writes the listing in the body under id.
//
// Owners and admins may edit an existing listing. Non-admins cannot change
// the owner, moderation status or counters, and their new listings start
// out pending review.
func (h *PropertyHandler) save(c *gin.Context, id string) {
	var p models.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	callerID := middleware.GetUserID(c)
	admin := middleware.IsAdmin(c)

	existing, err := h.svc.GetProperty(ctx, id)
	if err != nil {
		respondError(c, h.logger, "failed to save property", err)
		return
	}
	if existing != nil && existing.OwnerID != callerID && !admin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this property"})
		return
	}

	p.ID = id
	switch {
	case existing != nil && !admin:
		p.OwnerID = existing.OwnerID
		p.Status = existing.Status
		p.Stats = existing.Stats
	case existing != nil:
		if p.OwnerID == "" {
			p.OwnerID = existing.OwnerID
		}
		if p.Status == nil {
			p.Status = existing.Status
		}
		if p.Stats == nil {
			p.Stats = existing.Stats
		}
	default:
		if p.OwnerID == "" || !admin {
			p.OwnerID = callerID
		}
		if p.Status == nil || !admin {
			status := models.ListingApproved
			if !admin {
				status = models.ListingPending
			}
			p.Status = &status
		}
		p.Stats = &models.PropertyStats{}
		if p.PostedDate == "" {
			p.PostedDate = kvstore.Now()
		}
	}

	if err := h.svc.UpsertProperty(ctx, p); err != nil {
		respondError(c, h.logger, "failed to save property", err)
		return
	}

	status := http.StatusOK
	if existing == nil {
		status = http.StatusCreated
	}
	c.JSON(status, p)
}

// Delete handles DELETE /v1/properties/:id
func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteProperty(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, "failed to delete property", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type moderateRequest struct {
	Status models.ModerationStatus `json:"status"`
}

// Moderate handles POST /v1/admin/properties/:id/approve
//
// The body may carry a different target status to reject or mark sold.
func (h *PropertyHandler) Moderate(c *gin.Context) {
	var req moderateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.Status == "" {
		req.Status = models.ListingApproved
	}
	ctx := c.Request.Context()

	p, err := h.svc.GetProperty(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "failed to moderate property", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	p.Status = &req.Status
	if err := h.svc.UpsertProperty(ctx, *p); err != nil {
		respondError(c, h.logger, "failed to moderate property", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListSaved handles GET /v1/me/saved
func (h *PropertyHandler) ListSaved(c *gin.Context) {
	props, err := h.svc.QuerySavedProperties(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, "failed to list saved properties", err)
		return
	}
	c.JSON(http.StatusOK, props)
}

type toggleSavedRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

// ToggleSaved handles POST /v1/me/saved
func (h *PropertyHandler) ToggleSaved(c *gin.Context) {
	var req toggleSavedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := h.svc.ToggleSaveProperty(c.Request.Context(), middleware.GetUserID(c), req.PropertyID)
	if errors.Is(err, data.ErrPropertyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	if err != nil {
		respondError(c, h.logger, "failed to toggle saved property", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"propertyId": req.PropertyID, "saved": saved})
}
