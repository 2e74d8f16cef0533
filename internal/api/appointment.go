package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/middleware"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

type AppointmentHandler struct {
	svc    *data.Service
	logger *zap.Logger
}

func NewAppointmentHandler(svc *data.Service, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, logger: logger}
}

// List handles GET /v1/me/appointments: viewings the caller requested or
// hosts as agent.
func (h *AppointmentHandler) List(c *gin.Context) {
	appts, err := h.svc.QueryAppointments(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, "failed to list appointments", err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

type bookAppointmentRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
	AgentID    string `json:"agentId"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Notes      string `json:"notes"`
}

// Create handles POST /v1/me/appointments. Without an agent the listing
// owner hosts the viewing.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req bookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	p, err := h.svc.GetProperty(ctx, req.PropertyID)
	if err != nil {
		respondError(c, h.logger, "failed to book appointment", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	agentID := req.AgentID
	if agentID == "" {
		agentID = p.OwnerID
	}

	appt, err := h.svc.UpsertAppointment(ctx, models.Appointment{
		PropertyID: p.ID,
		UserID:     middleware.GetUserID(c),
		AgentID:    agentID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
		Status:     models.AppointmentPending,
	})
	if err != nil {
		respondError(c, h.logger, "failed to book appointment", err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

type appointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /v1/me/appointments/:id
//
// Either participant may cancel; only the agent may confirm or complete.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req appointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	callerID := middleware.GetUserID(c)

	appts, err := h.svc.QueryAppointments(ctx, callerID)
	if err != nil {
		respondError(c, h.logger, "failed to update appointment", err)
		return
	}
	var appt *models.Appointment
	for i := range appts {
		if appts[i].ID == c.Param("id") {
			appt = &appts[i]
			break
		}
	}
	if appt == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		return
	}
	if req.Status != models.AppointmentCancelled && appt.AgentID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the agent can change this status"})
		return
	}

	appt.Status = req.Status
	updated, err := h.svc.UpsertAppointment(ctx, *appt)
	if err != nil {
		respondError(c, h.logger, "failed to update appointment", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
