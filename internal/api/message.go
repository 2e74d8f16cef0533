package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/middleware"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

type MessageHandler struct {
	svc    *data.Service
	logger *zap.Logger
}

func NewMessageHandler(svc *data.Service, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, logger: logger}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Text       string `json:"text" binding:"required"`
	PropertyID string `json:"propertyId"`
}

// Create handles POST /v1/me/messages
func (h *MessageHandler) Create(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	receiver, err := h.svc.GetUser(ctx, req.ReceiverID)
	if err != nil {
		respondError(c, h.logger, "failed to send message", err)
		return
	}
	if receiver == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "receiver not found"})
		return
	}

	msg, err := h.svc.SendMessage(ctx, models.ChatMessage{
		SenderID:   middleware.GetUserID(c),
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
		PropertyID: req.PropertyID,
	})
	if err != nil {
		respondError(c, h.logger, "failed to send message", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// List handles GET /v1/me/messages?with=usr_123&limit=50
//
//   - "with"  = the other participant. Empty returns every conversation.
//   - "limit" = how many of the most recent messages to return. Default 50,
//     capped at 100.
//
// Messages come back oldest first.
func (h *MessageHandler) List(c *gin.Context) {
	limit := 50
	if l := c.Query("limit"); l != "" {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit' parameter"})
			return
		}
		limit = min(limit, 100)
	}

	msgs, err := h.svc.QueryMessages(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, "failed to list messages", err)
		return
	}

	if with := c.Query("with"); with != "" {
		thread := make([]models.ChatMessage, 0, len(msgs))
		for _, m := range msgs {
			if m.SenderID == with || m.ReceiverID == with {
				thread = append(thread, m)
			}
		}
		msgs = thread
	}
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	c.JSON(http.StatusOK, msgs)
}
