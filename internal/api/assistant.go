package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nugabest/estatedb/internal/assistant"
	"go.uber.org/zap"
)

const (
	wsReadLimit    = 8 << 10
	wsIdleTimeout  = 5 * time.Minute
	wsWriteTimeout = 10 * time.Second
)

// Assistant is what the handler needs from assistant.Client.
type Assistant interface {
	Reply(ctx context.Context, history []assistant.Turn) (string, error)
}

type AssistantHandler struct {
	client   Assistant
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

func NewAssistantHandler(client Assistant, logger *zap.Logger) *AssistantHandler {
	return &AssistantHandler{
		client: client,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		logger: logger,
	}
}

type chatRequest struct {
	History []assistant.Turn `json:"history" binding:"required,min=1"`
}

type chatResponse struct {
	Reply   string `json:"reply"`
	Offline bool   `json:"offline,omitempty"`
}

// Chat handles POST /v1/assistant/chat
//
// The client sends the whole conversation each time; nothing is stored.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.client.Reply(c.Request.Context(), req.History)
	switch {
	case errors.Is(err, assistant.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is disabled"})
	case errors.Is(err, assistant.ErrUpstream):
		h.logger.Warn("assistant upstream failed", zap.Error(err))
		c.JSON(http.StatusOK, chatResponse{Reply: assistant.OfflineReply, Offline: true})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, chatResponse{Reply: reply})
	}
}

type wsMessage struct {
	Text string `json:"text"`
}

// Stream handles GET /v1/assistant/ws
//
// Each text frame {"text": "..."} is a user turn. The connection keeps the
// conversation history and answers every turn with a model turn.
func (h *AssistantHandler) Stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)
	ctx := c.Request.Context()
	history := make([]assistant.Turn, 0, 16)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		var in wsMessage
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("assistant socket closed", zap.Error(err))
			}
			return
		}
		if in.Text == "" {
			continue
		}
		history = append(history, assistant.Turn{Role: assistant.RoleUser, Text: in.Text})

		reply, err := h.client.Reply(ctx, history)
		switch {
		case errors.Is(err, assistant.ErrDisabled):
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "assistant is disabled"),
				time.Now().Add(wsWriteTimeout))
			return
		case err != nil:
			h.logger.Warn("assistant reply failed", zap.Error(err))
			reply = assistant.OfflineReply
			history = history[:len(history)-1]
		default:
			history = append(history, assistant.Turn{Role: assistant.RoleModel, Text: reply})
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(assistant.Turn{Role: assistant.RoleModel, Text: reply}); err != nil {
			return
		}
	}
}
