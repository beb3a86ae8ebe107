package handler

import (
	"context"
	"net/http"

	"donor-finder-api/internal/models"

	"github.com/gin-gonic/gin"
)

// MessageService interface for dependency injection
type MessageService interface {
	Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error)
	Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error)
	Inbox(ctx context.Context, userID string) ([]models.InboxEntry, error)
}

// MessageHandler handles direct messaging
type MessageHandler struct {
	service MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(svc MessageService) *MessageHandler {
	return &MessageHandler{service: svc}
}

// Conversation handles GET /api/messages?userId=
func (h *MessageHandler) Conversation(c *gin.Context) {
	otherID := c.Query("userId")
	if otherID == "" {
		fail(c, http.StatusBadRequest, "missing required query parameter 'userId'")
		return
	}

	messages, err := h.service.Conversation(c.Request.Context(), currentUserID(c), otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

// Send handles POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	msg, err := h.service.Send(c.Request.Context(), currentUserID(c), req.ReceiverID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// Inbox handles GET /api/messages/inbox
func (h *MessageHandler) Inbox(c *gin.Context) {
	entries, err := h.service.Inbox(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": entries})
}
