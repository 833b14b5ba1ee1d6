package handlers

import (
	"context"
	"fmt"
	"net/http"

	"lawyerconnect/models"
	"lawyerconnect/services/chat"
	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	Conversations chat.ConversationService
}

func NewChatHandler(svc chat.ConversationService) *ChatHandler {
	return &ChatHandler{Conversations: svc}
}

// CreateConversation handles POST /api/chat/conversations.
func (h *ChatHandler) CreateConversation(c *gin.Context) {
	var req models.CreateConversationRequest
	// The body is optional.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
	}

	conv, err := h.Conversations.CreateConversation(c.Request.Context(), callerID(c), req.Title)
	if err != nil {
		utils.RespondError(c, "Failed to create conversation", err)
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// ListConversations handles GET /api/chat/conversations.
func (h *ChatHandler) ListConversations(c *gin.Context) {
	convs, err := h.Conversations.ListConversations(c.Request.Context(), callerID(c))
	if err != nil {
		utils.RespondError(c, "Failed to fetch conversations", err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

// PostMessage handles POST /api/chat/conversations/:id/messages.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	logger := getLogger(c)

	id, err := h.ownedConversation(c.Request.Context(), c)
	if err != nil {
		utils.RespondError(c, "Conversation not found", err)
		return
	}

	var req models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	exchange, err := h.Conversations.PostUserMessage(c.Request.Context(), id, req.Content)
	if err != nil {
		utils.RespondError(c, "Failed to send message", err)
		return
	}
	logger.Debug("assistant replied", zap.Int64("conversationID", id), zap.Int64("messageID", exchange.AssistantMessage.ID))
	c.JSON(http.StatusCreated, exchange)
}

// ListMessages handles GET /api/chat/conversations/:id/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	id, err := h.ownedConversation(c.Request.Context(), c)
	if err != nil {
		utils.RespondError(c, "Conversation not found", err)
		return
	}
	msgs, err := h.Conversations.ListMessages(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, "Failed to fetch messages", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// ownedConversation resolves the :id parameter to a conversation the caller
// owns. Conversations of other accounts read as not found.
func (h *ChatHandler) ownedConversation(ctx context.Context, c *gin.Context) (int64, error) {
	id, err := int64Param(c, "id")
	if err != nil {
		return 0, err
	}
	conv, err := h.Conversations.GetConversation(ctx, id)
	if err != nil {
		return 0, err
	}
	if conv.UserID != callerID(c) {
		return 0, fmt.Errorf("conversation %d: %w", id, models.ErrNotFound)
	}
	return id, nil
}
