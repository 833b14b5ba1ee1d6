package handlers

import (
	"context"
	"fmt"
	"net/http"

	"lawyerconnect/models"
	"lawyerconnect/services/chat"
	"lawyerconnect/services/user"
	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LawyerChatHandler lets verified lawyers read member conversations and
// reply in them.
type LawyerChatHandler struct {
	Conversations chat.ConversationService
	Users         user.UserService
}

func NewLawyerChatHandler(svc chat.ConversationService, users user.UserService) *LawyerChatHandler {
	return &LawyerChatHandler{Conversations: svc, Users: users}
}

// ListConversations handles GET /api/lawyer/conversations.
func (h *LawyerChatHandler) ListConversations(c *gin.Context) {
	if err := verifiedLawyer(c.Request.Context(), c, h.Users); err != nil {
		utils.RespondError(c, "Failed to fetch conversations", err)
		return
	}
	convs, err := h.Conversations.ListAllConversations(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to fetch conversations", err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

// ListMessages handles GET /api/lawyer/conversations/:id/messages.
func (h *LawyerChatHandler) ListMessages(c *gin.Context) {
	if err := verifiedLawyer(c.Request.Context(), c, h.Users); err != nil {
		utils.RespondError(c, "Failed to fetch messages", err)
		return
	}
	id, err := int64Param(c, "id")
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

// Reply handles POST /api/lawyer/conversations/:id/messages.
func (h *LawyerChatHandler) Reply(c *gin.Context) {
	logger := getLogger(c)

	if err := verifiedLawyer(c.Request.Context(), c, h.Users); err != nil {
		utils.RespondError(c, "Failed to send message", err)
		return
	}
	id, err := int64Param(c, "id")
	if err != nil {
		utils.RespondError(c, "Conversation not found", err)
		return
	}

	var req models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	msg, err := h.Conversations.PostLawyerReply(c.Request.Context(), id, req.Content)
	if err != nil {
		utils.RespondError(c, "Failed to send message", err)
		return
	}
	logger.Info("lawyer replied", zap.Int64("conversationID", id), zap.String("lawyer", callerID(c)))
	c.JSON(http.StatusCreated, gin.H{"lawyerMessage": msg})
}

// verifiedLawyer fails with models.ErrForbidden unless the caller is a
// verified lawyer account.
func verifiedLawyer(ctx context.Context, c *gin.Context, users user.UserService) error {
	caller, err := users.GetAccount(ctx, callerID(c))
	if err != nil {
		return err
	}
	if !caller.IsLawyer() || !caller.IsVerified {
		return fmt.Errorf("%w: only verified lawyers can do this", models.ErrForbidden)
	}
	return nil
}
