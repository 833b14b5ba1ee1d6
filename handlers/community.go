package handlers

import (
	"net/http"

	"lawyerconnect/models"
	"lawyerconnect/services/community"
	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	Community community.CommunityService
}

func NewCommunityHandler(svc community.CommunityService) *CommunityHandler {
	return &CommunityHandler{Community: svc}
}

// ListPosts handles GET /api/community/posts?limit=&offset=.
func (h *CommunityHandler) ListPosts(c *gin.Context) {
	posts, err := h.Community.ListPosts(c.Request.Context(),
		intQuery(c, "limit", community.DefaultPageSize), intQuery(c, "offset", 0))
	if err != nil {
		utils.RespondError(c, "Failed to fetch posts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost handles POST /api/community/posts.
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	post, err := h.Community.CreatePost(c.Request.Context(), callerID(c), req)
	if err != nil {
		utils.RespondError(c, "Failed to create post", err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GetPost handles GET /api/community/posts/:id.
func (h *CommunityHandler) GetPost(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		utils.RespondError(c, "Post not found", err)
		return
	}
	post, err := h.Community.GetPost(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, "Post not found", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ToggleLike handles POST /api/community/posts/:id/like.
func (h *CommunityHandler) ToggleLike(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		utils.RespondError(c, "Post not found", err)
		return
	}
	res, err := h.Community.ToggleLike(c.Request.Context(), id, callerID(c))
	if err != nil {
		utils.RespondError(c, "Failed to update like", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListComments handles GET /api/community/posts/:id/comments.
func (h *CommunityHandler) ListComments(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		utils.RespondError(c, "Post not found", err)
		return
	}
	comments, err := h.Community.ListComments(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, "Failed to fetch comments", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment handles POST /api/community/posts/:id/comments.
func (h *CommunityHandler) AddComment(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		utils.RespondError(c, "Post not found", err)
		return
	}
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	comment, err := h.Community.AddComment(c.Request.Context(), id, callerID(c), req.Content)
	if err != nil {
		utils.RespondError(c, "Failed to add comment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
