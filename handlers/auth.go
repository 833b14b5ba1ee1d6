package handlers

import (
	"net/http"

	"lawyerconnect/models"
	"lawyerconnect/services/user"
	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{UserService: svc}
}

// SignupHandler handles POST /api/auth/signup.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid signup request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.UserService.Signup(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Registration failed", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid login request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	resp, err := h.UserService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, "Authentication failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCurrentUser handles GET /api/auth/user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	account, err := h.UserService.GetAccount(c.Request.Context(), callerID(c))
	if err != nil {
		utils.RespondError(c, "Failed to fetch user", err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// UpdateProfileHandler handles PUT /api/auth/user.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid profile update", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	account, err := h.UserService.UpdateProfile(c.Request.Context(), callerID(c), req)
	if err != nil {
		utils.RespondError(c, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, account)
}
