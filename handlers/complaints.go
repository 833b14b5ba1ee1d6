package handlers

import (
	"fmt"
	"net/http"

	"lawyerconnect/models"
	"lawyerconnect/services/cases"
	"lawyerconnect/services/user"
	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ComplaintHandler struct {
	Cases cases.CaseService
	Users user.UserService
}

func NewComplaintHandler(svc cases.CaseService, users user.UserService) *ComplaintHandler {
	return &ComplaintHandler{Cases: svc, Users: users}
}

// FileComplaint handles POST /api/complaints.
func (h *ComplaintHandler) FileComplaint(c *gin.Context) {
	logger := getLogger(c)

	var req models.FileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid complaint", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	complaint, err := h.Cases.FileComplaint(c.Request.Context(), callerID(c), req.Type, req.Subject, req.Description)
	if err != nil {
		utils.RespondError(c, "Failed to file complaint", err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// ListComplaints handles GET /api/complaints.
func (h *ComplaintHandler) ListComplaints(c *gin.Context) {
	complaints, err := h.Cases.ListComplaints(c.Request.Context(), callerID(c))
	if err != nil {
		utils.RespondError(c, "Failed to fetch complaints", err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// GetComplaint handles GET /api/complaints/:id. Lawyers may read any
// complaint, members only their own.
func (h *ComplaintHandler) GetComplaint(c *gin.Context) {
	id := c.Param("id")
	complaint, err := h.Cases.GetComplaint(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, "Complaint not found", err)
		return
	}
	if complaint.UserID != callerID(c) && callerRole(c) != models.RoleLawyer {
		utils.RespondError(c, "Complaint not found", fmt.Errorf("complaint %s: %w", id, models.ErrNotFound))
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// ListAllComplaints handles GET /api/lawyer/complaints.
func (h *ComplaintHandler) ListAllComplaints(c *gin.Context) {
	complaints, err := h.Cases.ListAllComplaints(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to fetch complaints", err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// UpdateComplaintStatus handles PUT /api/lawyer/complaints/:id/status.
func (h *ComplaintHandler) UpdateComplaintStatus(c *gin.Context) {
	logger := getLogger(c)

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	complaint, err := h.Cases.SetComplaintStatus(c.Request.Context(), c.Param("id"), callerID(c), req.Status)
	if err != nil {
		utils.RespondError(c, "Failed to update complaint status", err)
		return
	}
	logger.Info("complaint status updated",
		zap.String("complaint", complaint.ComplaintNumber),
		zap.String("status", string(complaint.Status)),
		zap.String("reviewer", callerID(c)))
	c.JSON(http.StatusOK, complaint)
}

// VerifyLawyer handles POST /api/lawyer/accounts/:id/verify. Only verified
// lawyers can vouch for another lawyer; the first ones come from the
// trusted lawyer email list.
func (h *ComplaintHandler) VerifyLawyer(c *gin.Context) {
	ctx := c.Request.Context()
	if err := verifiedLawyer(ctx, c, h.Users); err != nil {
		utils.RespondError(c, "Failed to verify lawyer", err)
		return
	}

	account, err := h.Users.VerifyLawyer(ctx, c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to verify lawyer", err)
		return
	}
	c.JSON(http.StatusOK, account)
}
