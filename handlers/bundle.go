package handlers

import (
	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Tokens            *utils.TokenIssuer
	MaxRequestsPerMin int

	// Health
	HealthHandler gin.HandlerFunc

	// Auth endpoints
	SignupHandler        gin.HandlerFunc
	LoginHandler         gin.HandlerFunc
	GetCurrentUser       gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc

	// Chat endpoints
	CreateConversation gin.HandlerFunc
	ListConversations  gin.HandlerFunc
	PostMessage        gin.HandlerFunc
	ListMessages       gin.HandlerFunc

	// Complaint endpoints
	FileComplaint  gin.HandlerFunc
	ListComplaints gin.HandlerFunc
	GetComplaint   gin.HandlerFunc

	// Lawyer endpoints
	ListAllComplaints     gin.HandlerFunc
	UpdateComplaintStatus gin.HandlerFunc
	VerifyLawyer          gin.HandlerFunc
	LawyerConversations   gin.HandlerFunc
	LawyerMessages        gin.HandlerFunc
	LawyerReply           gin.HandlerFunc

	// Community endpoints
	ListPosts    gin.HandlerFunc
	CreatePost   gin.HandlerFunc
	GetPost      gin.HandlerFunc
	ToggleLike   gin.HandlerFunc
	ListComments gin.HandlerFunc
	AddComment   gin.HandlerFunc

	// Legal library endpoints
	ListCategories  gin.HandlerFunc
	CreateCategory  gin.HandlerFunc
	ListArticles    gin.HandlerFunc
	CreateArticle   gin.HandlerFunc
	ReindexArticles gin.HandlerFunc
}
