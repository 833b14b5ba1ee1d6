package routes

import (
	"time"

	"lawyerconnect/handlers"
	"lawyerconnect/middleware"
	"lawyerconnect/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterAuthRoutes registers signup, login and profile endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/signup", hb.SignupHandler)
		api.POST("/login", hb.LoginHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		api.GET("/user", hb.GetCurrentUser)
		api.PUT("/user", hb.UpdateProfileHandler)
	}
}

// RegisterChatRoutes registers the assistant conversation endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		api.POST("/conversations", hb.CreateConversation)
		api.GET("/conversations", hb.ListConversations)
		api.POST("/conversations/:id/messages", hb.PostMessage)
		api.GET("/conversations/:id/messages", hb.ListMessages)
	}
}

// RegisterComplaintRoutes registers complaint filing for members.
func RegisterComplaintRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/complaints")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		api.POST("", hb.FileComplaint)
		api.GET("", hb.ListComplaints)
		api.GET("/:id", hb.GetComplaint)
	}
}

// RegisterLawyerRoutes registers complaint review, account verification and
// the lawyer inbox.
func RegisterLawyerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/lawyer")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.Tokens), middleware.RequireRole(models.RoleLawyer))
		api.GET("/complaints", hb.ListAllComplaints)
		api.PUT("/complaints/:id/status", hb.UpdateComplaintStatus)
		api.POST("/accounts/:id/verify", hb.VerifyLawyer)
		api.GET("/conversations", hb.LawyerConversations)
		api.GET("/conversations/:id/messages", hb.LawyerMessages)
		api.POST("/conversations/:id/messages", hb.LawyerReply)
	}
}

// RegisterCommunityRoutes registers the discussion board.
func RegisterCommunityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/community")
	{
		api.GET("/posts", hb.ListPosts)
		api.GET("/posts/:id", hb.GetPost)
		api.GET("/posts/:id/comments", hb.ListComments)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Tokens))
		protected.POST("/posts", hb.CreatePost)
		protected.POST("/posts/:id/like", hb.ToggleLike)
		protected.POST("/posts/:id/comments", hb.AddComment)
	}
}

// RegisterLibraryRoutes registers the legal library. Reads are public,
// writes are for lawyers.
func RegisterLibraryRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/legal")
	{
		api.GET("/categories", hb.ListCategories)
		api.GET("/articles", hb.ListArticles)

		editors := api.Group("")
		editors.Use(middleware.JWTAuthMiddleware(hb.Tokens), middleware.RequireRole(models.RoleLawyer))
		editors.POST("/categories", hb.CreateCategory)
		editors.POST("/articles", hb.CreateArticle)
		editors.POST("/reindex", hb.ReindexArticles)
	}
}

// RegisterHealthRoute registers health and metrics endpoints.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterComplaintRoutes(r, hb)
	RegisterLawyerRoutes(r, hb)
	RegisterCommunityRoutes(r, hb)
	RegisterLibraryRoutes(r, hb)
}
