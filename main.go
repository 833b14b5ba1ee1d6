package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawyerconnect/config"
	"lawyerconnect/database"
	"lawyerconnect/database/repository"
	"lawyerconnect/database/repository/session"
	"lawyerconnect/handlers"
	"lawyerconnect/middleware"
	"lawyerconnect/routes"
	"lawyerconnect/services/assistant"
	"lawyerconnect/services/cases"
	"lawyerconnect/services/chat"
	"lawyerconnect/services/community"
	"lawyerconnect/services/embedding"
	"lawyerconnect/services/events"
	"lawyerconnect/services/generation"
	"lawyerconnect/services/library"
	"lawyerconnect/services/retrieval"
	"lawyerconnect/services/user"
	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Persistence: MongoDB with in-process fallback, plus the session tier.
	conn := database.NewConnector(config.AppConfig.DatabaseURL, config.AppConfig.DBName, logger)
	store := repository.NewDurable(conn, logger)
	sessions := session.NewStore()

	// Retrieval.
	embedder := embedding.NewHashEmbedder()
	searcher, index := buildIndex(rootCtx, logger)

	// Generation.
	model, closeModel, err := generation.New(rootCtx, generation.Options{
		Provider:     config.AppConfig.LLMProvider,
		GeminiAPIKey: config.AppConfig.GeminiAPIKey,
		GeminiModel:  config.AppConfig.GeminiModel,
		OpenAIAPIKey: config.AppConfig.OpenAIAPIKey,
		OpenAIModel:  config.AppConfig.OpenAIModel,
	})
	if err != nil {
		logger.Warn("main: generative model unavailable, assistant will reply with the fallback message", zap.Error(err))
	}
	defer func() { _ = closeModel() }()

	generator := assistant.NewGenerator(embedder, searcher, model, assistant.Config{
		RetrievalTimeout:  config.AppConfig.RetrievalTimeout,
		GenerationTimeout: config.AppConfig.GenerationTimeout,
	}, logger)

	// Events.
	var publisher events.Publisher = events.Noop{}
	if config.AppConfig.NATSURL != "" {
		nc, err := events.ConnectNATS(config.AppConfig.NATSURL, logger)
		if err != nil {
			logger.Warn("main: NATS unavailable, complaint events disabled", zap.Error(err))
		} else {
			publisher = nc
			defer func() { _ = nc.Close() }()
		}
	}

	// Services.
	tokens := utils.NewTokenIssuer(config.AppConfig.JWTSecret, config.AppConfig.TokenTTL)
	userService := &user.DefaultUserService{
		Accounts: store.Accounts,
		Tokens:   tokens,
		Logger:   logger,

		TrustedLawyers: config.AppConfig.TrustedLawyerEmails,
	}

	var classifier cases.Classifier = cases.RuleClassifier{}
	if config.AppConfig.Classifier == "model" && model != nil {
		classifier = cases.ModelClassifier{Model: model, Fallback: cases.RuleClassifier{}, Logger: logger}
	}
	caseService := cases.NewCaseService(store.Complaints, store.Accounts, classifier, publisher, logger)
	chatService := chat.NewConversationService(sessions, generator, logger)
	communityService := community.NewCommunityService(sessions, logger)

	libraryService := library.NewLibraryService(store.Categories, store.Articles, embedder, index, logger)
	if err := libraryService.SeedDefaults(rootCtx); err != nil {
		logger.Warn("main: failed to seed legal library", zap.Error(err))
	}
	go func() {
		if _, err := libraryService.IndexArticles(rootCtx); err != nil {
			logger.Warn("main: failed to index legal library", zap.Error(err))
		}
	}()

	// Handlers.
	authHandler := handlers.NewAuthHandler(userService)
	chatHandler := handlers.NewChatHandler(chatService)
	lawyerChatHandler := handlers.NewLawyerChatHandler(chatService, userService)
	complaintHandler := handlers.NewComplaintHandler(caseService, userService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	libraryHandler := handlers.NewLibraryHandler(libraryService)

	handlerBundle := &handlers.HandlerBundle{
		Tokens:            tokens,
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,

		HealthHandler: handlers.HealthHandler,

		// Auth endpoints.
		SignupHandler:        authHandler.SignupHandler,
		LoginHandler:         authHandler.LoginHandler,
		GetCurrentUser:       authHandler.GetCurrentUser,
		UpdateProfileHandler: authHandler.UpdateProfileHandler,

		// Chat endpoints.
		CreateConversation: chatHandler.CreateConversation,
		ListConversations:  chatHandler.ListConversations,
		PostMessage:        chatHandler.PostMessage,
		ListMessages:       chatHandler.ListMessages,

		// Complaint endpoints.
		FileComplaint:  complaintHandler.FileComplaint,
		ListComplaints: complaintHandler.ListComplaints,
		GetComplaint:   complaintHandler.GetComplaint,

		// Lawyer endpoints.
		ListAllComplaints:     complaintHandler.ListAllComplaints,
		UpdateComplaintStatus: complaintHandler.UpdateComplaintStatus,
		VerifyLawyer:          complaintHandler.VerifyLawyer,
		LawyerConversations:   lawyerChatHandler.ListConversations,
		LawyerMessages:        lawyerChatHandler.ListMessages,
		LawyerReply:           lawyerChatHandler.Reply,

		// Community endpoints.
		ListPosts:    communityHandler.ListPosts,
		CreatePost:   communityHandler.CreatePost,
		GetPost:      communityHandler.GetPost,
		ToggleLike:   communityHandler.ToggleLike,
		ListComments: communityHandler.ListComments,
		AddComment:   communityHandler.AddComment,

		// Legal library endpoints.
		ListCategories:  libraryHandler.ListCategories,
		CreateCategory:  libraryHandler.CreateCategory,
		ListArticles:    libraryHandler.ListArticles,
		CreateArticle:   libraryHandler.CreateArticle,
		ReindexArticles: libraryHandler.ReindexArticles,
	}

	utils.StartHealthMonitor(rootCtx, conn, utils.GetCacheClient(), store.Switch)

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := conn.Close(ctx); err != nil {
		logger.Warn("main: failed to close MongoDB client", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// buildIndex returns the Qdrant index when one is configured, an in-memory
// index otherwise. Searches go through the Redis cache when it is available;
// writes go straight to the index.
func buildIndex(ctx context.Context, logger *zap.Logger) (retrieval.Index, retrieval.Store) {
	var index retrieval.Store
	if config.AppConfig.QdrantURL != "" {
		q := retrieval.NewQdrantIndex(retrieval.QdrantConfig{
			URL:        config.AppConfig.QdrantURL,
			APIKey:     config.AppConfig.QdrantAPIKey,
			Collection: config.AppConfig.QdrantCollection,
			Timeout:    config.AppConfig.RetrievalTimeout,
		})
		ensureCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := q.EnsureCollection(ensureCtx, embedding.Dimension)
		cancel()
		if err != nil {
			logger.Warn("main: Qdrant collection check failed, searches may fail until it is reachable", zap.Error(err))
		}
		index = q
	} else {
		logger.Info("main: QDRANT_URL not set, using in-memory document index")
		index = retrieval.NewMemoryIndex()
	}

	if client := utils.GetCacheClient(); client != nil {
		return retrieval.NewCachedIndex(index, client, config.AppConfig.RetrievalCacheTTL, logger), index
	}
	return index, index
}
