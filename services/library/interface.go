// Package library serves the legal reference library and feeds its articles
// into the retrieval index.
package library

import (
	"context"

	"lawyerconnect/database/repository/durable"
	"lawyerconnect/models"
	"lawyerconnect/services/embedding"
	"lawyerconnect/services/retrieval"

	"go.uber.org/zap"
)

type LibraryService interface {
	// Categories
	CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.LegalCategory, error)
	ListCategories(ctx context.Context) ([]models.LegalCategory, error)

	// Articles
	CreateArticle(ctx context.Context, req models.CreateArticleRequest) (*models.LegalArticle, error)
	ListArticles(ctx context.Context, categoryID string) ([]models.LegalArticle, error)
	SearchArticles(ctx context.Context, query string) ([]models.LegalArticle, error)

	// Retrieval
	IndexArticles(ctx context.Context) (int, error)
	SeedDefaults(ctx context.Context) error
}

// DefaultLibraryService is the production implementation. Index may be nil,
// in which case articles are stored but never indexed.
type DefaultLibraryService struct {
	Categories durable.Collection[models.LegalCategory]
	Articles   durable.Collection[models.LegalArticle]
	Embedder   embedding.Embedder
	Index      retrieval.Writer
	Logger     *zap.Logger
}

func NewLibraryService(
	categories durable.Collection[models.LegalCategory],
	articles durable.Collection[models.LegalArticle],
	embedder embedding.Embedder,
	index retrieval.Writer,
	logger *zap.Logger,
) *DefaultLibraryService {
	return &DefaultLibraryService{
		Categories: categories,
		Articles:   articles,
		Embedder:   embedder,
		Index:      index,
		Logger:     logger,
	}
}
