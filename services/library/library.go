package library

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"lawyerconnect/models"

	"go.uber.org/zap"
)

func (s *DefaultLibraryService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (*models.LegalCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", models.ErrInvalidInput)
	}
	category, err := s.Categories.Insert(ctx, models.LegalCategory{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Icon:        strings.TrimSpace(req.Icon),
		CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return &category, nil
}

// ListCategories returns every category ordered by name.
func (s *DefaultLibraryService) ListCategories(ctx context.Context) ([]models.LegalCategory, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// CreateArticle stores an article under an existing category and indexes it.
// Indexing failures are logged; IndexArticles can be rerun later.
func (s *DefaultLibraryService) CreateArticle(ctx context.Context, req models.CreateArticleRequest) (*models.LegalArticle, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", models.ErrInvalidInput)
	}
	if _, err := s.Categories.FindByID(ctx, req.CategoryID); err != nil {
		return nil, fmt.Errorf("category %s: %w", req.CategoryID, err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	article, err := s.Articles.Insert(ctx, models.LegalArticle{
		CategoryID: req.CategoryID,
		Title:      title,
		Content:    content,
		Summary:    strings.TrimSpace(req.Summary),
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	if err := s.index(ctx, []models.LegalArticle{article}); err != nil {
		s.Logger.Warn("article stored but not indexed", zap.String("id", article.ID.Hex()), zap.Error(err))
	}
	return &article, nil
}

// ListArticles returns articles newest first, restricted to categoryID when
// it is non-empty.
func (s *DefaultLibraryService) ListArticles(ctx context.Context, categoryID string) ([]models.LegalArticle, error) {
	var (
		articles []models.LegalArticle
		err      error
	)
	if categoryID == "" {
		articles, err = s.Articles.List(ctx)
	} else {
		articles, err = s.Articles.FindBy(ctx, "categoryId", categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	newestFirst(articles)
	return articles, nil
}

// SearchArticles matches query against titles and contents, ignoring case.
func (s *DefaultLibraryService) SearchArticles(ctx context.Context, query string) ([]models.LegalArticle, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.ListArticles(ctx, "")
	}
	all, err := s.Articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search articles: %w", err)
	}
	matches := make([]models.LegalArticle, 0, len(all))
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Title), query) || strings.Contains(strings.ToLower(a.Content), query) {
			matches = append(matches, a)
		}
	}
	newestFirst(matches)
	return matches, nil
}

func newestFirst(articles []models.LegalArticle) {
	sort.SliceStable(articles, func(i, j int) bool {
		if !articles[i].CreatedAt.Equal(articles[j].CreatedAt) {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		}
		return articles[i].ID.Hex() > articles[j].ID.Hex()
	})
}
