package library

import (
	"context"
	"fmt"

	"lawyerconnect/models"
	"lawyerconnect/services/retrieval"

	"go.uber.org/zap"
)

const indexBatchSize = 64

// IndexArticles embeds every stored article and upserts it into the
// retrieval index. It returns the number of articles written.
func (s *DefaultLibraryService) IndexArticles(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	articles, err := s.Articles.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load articles for indexing: %w", err)
	}
	written := 0
	for start := 0; start < len(articles); start += indexBatchSize {
		end := start + indexBatchSize
		if end > len(articles) {
			end = len(articles)
		}
		if err := s.index(ctx, articles[start:end]); err != nil {
			return written, err
		}
		written += end - start
	}
	s.Logger.Info("library articles indexed", zap.Int("count", written))
	return written, nil
}

func (s *DefaultLibraryService) index(ctx context.Context, articles []models.LegalArticle) error {
	if s.Index == nil || len(articles) == 0 {
		return nil
	}
	passages := make([]retrieval.Passage, len(articles))
	vectors := make([][]float64, len(articles))
	for i, a := range articles {
		text := ArticleText(a)
		passages[i] = retrieval.Passage{ID: PassageID(a), Text: text, Source: a.Title}
		vectors[i] = s.Embedder.Embed(text)
	}
	if err := s.Index.Upsert(ctx, passages, vectors); err != nil {
		return fmt.Errorf("failed to upsert %d articles: %w", len(articles), err)
	}
	return nil
}

// PassageID names an article in the retrieval index.
func PassageID(a models.LegalArticle) string {
	return "article:" + a.ID.Hex()
}

// ArticleText is the text embedded and returned for an article.
func ArticleText(a models.LegalArticle) string {
	if a.Summary != "" {
		return a.Title + "\n" + a.Summary + "\n\n" + a.Content
	}
	return a.Title + "\n\n" + a.Content
}
