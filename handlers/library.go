package handlers

import (
	"net/http"

	"lawyerconnect/models"
	"lawyerconnect/services/library"
	"lawyerconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LibraryHandler struct {
	Library library.LibraryService
}

func NewLibraryHandler(svc library.LibraryService) *LibraryHandler {
	return &LibraryHandler{Library: svc}
}

// ListCategories handles GET /api/legal/categories.
func (h *LibraryHandler) ListCategories(c *gin.Context) {
	categories, err := h.Library.ListCategories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to fetch legal categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListArticles handles GET /api/legal/articles?search=&categoryId=.
func (h *LibraryHandler) ListArticles(c *gin.Context) {
	var (
		articles []models.LegalArticle
		err      error
	)
	if search := c.Query("search"); search != "" {
		articles, err = h.Library.SearchArticles(c.Request.Context(), search)
	} else {
		articles, err = h.Library.ListArticles(c.Request.Context(), c.Query("categoryId"))
	}
	if err != nil {
		utils.RespondError(c, "Failed to fetch legal articles", err)
		return
	}
	if articles == nil {
		articles = []models.LegalArticle{}
	}
	c.JSON(http.StatusOK, articles)
}

// CreateCategory handles POST /api/legal/categories.
func (h *LibraryHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	category, err := h.Library.CreateCategory(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create category", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// CreateArticle handles POST /api/legal/articles.
func (h *LibraryHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}
	article, err := h.Library.CreateArticle(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Failed to create article", err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// ReindexArticles handles POST /api/legal/reindex.
func (h *LibraryHandler) ReindexArticles(c *gin.Context) {
	n, err := h.Library.IndexArticles(c.Request.Context())
	if err != nil {
		getLogger(c).Error("Reindex failed", zap.Int("indexed", n), zap.Error(err))
		utils.RespondError(c, "Failed to index articles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"indexed": n})
}
