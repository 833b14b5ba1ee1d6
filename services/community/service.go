// Package community runs the discussion board kept in the session store.
package community

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"lawyerconnect/database/repository/session"
	"lawyerconnect/models"

	"go.uber.org/zap"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type CommunityService interface {
	CreatePost(ctx context.Context, userID string, req models.CreatePostRequest) (*models.CommunityPost, error)
	ListPosts(ctx context.Context, limit, offset int) ([]models.CommunityPost, error)
	GetPost(ctx context.Context, postID int64) (*models.CommunityPost, error)
	ToggleLike(ctx context.Context, postID int64, userID string) (*models.LikeResult, error)
	AddComment(ctx context.Context, postID int64, userID, content string) (*models.PostComment, error)
	ListComments(ctx context.Context, postID int64) ([]models.PostComment, error)
}

// DefaultCommunityService keeps counters on the post in step with the like
// and comment tables. mu serialises every mutation that touches a counter.
type DefaultCommunityService struct {
	Posts    *session.Table[models.CommunityPost]
	Likes    *session.Table[models.PostLike]
	Comments *session.Table[models.PostComment]
	Logger   *zap.Logger

	mu sync.Mutex
}

func NewCommunityService(store *session.Store, logger *zap.Logger) *DefaultCommunityService {
	return &DefaultCommunityService{
		Posts:    store.Posts,
		Likes:    store.Likes,
		Comments: store.Comments,
		Logger:   logger,
	}
}

func (s *DefaultCommunityService) CreatePost(ctx context.Context, userID string, req models.CreatePostRequest) (*models.CommunityPost, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if userID == "" {
		return nil, fmt.Errorf("%w: author is required", models.ErrInvalidInput)
	}
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", models.ErrInvalidInput)
	}
	post, err := s.Posts.Insert(ctx, models.CommunityPost{UserID: userID, Title: title, Content: content})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// ListPosts pages through posts newest first. A non-positive limit means
// DefaultPageSize.
func (s *DefaultCommunityService) ListPosts(ctx context.Context, limit, offset int) ([]models.CommunityPost, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	posts := s.Posts.Filter(ctx, func(models.CommunityPost) bool { return true })
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].ID > posts[j].ID })
	if offset >= len(posts) {
		return []models.CommunityPost{}, nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end], nil
}

func (s *DefaultCommunityService) GetPost(ctx context.Context, postID int64) (*models.CommunityPost, error) {
	post, err := s.Posts.Get(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ToggleLike likes the post for userID, or removes the like if one exists.
func (s *DefaultCommunityService) ToggleLike(ctx context.Context, postID int64, userID string) (*models.LikeResult, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user is required", models.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Posts.Exists(ctx, postID) {
		return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}

	existing := s.likesOn(ctx, postID, userID)
	liked := len(existing) == 0
	if liked {
		if _, err := s.Likes.Insert(ctx, models.PostLike{PostID: postID, UserID: userID}); err != nil {
			return nil, fmt.Errorf("failed to like post: %w", err)
		}
	} else {
		for _, like := range existing {
			if err := s.Likes.Delete(ctx, like.ID); err != nil {
				return nil, fmt.Errorf("failed to unlike post: %w", err)
			}
		}
	}

	post, err := s.recount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.LikeResult{Liked: liked, LikesCount: post.LikesCount}, nil
}

func (s *DefaultCommunityService) AddComment(ctx context.Context, postID int64, userID, content string) (*models.PostComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", models.ErrInvalidInput)
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: author is required", models.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Posts.Exists(ctx, postID) {
		return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}
	comment, err := s.Comments.Insert(ctx, models.PostComment{PostID: postID, UserID: userID, Content: content})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	if _, err := s.recount(ctx, postID); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a post's comments oldest first.
func (s *DefaultCommunityService) ListComments(ctx context.Context, postID int64) ([]models.PostComment, error) {
	if !s.Posts.Exists(ctx, postID) {
		return nil, fmt.Errorf("post %d: %w", postID, models.ErrNotFound)
	}
	comments := s.Comments.FindByOwner(ctx, strconv.FormatInt(postID, 10))
	if comments == nil {
		comments = []models.PostComment{}
	}
	sort.SliceStable(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (s *DefaultCommunityService) likesOn(ctx context.Context, postID int64, userID string) []models.PostLike {
	likes := s.Likes.FindByOwner(ctx, strconv.FormatInt(postID, 10))
	out := likes[:0]
	for _, l := range likes {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out
}

// recount sets the post counters from the live rows. Callers hold mu.
func (s *DefaultCommunityService) recount(ctx context.Context, postID int64) (models.CommunityPost, error) {
	key := strconv.FormatInt(postID, 10)
	likes := len(s.Likes.FindByOwner(ctx, key))
	comments := len(s.Comments.FindByOwner(ctx, key))
	post, err := s.Posts.Update(ctx, postID, func(p *models.CommunityPost) error {
		p.LikesCount = likes
		p.CommentsCount = comments
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		s.Logger.Error("failed to update post counters", zap.Int64("postID", postID), zap.Error(err))
		return post, fmt.Errorf("failed to update post %d: %w", postID, err)
	}
	return post, nil
}
