package community

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"lawyerconnect/database/repository/session"
	"lawyerconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *DefaultCommunityService {
	return NewCommunityService(session.NewStore(), zap.NewNop())
}

func TestCreateAndListPostsNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	for i := 0; i < 5; i++ {
		_, err := svc.CreatePost(ctx, "u1", models.CreatePostRequest{Title: fmt.Sprintf("post %d", i), Content: "body"})
		require.NoError(t, err)
	}

	page, err := svc.ListPosts(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "post 4", page[0].Title)
	assert.Equal(t, "post 3", page[1].Title)

	page, err = svc.ListPosts(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "post 0", page[0].Title)

	page, err = svc.ListPosts(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = svc.CreatePost(ctx, "u1", models.CreatePostRequest{Title: " ", Content: "x"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestToggleLikeKeepsCounterConsistent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	post, err := svc.CreatePost(ctx, "author", models.CreatePostRequest{Title: "Tenant rights", Content: "..."})
	require.NoError(t, err)

	res, err := svc.ToggleLike(ctx, post.ID, "u1")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikesCount)

	res, err = svc.ToggleLike(ctx, post.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, 2, res.LikesCount)

	res, err = svc.ToggleLike(ctx, post.ID, "u1")
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 1, res.LikesCount)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)

	_, err = svc.ToggleLike(ctx, 999, "u1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestConcurrentTogglesNeverGoNegative(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	post, _ := svc.CreatePost(ctx, "author", models.CreatePostRequest{Title: "t", Content: "c"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.ToggleLike(ctx, post.ID, fmt.Sprintf("u%d", i%5))
		}(i)
	}
	wg.Wait()

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.LikesCount, 0)
	assert.Equal(t, svc.Likes.Len(), got.LikesCount)
}

func TestCommentsOldestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	post, _ := svc.CreatePost(ctx, "author", models.CreatePostRequest{Title: "t", Content: "c"})

	_, err := svc.AddComment(ctx, post.ID, "u1", "first")
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, post.ID, "u2", "second")
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)

	got, _ := svc.GetPost(ctx, post.ID)
	assert.Equal(t, 2, got.CommentsCount)

	_, err = svc.AddComment(ctx, post.ID, "u1", "  ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = svc.AddComment(ctx, 42, "u1", "hello")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = svc.ListComments(ctx, 42)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListCommentsEmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	post, err := svc.CreatePost(ctx, "u1", models.CreatePostRequest{Title: "Quiet", Content: "No replies yet"})
	require.NoError(t, err)

	comments, err := svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
