package session

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"lawyerconnect/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[models.Conversation]("conversation")

	a, err := tbl.Insert(ctx, models.Conversation{UserID: "u1"})
	require.NoError(t, err)
	b, err := tbl.Insert(ctx, models.Conversation{UserID: "u1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.False(t, b.CreatedAt.Before(a.CreatedAt))
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)
}

func TestCreationTimeNeverGoesBackwards(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[models.Message]("message")
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := []time.Time{base, base.Add(-time.Minute)}
	i := 0
	tbl.now = func() time.Time { v := clock[i]; i++; return v }

	first, _ := tbl.Insert(ctx, models.Message{ConversationID: 1})
	second, _ := tbl.Insert(ctx, models.Message{ConversationID: 1})

	assert.Equal(t, base, first.CreatedAt)
	assert.Equal(t, base, second.CreatedAt)
}

func TestConcurrentInsertsYieldDistinctIDs(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[models.Message]("message")

	const n = 200
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := tbl.Insert(ctx, models.Message{ConversationID: 7, Role: models.MessageRoleUser, Content: "hi"})
			if err != nil {
				t.Errorf("Insert: %v", err)
				return
			}
			ids <- m.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, n, tbl.Len())

	rows := tbl.FindByOwner(ctx, "7")
	require.Len(t, rows, n)
	assert.True(t, sort.SliceIsSorted(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID }))
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	tbl := NewTable[models.Conversation]("conversation")
	_, err := tbl.Get(context.Background(), 42)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUpdateCannotChangeID(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[models.Conversation]("conversation")
	c, _ := tbl.Insert(ctx, models.Conversation{UserID: "u1"})

	_, err := tbl.Update(ctx, c.ID, func(row *models.Conversation) error {
		row.ID = 99
		return nil
	})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	got, err := tbl.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	updated, err := tbl.Update(ctx, c.ID, func(row *models.Conversation) error {
		row.Title = "Tenancy"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Tenancy", updated.Title)
}

func TestDeleteDoesNotReuseIDs(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[models.PostLike]("like")
	l, _ := tbl.Insert(ctx, models.PostLike{PostID: 1, UserID: "u1"})

	require.NoError(t, tbl.Delete(ctx, l.ID))
	assert.ErrorIs(t, tbl.Delete(ctx, l.ID), models.ErrNotFound)
	assert.False(t, tbl.Exists(ctx, l.ID))
	assert.Empty(t, tbl.FindByOwner(ctx, "1"))

	next, _ := tbl.Insert(ctx, models.PostLike{PostID: 1, UserID: "u1"})
	assert.Equal(t, l.ID+1, next.ID)
}
