// models/community.go
package models

import (
	"strconv"
	"time"
)

// CommunityPost is a session-scoped discussion post.
type CommunityPost struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	IsModerated   bool      `json:"isModerated"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (p CommunityPost) RowID() int64     { return p.ID }
func (p CommunityPost) OwnerKey() string { return p.UserID }

func (p CommunityPost) Assign(id int64, at time.Time) CommunityPost {
	p.ID = id
	p.CreatedAt = at
	p.UpdatedAt = at
	return p
}

// PostLike records one account liking one post.
type PostLike struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l PostLike) RowID() int64     { return l.ID }
func (l PostLike) OwnerKey() string { return strconv.FormatInt(l.PostID, 10) }

func (l PostLike) Assign(id int64, at time.Time) PostLike {
	l.ID = id
	l.CreatedAt = at
	return l
}

// PostComment is a reply on a post.
type PostComment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c PostComment) RowID() int64     { return c.ID }
func (c PostComment) OwnerKey() string { return strconv.FormatInt(c.PostID, 10) }

func (c PostComment) Assign(id int64, at time.Time) PostComment {
	c.ID = id
	c.CreatedAt = at
	return c
}

type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// LikeResult reports the state of a like after a toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likesCount"`
}
