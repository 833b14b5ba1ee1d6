// models/library.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LegalCategory groups articles in the legal library.
type LegalCategory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

func (c LegalCategory) DocID() primitive.ObjectID { return c.ID }

func (c LegalCategory) WithDocID(id primitive.ObjectID) LegalCategory {
	c.ID = id
	return c
}

// LegalArticle is a reference article. Articles are also indexed for retrieval.
type LegalArticle struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryID string             `bson:"categoryId" json:"categoryId"`
	Title      string             `bson:"title" json:"title"`
	Content    string             `bson:"content" json:"content"`
	Summary    string             `bson:"summary,omitempty" json:"summary,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (a LegalArticle) DocID() primitive.ObjectID { return a.ID }

func (a LegalArticle) WithDocID(id primitive.ObjectID) LegalArticle {
	a.ID = id
	return a
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CreateArticleRequest struct {
	CategoryID string `json:"categoryId" binding:"required"`
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Summary    string `json:"summary"`
}
