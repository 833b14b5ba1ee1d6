// Package durable holds the persistent tier: MongoDB collections, their
// in-process shadows, and the wrapper that fails over between them.
package durable

import (
	"context"
	"fmt"

	"lawyerconnect/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is implemented by every record kept in the durable tier. The
// store assigns the ObjectID; WithDocID returns a copy carrying it.
type Document[D any] interface {
	DocID() primitive.ObjectID
	WithDocID(id primitive.ObjectID) D
}

// Fields is a partial document keyed by bson field name.
type Fields map[string]any

// Collection is the typed record API shared by the Mongo collection, the
// shadow store and the fallback wrapper.
type Collection[D Document[D]] interface {
	// Insert stores doc under a fresh id and returns the stored copy.
	// A unique-index violation yields models.ErrConflict.
	Insert(ctx context.Context, doc D) (D, error)

	// FindByID returns exactly one document or models.ErrNotFound.
	FindByID(ctx context.Context, id string) (D, error)

	// FindBy returns every document whose field equals value.
	FindBy(ctx context.Context, field string, value any) ([]D, error)

	// List returns every document in the collection.
	List(ctx context.Context) ([]D, error)

	// UpdateFields applies set to the document with the given id, provided
	// every field in guard still holds its expected value, and returns the
	// updated document. A missing id or a failed guard yields models.ErrNotFound.
	// The _id field can never be set.
	UpdateFields(ctx context.Context, id string, guard, set Fields) (D, error)
}

// FindByOwner lists the documents owned by an account.
func FindByOwner[D Document[D]](ctx context.Context, c Collection[D], ownerID string) ([]D, error) {
	return c.FindBy(ctx, "userId", ownerID)
}

// FindOneBy returns the first document whose field equals value.
func FindOneBy[D Document[D]](ctx context.Context, c Collection[D], field string, value any) (D, error) {
	var zero D
	docs, err := c.FindBy(ctx, field, value)
	if err != nil {
		return zero, err
	}
	if len(docs) == 0 {
		return zero, fmt.Errorf("no document with %s: %w", field, models.ErrNotFound)
	}
	return docs[0], nil
}

func parseID(kind, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %q: %w", kind, id, models.ErrNotFound)
	}
	return oid, nil
}

func checkSet(set Fields) error {
	if _, ok := set["_id"]; ok {
		return fmt.Errorf("%w: _id is immutable", models.ErrInvalidInput)
	}
	if len(set) == 0 {
		return fmt.Errorf("%w: empty update", models.ErrInvalidInput)
	}
	return nil
}
