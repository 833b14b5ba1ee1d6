package durable

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"lawyerconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var newObjectID = primitive.NewObjectID

// Shadow is an in-process Collection. Documents are held in their bson form
// so reads and guarded updates behave like the Mongo collection, including
// unique fields. Contents live only as long as the process.
type Shadow[D Document[D]] struct {
	name   string
	unique []string

	mu    sync.RWMutex
	docs  []bson.M
	index map[primitive.ObjectID]int
}

// NewShadow creates an empty shadow collection enforcing the given unique fields.
func NewShadow[D Document[D]](name string, unique ...string) *Shadow[D] {
	return &Shadow[D]{
		name:   name,
		unique: unique,
		index:  make(map[primitive.ObjectID]int),
	}
}

func (s *Shadow[D]) Insert(_ context.Context, doc D) (D, error) {
	var zero D
	if doc.DocID().IsZero() {
		doc = doc.WithDocID(newObjectID())
	}
	m, err := encode(doc)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s document: %w", s.name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[doc.DocID()]; exists {
		return zero, fmt.Errorf("insert into %s: %w: duplicate _id", s.name, models.ErrConflict)
	}
	for _, field := range s.unique {
		for _, existing := range s.docs {
			if reflect.DeepEqual(existing[field], m[field]) {
				return zero, fmt.Errorf("insert into %s: %w: duplicate %s", s.name, models.ErrConflict, field)
			}
		}
	}
	s.index[doc.DocID()] = len(s.docs)
	s.docs = append(s.docs, m)
	return decode[D](m)
}

func (s *Shadow[D]) FindByID(_ context.Context, id string) (D, error) {
	var zero D
	oid, err := parseID(s.name, id)
	if err != nil {
		return zero, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	slot, ok := s.index[oid]
	if !ok {
		return zero, fmt.Errorf("fetch from %s: %w", s.name, models.ErrNotFound)
	}
	return decode[D](s.docs[slot])
}

func (s *Shadow[D]) FindBy(_ context.Context, field string, value any) ([]D, error) {
	want, err := normalize(Fields{field: value})
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []D
	for _, m := range s.docs {
		if !reflect.DeepEqual(m[field], want[field]) {
			continue
		}
		doc, err := decode[D](m)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *Shadow[D]) List(_ context.Context) ([]D, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]D, 0, len(s.docs))
	for _, m := range s.docs {
		doc, err := decode[D](m)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *Shadow[D]) UpdateFields(_ context.Context, id string, guard, set Fields) (D, error) {
	var zero D
	if err := checkSet(set); err != nil {
		return zero, err
	}
	oid, err := parseID(s.name, id)
	if err != nil {
		return zero, err
	}
	wantGuard, err := normalize(guard)
	if err != nil {
		return zero, err
	}
	changes, err := normalize(set)
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.index[oid]
	if !ok {
		return zero, fmt.Errorf("update %s: %w", s.name, models.ErrNotFound)
	}
	current := s.docs[slot]
	for k, v := range wantGuard {
		if !reflect.DeepEqual(current[k], v) {
			return zero, fmt.Errorf("update %s: %w", s.name, models.ErrNotFound)
		}
	}

	next := make(bson.M, len(current)+len(changes))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range changes {
		next[k] = v
	}
	// Decode first so a set that breaks the schema leaves the stored copy intact.
	doc, err := decode[D](next)
	if err != nil {
		return zero, fmt.Errorf("update %s: %w: %v", s.name, models.ErrInvalidInput, err)
	}
	s.docs[slot] = next
	return doc, nil
}

// Len reports the number of stored documents.
func (s *Shadow[D]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func encode(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decode[D any](m bson.M) (D, error) {
	var doc D
	raw, err := bson.Marshal(m)
	if err != nil {
		return doc, err
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// normalize puts caller-supplied values into the same bson form stored
// documents use, so named string types and times compare equal.
func normalize(f Fields) (bson.M, error) {
	if len(f) == 0 {
		return bson.M{}, nil
	}
	return encode(bson.M(f))
}
