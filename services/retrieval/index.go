// Package retrieval finds reference passages for a query vector.
package retrieval

import "context"

// Passage is a piece of reference text returned by a search.
type Passage struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Source string  `json:"source,omitempty"`
	Score  float64 `json:"score"`
}

// Index searches stored passages by vector similarity, best match first.
// Searches may fail or stall; callers bound them.
type Index interface {
	Search(ctx context.Context, vector []float64, topK int) ([]Passage, error)
}

// Writer stores passages with their vectors. Upserting a passage with an
// existing ID replaces it.
type Writer interface {
	Upsert(ctx context.Context, passages []Passage, vectors [][]float64) error
}

// Store is an index that can also be written to.
type Store interface {
	Index
	Writer
}
