package retrieval

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
)

// MemoryIndex is a brute-force cosine-similarity index kept in process. It
// serves development runs without Qdrant and tests.
type MemoryIndex struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]memoryEntry
}

type memoryEntry struct {
	passage Passage
	vector  []float64
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{entries: make(map[string]memoryEntry)}
}

func (m *MemoryIndex) Upsert(_ context.Context, passages []Passage, vectors [][]float64) error {
	if len(passages) != len(vectors) {
		return errors.New("passages and vectors length mismatch")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range passages {
		if _, exists := m.entries[p.ID]; !exists {
			m.order = append(m.order, p.ID)
		}
		vec := make([]float64, len(vectors[i]))
		copy(vec, vectors[i])
		m.entries[p.ID] = memoryEntry{passage: p, vector: vec}
	}
	return nil
}

func (m *MemoryIndex) Search(ctx context.Context, vector []float64, topK int) ([]Passage, error) {
	if topK <= 0 {
		topK = 3
	}
	m.mu.RLock()
	scored := make([]Passage, 0, len(m.entries))
	for _, id := range m.order {
		if err := ctx.Err(); err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		e := m.entries[id]
		p := e.passage
		p.Score = cosine(vector, e.vector)
		scored = append(scored, p)
	}
	m.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

// Len reports the number of stored passages.
func (m *MemoryIndex) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
