// Package session holds the process-local tier: conversations, messages and
// community posts. Nothing here survives a restart.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lawyerconnect/models"
)

// Row is implemented by every record kept in a session table. The table
// assigns the id and creation time through Assign.
type Row[E any] interface {
	RowID() int64
	OwnerKey() string
	Assign(id int64, createdAt time.Time) E
}

type slot[E any] struct {
	row     E
	deleted bool
}

// Table is an append-only arena of rows with an id index. Ids are assigned
// under the table lock, strictly increase, and are never reused.
type Table[E Row[E]] struct {
	kind string
	now  func() time.Time

	mu    sync.RWMutex
	next  int64
	last  time.Time
	rows  []slot[E]
	index map[int64]int
}

// NewTable creates an empty table. kind names the entity in errors.
func NewTable[E Row[E]](kind string) *Table[E] {
	return &Table[E]{
		kind:  kind,
		now:   time.Now,
		index: make(map[int64]int),
	}
}

// Insert stores rec under the next id. Creation times never go backwards
// within a table, so id order and time order agree.
func (t *Table[E]) Insert(_ context.Context, rec E) (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	at := t.now().UTC()
	if at.Before(t.last) {
		at = t.last
	}
	t.last = at

	rec = rec.Assign(t.next, at)
	t.index[t.next] = len(t.rows)
	t.rows = append(t.rows, slot[E]{row: rec})
	return rec, nil
}

// Get returns the row with the given id or models.ErrNotFound.
func (t *Table[E]) Get(_ context.Context, id int64) (E, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pos, ok := t.index[id]
	if !ok {
		var zero E
		return zero, fmt.Errorf("%s %d: %w", t.kind, id, models.ErrNotFound)
	}
	return t.rows[pos].row, nil
}

// Exists reports whether a live row has the given id.
func (t *Table[E]) Exists(_ context.Context, id int64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.index[id]
	return ok
}

// FindByOwner returns the rows with the given owner key in id order.
func (t *Table[E]) FindByOwner(ctx context.Context, owner string) []E {
	return t.Filter(ctx, func(row E) bool { return row.OwnerKey() == owner })
}

// Filter returns the live rows matching keep, in id order.
func (t *Table[E]) Filter(_ context.Context, keep func(E) bool) []E {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var out []E
	for _, s := range t.rows {
		if s.deleted || !keep(s.row) {
			continue
		}
		out = append(out, s.row)
	}
	return out
}

// Update applies mutate to a copy of the row and stores the result. The id
// may not change; mutate errors leave the row untouched.
func (t *Table[E]) Update(_ context.Context, id int64, mutate func(*E) error) (E, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero E
	pos, ok := t.index[id]
	if !ok {
		return zero, fmt.Errorf("%s %d: %w", t.kind, id, models.ErrNotFound)
	}
	row := t.rows[pos].row
	if err := mutate(&row); err != nil {
		return zero, err
	}
	if row.RowID() != id {
		return zero, fmt.Errorf("%w: %s id is immutable", models.ErrInvalidInput, t.kind)
	}
	t.rows[pos].row = row
	return row, nil
}

// Delete removes a row. Its id is not handed out again.
func (t *Table[E]) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.index[id]
	if !ok {
		return fmt.Errorf("%s %d: %w", t.kind, id, models.ErrNotFound)
	}
	t.rows[pos].deleted = true
	var zero E
	t.rows[pos].row = zero
	delete(t.index, id)
	return nil
}

// Len reports the number of live rows.
func (t *Table[E]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.index)
}
