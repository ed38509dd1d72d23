package repository

import (
	"slices"
	"sync"
)

// memoryTable keeps rows in insertion order and hands out copies only.
// Ids come from a counter that never goes backwards, so a delete followed
// by a create cannot reuse an id.
type memoryTable[T any] struct {
	mu     sync.RWMutex
	rows   []*T
	nextID int64

	id    func(*T) int64
	setID func(*T, int64)
	clone func(*T) *T
}

func newMemoryTable[T any](id func(*T) int64, setID func(*T, int64), clone func(*T) *T) *memoryTable[T] {
	if clone == nil {
		clone = func(v *T) *T {
			c := *v
			return &c
		}
	}
	return &memoryTable[T]{id: id, setID: setID, clone: clone}
}

func (t *memoryTable[T]) insert(row *T) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.setID(row, t.nextID)
	t.rows = append(t.rows, t.clone(row))
	return t.nextID
}

// insertUnless inserts row unless a stored row already matches taken.
func (t *memoryTable[T]) insertUnless(row *T, taken func(*T) bool) (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if taken(r) {
			return 0, false
		}
	}
	t.nextID++
	t.setID(row, t.nextID)
	t.rows = append(t.rows, t.clone(row))
	return t.nextID, true
}

func (t *memoryTable[T]) get(id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i := t.indexOf(id); i >= 0 {
		return t.clone(t.rows[i]), nil
	}
	return nil, ErrNotFound
}

func (t *memoryTable[T]) first(match func(*T) bool) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, r := range t.rows {
		if match(r) {
			return t.clone(r), nil
		}
	}
	return nil, ErrNotFound
}

func (t *memoryTable[T]) filter(keep func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*T, 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r) {
			out = append(out, t.clone(r))
		}
	}
	return out
}

func (t *memoryTable[T]) replace(row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(t.id(row))
	if i < 0 {
		return ErrNotFound
	}
	t.rows[i] = t.clone(row)
	return nil
}

func (t *memoryTable[T]) modify(id int64, fn func(*T)) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	fn(t.rows[i])
	return nil
}

// update applies fn to the stored row under the write lock and returns a
// copy of the result. An error from fn leaves the row untouched.
func (t *memoryTable[T]) update(id int64, fn func(*T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	next := t.clone(t.rows[i])
	if err := fn(next); err != nil {
		return nil, err
	}
	t.rows[i] = next
	return t.clone(next), nil
}

func (t *memoryTable[T]) remove(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	return nil
}

func (t *memoryTable[T]) indexOf(id int64) int {
	for i, r := range t.rows {
		if t.id(r) == id {
			return i
		}
	}
	return -1
}
