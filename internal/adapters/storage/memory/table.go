package memory

import (
	"errors"
	"strings"
	"sync"
)

var (
	errIDRequired    = errors.New("id required")
	errAlreadyExists = errors.New("already exists")
	errNotFound      = errors.New("not found")
)

// table es un map protegido que recuerda el orden de inserción.
// Los listados salen en ese orden (el desempate de la reasignación lo necesita).
type table[T any] struct {
	mu    sync.RWMutex
	byID  map[string]T
	order []string
	clone func(T) T
}

func newTable[T any](clone func(T) T) *table[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &table[T]{
		byID:  make(map[string]T),
		clone: clone,
	}
}

func (t *table[T]) insert(id string, v T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if strings.TrimSpace(id) == "" {
		return errIDRequired
	}
	if _, exists := t.byID[id]; exists {
		return errAlreadyExists
	}
	t.byID[id] = t.clone(v)
	t.order = append(t.order, id)
	return nil
}

// replace devuelve false si id no existe.
func (t *table[T]) replace(id string, v T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byID[id]; !exists {
		return false
	}
	t.byID[id] = t.clone(v)
	return true
}

// replaceAndInsert reemplaza id e inserta newID bajo el mismo lock: se aplican
// los dos o ninguno.
func (t *table[T]) replaceAndInsert(id string, v T, newID string, nv T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byID[id]; !exists {
		return errNotFound
	}
	if strings.TrimSpace(newID) == "" {
		return errIDRequired
	}
	if _, exists := t.byID[newID]; exists {
		return errAlreadyExists
	}
	t.byID[id] = t.clone(v)
	t.byID[newID] = t.clone(nv)
	t.order = append(t.order, newID)
	return nil
}

func (t *table[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	v, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.clone(v), true
}

// list devuelve en orden de inserción los valores que pasan keep (nil = todos).
func (t *table[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		v := t.byID[id]
		if keep != nil && !keep(v) {
			continue
		}
		out = append(out, t.clone(v))
	}
	return out
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, id := range t.order {
		if v := t.byID[id]; match(v) {
			return t.clone(v), true
		}
	}
	var zero T
	return zero, false
}
