package memstore

import (
	"context"

	"transport_manager/internal/repository"
)

type memRepo[T any] struct {
	db  *memDB
	tbl func(*state) *table[T]
}

func newMemRepo[T any](db *memDB, tbl func(*state) *table[T]) *memRepo[T] {
	return &memRepo[T]{db: db, tbl: tbl}
}

// with runs fn on the table, holding the store lock unless the caller is
// already inside a transaction.
func (r *memRepo[T]) with(fn func(t *table[T]) error) error {
	if !r.db.inTx {
		r.db.mu.Lock()
		defer r.db.mu.Unlock()
	}
	return fn(r.tbl(r.db.st))
}

func (r *memRepo[T]) Create(ctx context.Context, v *T) error {
	return r.with(func(t *table[T]) error {
		t.insert(v, r.db.now())
		return nil
	})
}

func (r *memRepo[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var out *T
	err := r.with(func(t *table[T]) error {
		v, ok := t.rows[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = &v
		return nil
	})
	return out, err
}

// GetForUpdate needs no row lock: transactions already run one at a time.
func (r *memRepo[T]) GetForUpdate(ctx context.Context, id uint) (*T, error) {
	return r.GetByID(ctx, id)
}

func (r *memRepo[T]) Update(ctx context.Context, v *T) error {
	return r.with(func(t *table[T]) error {
		id := idOf(v)
		if _, ok := t.rows[id]; !ok {
			return repository.ErrNotFound
		}
		stamp(v, "UpdatedAt", r.db.now(), false)
		t.rows[id] = *v
		return nil
	})
}

func (r *memRepo[T]) Delete(ctx context.Context, id uint) error {
	return r.with(func(t *table[T]) error {
		if _, ok := t.rows[id]; !ok {
			return repository.ErrNotFound
		}
		delete(t.rows, id)
		return nil
	})
}

func (r *memRepo[T]) GetAll(ctx context.Context) ([]T, error) {
	return r.where(nil)
}

func (r *memRepo[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var ok bool
	err := r.with(func(t *table[T]) error {
		_, ok = t.rows[id]
		return nil
	})
	return ok, err
}

func (r *memRepo[T]) where(keep func(*T) bool) ([]T, error) {
	var out []T
	err := r.with(func(t *table[T]) error {
		out = t.sorted(keep)
		return nil
	})
	return out, err
}

// first returns the lowest id row accepted by keep.
func (r *memRepo[T]) first(keep func(*T) bool) (*T, error) {
	rows, err := r.where(keep)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	return &rows[0], nil
}
