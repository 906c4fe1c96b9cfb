package memstore

import (
	"reflect"
	"sort"
	"time"
)

// table holds the rows of one entity type keyed by primary key.
type table[T any] struct {
	rows   map[uint]T
	nextID uint
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[uint]T)}
}

func (t table[T]) clone() table[T] {
	rows := make(map[uint]T, len(t.rows))
	for id, v := range t.rows {
		rows[id] = v
	}
	return table[T]{rows: rows, nextID: t.nextID}
}

func (t *table[T]) insert(v *T, now time.Time) {
	id := idOf(v)
	if id == 0 {
		t.nextID++
		id = t.nextID
		setField(v, "ID", id)
	} else if id > t.nextID {
		t.nextID = id
	}
	stamp(v, "CreatedAt", now, true)
	stamp(v, "UpdatedAt", now, false)
	t.rows[id] = *v
}

// sorted returns the rows accepted by keep in primary key order.
func (t *table[T]) sorted(keep func(*T) bool) []T {
	ids := make([]uint, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		v := t.rows[id]
		if keep == nil || keep(&v) {
			out = append(out, v)
		}
	}
	return out
}

func idOf(v any) uint {
	f := reflect.ValueOf(v).Elem().FieldByName("ID")
	if !f.IsValid() {
		return 0
	}
	return uint(f.Uint())
}

func setField(v any, name string, id uint) {
	f := reflect.ValueOf(v).Elem().FieldByName(name)
	if f.IsValid() && f.CanSet() {
		f.SetUint(uint64(id))
	}
}

// stamp sets a time.Time field to now; onlyIfZero keeps an existing value.
func stamp(v any, name string, now time.Time, onlyIfZero bool) {
	f := reflect.ValueOf(v).Elem().FieldByName(name)
	if !f.IsValid() || !f.CanSet() || f.Type() != reflect.TypeOf(time.Time{}) {
		return
	}
	if onlyIfZero && !f.Interface().(time.Time).IsZero() {
		return
	}
	f.Set(reflect.ValueOf(now))
}
