package tessera

import (
	"github.com/tessera-engine/tessera/types"
)

// Queries are computed views over one or more component stores, joined on
// entity id: an entity is yielded only when it is present in every requested
// store. Iteration pivots on the smallest requested store and
// membership-checks the others, so callers should list components in
// ascending expected cardinality for multi-component joins.
//
// A Query takes the shared side of each store's access guard for the duration
// of a single Each/Count/First call; a QueryMut takes the exclusive side and
// yields pointers for in-place mutation. Only one QueryMut, or any number of
// Query, may be live against a store at one instant -- a conflicting
// acquisition panics (see accessGuard). Iteration order is the pivot store's
// dense insertion order: deterministic per call, but not guaranteed across
// structural mutations.

// Query is a read-only view over entities that have component A.
type Query[A types.Component] struct {
	w *World
}

func NewQuery[A types.Component](w *World) *Query[A] {
	return &Query[A]{w: w}
}

// Each calls fn for every matching entity. Return false from fn to stop
// early.
func (q *Query[A]) Each(fn func(types.EntityID, A) bool) {
	sa := mustStoreFor[A](q.w)
	sa.access.acquireRead(sa.name)
	defer sa.access.releaseRead()

	for i, id := range sa.dense {
		if !fn(id, sa.values[i]) {
			return
		}
	}
}

func (q *Query[A]) Count() int {
	return mustStoreFor[A](q.w).Len()
}

func (q *Query[A]) First() (types.EntityID, A, bool) {
	sa := mustStoreFor[A](q.w)
	sa.access.acquireRead(sa.name)
	defer sa.access.releaseRead()

	if len(sa.dense) == 0 {
		var zero A
		return types.BadEntityID, zero, false
	}
	return sa.dense[0], sa.values[0], true
}

// QueryMut is the exclusive-write counterpart of Query.
type QueryMut[A types.Component] struct {
	w *World
}

func NewQueryMut[A types.Component](w *World) *QueryMut[A] {
	return &QueryMut[A]{w: w}
}

// Each calls fn with a pointer into the store. The pointer is only valid for
// the duration of the callback.
func (q *QueryMut[A]) Each(fn func(types.EntityID, *A) bool) {
	sa := mustStoreFor[A](q.w)
	sa.access.acquireWrite(sa.name)
	defer sa.access.releaseWrite()

	for i, id := range sa.dense {
		if !fn(id, &sa.values[i]) {
			return
		}
	}
}

// Query2 is a read-only inner join over components A and B.
type Query2[A, B types.Component] struct {
	w *World
}

func NewQuery2[A, B types.Component](w *World) *Query2[A, B] {
	return &Query2[A, B]{w: w}
}

func (q *Query2[A, B]) Each(fn func(types.EntityID, A, B) bool) {
	sa := mustStoreFor[A](q.w)
	sb := mustStoreFor[B](q.w)
	sa.access.acquireRead(sa.name)
	defer sa.access.releaseRead()
	sb.access.acquireRead(sb.name)
	defer sb.access.releaseRead()

	if sa.Len() <= sb.Len() {
		for i, id := range sa.dense {
			j, ok := sb.sparse[id]
			if !ok {
				continue
			}
			if !fn(id, sa.values[i], sb.values[j]) {
				return
			}
		}
		return
	}
	for j, id := range sb.dense {
		i, ok := sa.sparse[id]
		if !ok {
			continue
		}
		if !fn(id, sa.values[i], sb.values[j]) {
			return
		}
	}
}

func (q *Query2[A, B]) Count() int {
	n := 0
	q.Each(func(types.EntityID, A, B) bool {
		n++
		return true
	})
	return n
}

func (q *Query2[A, B]) First() (id types.EntityID, a A, b B, ok bool) {
	q.Each(func(eid types.EntityID, ca A, cb B) bool {
		id, a, b, ok = eid, ca, cb, true
		return false
	})
	if !ok {
		id = types.BadEntityID
	}
	return id, a, b, ok
}

// QueryMut2 is the exclusive-write counterpart of Query2. Both stores are
// held exclusively for the duration of each call.
type QueryMut2[A, B types.Component] struct {
	w *World
}

func NewQueryMut2[A, B types.Component](w *World) *QueryMut2[A, B] {
	return &QueryMut2[A, B]{w: w}
}

func (q *QueryMut2[A, B]) Each(fn func(types.EntityID, *A, *B) bool) {
	sa := mustStoreFor[A](q.w)
	sb := mustStoreFor[B](q.w)
	sa.access.acquireWrite(sa.name)
	defer sa.access.releaseWrite()
	sb.access.acquireWrite(sb.name)
	defer sb.access.releaseWrite()

	if sa.Len() <= sb.Len() {
		for i, id := range sa.dense {
			j, ok := sb.sparse[id]
			if !ok {
				continue
			}
			if !fn(id, &sa.values[i], &sb.values[j]) {
				return
			}
		}
		return
	}
	for j, id := range sb.dense {
		i, ok := sa.sparse[id]
		if !ok {
			continue
		}
		if !fn(id, &sa.values[i], &sb.values[j]) {
			return
		}
	}
}

// Query3 is a read-only inner join over components A, B and C.
type Query3[A, B, C types.Component] struct {
	w *World
}

func NewQuery3[A, B, C types.Component](w *World) *Query3[A, B, C] {
	return &Query3[A, B, C]{w: w}
}

func (q *Query3[A, B, C]) Each(fn func(types.EntityID, A, B, C) bool) {
	sa := mustStoreFor[A](q.w)
	sb := mustStoreFor[B](q.w)
	sc := mustStoreFor[C](q.w)
	sa.access.acquireRead(sa.name)
	defer sa.access.releaseRead()
	sb.access.acquireRead(sb.name)
	defer sb.access.releaseRead()
	sc.access.acquireRead(sc.name)
	defer sc.access.releaseRead()

	pivot := pivotOf(sa.Len(), sb.Len(), sc.Len())
	switch pivot {
	case 0:
		for i, id := range sa.dense {
			j, ok := sb.sparse[id]
			if !ok {
				continue
			}
			k, ok := sc.sparse[id]
			if !ok {
				continue
			}
			if !fn(id, sa.values[i], sb.values[j], sc.values[k]) {
				return
			}
		}
	case 1:
		for j, id := range sb.dense {
			i, ok := sa.sparse[id]
			if !ok {
				continue
			}
			k, ok := sc.sparse[id]
			if !ok {
				continue
			}
			if !fn(id, sa.values[i], sb.values[j], sc.values[k]) {
				return
			}
		}
	default:
		for k, id := range sc.dense {
			i, ok := sa.sparse[id]
			if !ok {
				continue
			}
			j, ok := sb.sparse[id]
			if !ok {
				continue
			}
			if !fn(id, sa.values[i], sb.values[j], sc.values[k]) {
				return
			}
		}
	}
}

func (q *Query3[A, B, C]) Count() int {
	n := 0
	q.Each(func(types.EntityID, A, B, C) bool {
		n++
		return true
	})
	return n
}

func pivotOf(a, b, c int) int {
	if a <= b && a <= c {
		return 0
	}
	if b <= c {
		return 1
	}
	return 2
}
