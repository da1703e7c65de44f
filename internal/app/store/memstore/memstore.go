// internal/app/store/memstore/memstore.go
//
// Package memstore is the shared in-memory collection behind every entity
// store. A Collection keeps records in insertion order, hands out copies so
// callers never alias stored state, and runs the latency hook once per call
// before touching the data.
//
// Concurrent updates to the same record are applied in the order their
// calls finish waiting; the later one wins.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/dalemusser/academyhub/internal/app/store/storeerr"
	"github.com/dalemusser/academyhub/internal/app/system/latency"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection holds the canonical records of one entity type.
type Collection[T any] struct {
	mu     sync.RWMutex
	entity string
	rows   []T
	index  map[primitive.ObjectID]int

	idOf  func(T) primitive.ObjectID
	clone func(T) T
	delay latency.Hook
}

// New creates an empty collection. entity names the record type in errors
// (e.g. "demo"). clone must deep-copy any slices, maps or pointers in T.
func New[T any](entity string, idOf func(T) primitive.ObjectID, clone func(T) T, delay latency.Hook) *Collection[T] {
	if delay == nil {
		delay = latency.None()
	}
	return &Collection[T]{
		entity: entity,
		index:  make(map[primitive.ObjectID]int),
		idOf:   idOf,
		clone:  clone,
		delay:  delay,
	}
}

// Entity returns the entity label used in errors.
func (c *Collection[T]) Entity() string { return c.entity }

// Insert appends rec. The identity must already be assigned.
func (c *Collection[T]) Insert(ctx context.Context, rec T) (T, error) {
	c.delay.Wait(ctx)

	id := c.idOf(rec)
	if id.IsZero() {
		var zero T
		return zero, storeerr.Invalidf(c.entity, "create", "identity not assigned")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.index[id]; exists {
		var zero T
		return zero, fmt.Errorf("%s create: identity %s already in use", c.entity, id.Hex())
	}
	c.index[id] = len(c.rows)
	c.rows = append(c.rows, c.clone(rec))
	return c.clone(rec), nil
}

// All returns every record in insertion order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	c.delay.Wait(ctx)
	return c.Snapshot(), nil
}

// Snapshot copies the collection without simulated latency. It is for
// callers already inside a store operation.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.rows))
	for i, r := range c.rows {
		out[i] = c.clone(r)
	}
	return out
}

// Get returns the record with the given identity.
func (c *Collection[T]) Get(ctx context.Context, id primitive.ObjectID) (T, error) {
	c.delay.Wait(ctx)
	rec, ok := c.Peek(id)
	if !ok {
		var zero T
		return zero, storeerr.NotFound(c.entity, id.Hex(), "get")
	}
	return rec, nil
}

// Peek looks up a record without simulated latency.
func (c *Collection[T]) Peek(id primitive.ObjectID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.clone(c.rows[i]), true
}

// GetMany resolves several identities with a single simulated round trip.
// Found records come back in the order of ids; identities that do not
// resolve are returned in missing.
func (c *Collection[T]) GetMany(ctx context.Context, ids []primitive.ObjectID) (found []T, missing []primitive.ObjectID) {
	c.delay.Wait(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	found = make([]T, 0, len(ids))
	for _, id := range ids {
		i, ok := c.index[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		found = append(found, c.clone(c.rows[i]))
	}
	return found, missing
}

// Update applies fn to a copy of the current record and stores the result.
// If fn returns an error the stored record is left unchanged. fn runs under
// the collection's write lock, so the read-check-write is atomic with
// respect to other calls on this collection.
func (c *Collection[T]) Update(ctx context.Context, id primitive.ObjectID, op string, fn func(cur T) (T, error)) (T, error) {
	c.delay.Wait(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, storeerr.NotFound(c.entity, id.Hex(), op)
	}
	next, err := fn(c.clone(c.rows[i]))
	if err != nil {
		var zero T
		return zero, err
	}
	if c.idOf(next) != id {
		var zero T
		return zero, storeerr.Invalidf(c.entity, op, "identity cannot change")
	}
	c.rows[i] = c.clone(next)
	return c.clone(next), nil
}

// Delete removes the record with the given identity.
func (c *Collection[T]) Delete(ctx context.Context, id primitive.ObjectID) error {
	c.delay.Wait(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return storeerr.NotFound(c.entity, id.Hex(), "delete")
	}
	c.rows = append(c.rows[:i], c.rows[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.rows); j++ {
		c.index[c.idOf(c.rows[j])] = j
	}
	return nil
}

// Len returns the number of stored records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rows)
}
