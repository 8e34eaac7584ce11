package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	apperrors "aquaflow/internal/errors"
)

type Record interface {
	Key() string
}

type Option[T Record] func(*Collection[T])

// WithClone sets the deep-copy function applied to every record crossing the
// collection boundary. Records holding slices or pointers need one.
func WithClone[T Record](fn func(T) T) Option[T] {
	return func(c *Collection[T]) {
		c.clone = fn
	}
}

// Collection owns the in-memory copy of one entity collection and mirrors
// every mutation to its Slot. Mutations are serialized; a mutation whose save
// fails leaves the in-memory state untouched, except after a revision
// conflict, when the collection adopts what the slot holds so the next
// mutation applies on top of the other writer's data.
type Collection[T Record] struct {
	mu       sync.Mutex
	key      string
	slot     Slot
	defaults []T
	items    []T
	revision int64
	clone    func(T) T
	logger   *zap.Logger
}

func NewCollection[T Record](key string, slot Slot, defaults []T, logger *zap.Logger, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		key:      key,
		slot:     slot,
		defaults: defaults,
		clone:    func(v T) T { return v },
		logger:   logger.With(zap.String("collection", key)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the in-memory state with what the slot holds now.
func (c *Collection[T]) Load(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, revision := Load(ctx, c.slot, c.key, c.defaults, c.logger)
	c.items = c.cloneAll(items)
	c.revision = revision
	c.logger.Debug("collection loaded", zap.Int("count", len(c.items)), zap.Int64("revision", revision))
}

func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cloneAll(c.items)
}

func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.Key() == id {
			return c.clone(item), true
		}
	}
	var zero T
	return zero, false
}

// Filter returns matching records in insertion order.
func (c *Collection[T]) Filter(match func(T) bool) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []T{}
	for _, item := range c.items {
		if match(item) {
			out = append(out, c.clone(item))
		}
	}
	return out
}

func (c *Collection[T]) Add(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, len(c.items), len(c.items)+1)
	copy(next, c.items)
	next = append(next, c.clone(item))

	if err := c.commit(ctx, next); err != nil {
		var zero T
		return zero, err
	}
	return c.clone(item), nil
}

// Update applies mutate to the record with id. An unknown id is a silent
// no-op reported through found=false. When mutate returns an error nothing is
// saved and the error is returned as is.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(*T) error) (updated T, found bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return updated, false, nil
	}

	next := make([]T, len(c.items))
	copy(next, c.items)
	record := c.clone(next[idx])
	if err := mutate(&record); err != nil {
		return updated, true, err
	}
	next[idx] = record

	if err := c.commit(ctx, next); err != nil {
		return updated, true, err
	}
	return c.clone(record), true, nil
}

// UpdateWhere applies mutate to every matching record in one save and
// returns the updated records in insertion order.
func (c *Collection[T]) UpdateWhere(ctx context.Context, match func(T) bool, mutate func(*T)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, len(c.items))
	copy(next, c.items)
	var touched []int
	for i := range next {
		if !match(next[i]) {
			continue
		}
		record := c.clone(next[i])
		mutate(&record)
		next[i] = record
		touched = append(touched, i)
	}
	if len(touched) == 0 {
		return []T{}, nil
	}

	if err := c.commit(ctx, next); err != nil {
		return nil, err
	}

	out := make([]T, len(touched))
	for i, idx := range touched {
		out[i] = c.clone(next[idx])
	}
	return out, nil
}

// Remove filters id out of the collection. Removing an unknown id is a no-op.
func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if item.Key() != id {
			next = append(next, item)
		}
	}
	if len(next) == len(c.items) {
		return false, nil
	}

	if err := c.commit(ctx, next); err != nil {
		return true, err
	}
	return true, nil
}

func (c *Collection[T]) commit(ctx context.Context, next []T) error {
	revision, err := Save(ctx, c.slot, c.key, next, c.revision)
	if err != nil {
		c.logger.Error("saving collection failed", zap.Int64("revision", c.revision), zap.Error(err))
		if _, ok := apperrors.IsConflictError(err); ok {
			c.refresh(ctx)
		}
		return err
	}
	c.items = next
	c.revision = revision
	return nil
}

// refresh reloads the slot after a conflict. A failed read keeps the current
// state. An undecodable payload keeps the items but adopts the revision, so
// the next save replaces it.
func (c *Collection[T]) refresh(ctx context.Context) {
	payload, revision, err := c.slot.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			c.logger.Warn("reloading collection after conflict failed", zap.Error(err))
		}
		return
	}

	items, err := decode[T](payload)
	if err != nil {
		c.logger.Warn("stored collection unreadable, keeping local copy", zap.Int64("revision", revision), zap.Error(err))
		c.revision = revision
		return
	}

	c.items = c.cloneAll(items)
	c.revision = revision
	c.logger.Info("collection reloaded after conflict", zap.Int("count", len(items)), zap.Int64("revision", revision))
}

func (c *Collection[T]) indexOf(id string) int {
	for i, item := range c.items {
		if item.Key() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) cloneAll(items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = c.clone(item)
	}
	return out
}
