package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrSlotEmpty is returned by a Slot when nothing was ever written to key.
var ErrSlotEmpty = errors.New("slot is empty")

var errNotArray = errors.New("stored collection is not a JSON array")

// Slot is a durable key-value cell holding one JSON-encoded collection.
// Every Put carries the revision the writer last observed; implementations
// must reject the write with a ConflictError when the stored revision moved.
type Slot interface {
	Get(ctx context.Context, key string) (payload []byte, revision int64, err error)
	Put(ctx context.Context, key string, payload []byte, expectedRevision int64) (int64, error)
}

// Load reads the collection stored under key. It never fails: a missing key,
// a read error, malformed JSON or a non-array value all yield a copy of
// defaults. The returned revision is the one to pass to the next Save.
func Load[T any](ctx context.Context, slot Slot, key string, defaults []T, logger *zap.Logger) ([]T, int64) {
	payload, revision, err := slot.Get(ctx, key)
	if errors.Is(err, ErrSlotEmpty) {
		return copyOf(defaults), 0
	}
	if err != nil {
		logger.Warn("reading collection failed, using defaults", zap.String("key", key), zap.Error(err))
		return copyOf(defaults), 0
	}

	items, err := decode[T](payload)
	if err != nil {
		logger.Warn("decoding collection failed, using defaults", zap.String("key", key), zap.Error(err))
		return copyOf(defaults), revision
	}

	return items, revision
}

// decode parses a stored collection. Anything but a JSON array is an error.
func decode[T any](payload []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errNotArray
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save overwrites key with the full collection.
func Save[T any](ctx context.Context, slot Slot, key string, items []T, expectedRevision int64) (int64, error) {
	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		return expectedRevision, fmt.Errorf("encoding collection %s: %w", key, err)
	}

	revision, err := slot.Put(ctx, key, payload, expectedRevision)
	if err != nil {
		return expectedRevision, fmt.Errorf("writing collection %s: %w", key, err)
	}

	return revision, nil
}

func copyOf[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
