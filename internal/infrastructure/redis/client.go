package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "aquaflow/internal/errors"
	"aquaflow/internal/store"
)

const (
	fieldPayload  = "payload"
	fieldRevision = "revision"
)

func Initialize(ctx context.Context, redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// Slot keeps each collection in a hash "collection:<key>" with the JSON
// payload and its revision. Writes run under WATCH so concurrent writers
// cannot both succeed from the same revision.
type Slot struct {
	rdb *redis.Client
}

func NewSlot(rdb *redis.Client) *Slot {
	return &Slot{rdb: rdb}
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, int64, error) {
	vals, err := s.rdb.HGetAll(ctx, hashKey(key)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get collection %s: %w", key, err)
	}
	if len(vals) == 0 {
		return nil, 0, store.ErrSlotEmpty
	}

	revision, err := strconv.ParseInt(vals[fieldRevision], 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse revision of %s: %w", key, err)
	}

	return []byte(vals[fieldPayload]), revision, nil
}

func (s *Slot) Put(ctx context.Context, key string, payload []byte, expectedRevision int64) (int64, error) {
	hkey := hashKey(key)
	conflict := apperrors.NewConflictError(fmt.Sprintf("collection %s changed since revision %d", key, expectedRevision))

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, hkey, fieldRevision).Int64()
		if err == redis.Nil {
			current = 0
		} else if err != nil {
			return err
		}
		if current != expectedRevision {
			return conflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, hkey, fieldPayload, payload, fieldRevision, expectedRevision+1)
			return nil
		})
		return err
	}, hkey)

	if errors.Is(err, redis.TxFailedErr) {
		return 0, conflict
	}
	if err != nil {
		if _, ok := apperrors.IsConflictError(err); ok {
			return 0, err
		}
		return 0, fmt.Errorf("failed to put collection %s: %w", key, err)
	}

	return expectedRevision + 1, nil
}

func hashKey(key string) string {
	return "collection:" + key
}
