package store

import (
	"context"
	"fmt"
	"sync"

	"aquaflow/internal/errors"
)

type memoryCell struct {
	payload  []byte
	revision int64
}

// MemorySlot keeps collections in process memory. It is used by tests and by
// STORE_DRIVER=memory.
type MemorySlot struct {
	mu    sync.Mutex
	cells map[string]memoryCell
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{cells: make(map[string]memoryCell)}
}

func (s *MemorySlot) Get(ctx context.Context, key string) ([]byte, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell, ok := s.cells[key]
	if !ok {
		return nil, 0, ErrSlotEmpty
	}
	out := make([]byte, len(cell.payload))
	copy(out, cell.payload)
	return out, cell.revision, nil
}

func (s *MemorySlot) Put(ctx context.Context, key string, payload []byte, expectedRevision int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell := s.cells[key]
	if cell.revision != expectedRevision {
		return 0, errors.NewConflictError(fmt.Sprintf("collection %s changed: revision %d, expected %d", key, cell.revision, expectedRevision))
	}

	buf := make([]byte, len(payload))
	copy(buf, payload)
	s.cells[key] = memoryCell{payload: buf, revision: expectedRevision + 1}
	return expectedRevision + 1, nil
}

// Raw sets key without revision checks. Tests use it to plant corrupt data.
func (s *MemorySlot) Raw(key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cell := s.cells[key]
	s.cells[key] = memoryCell{payload: payload, revision: cell.revision + 1}
}
