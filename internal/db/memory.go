package db

import (
	"context"
	"sync"
)

type memorySlot struct {
	value    []byte
	revision int64
}

// MemorySlots keeps slots in process memory. It backs tests and DB_DRIVER=memory.
type MemorySlots struct {
	mu    sync.Mutex
	slots map[string]memorySlot
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string]memorySlot)}
}

func (m *MemorySlots) Get(ctx context.Context, key string) ([]byte, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[key]
	if !ok {
		return nil, 0, ErrSlotNotFound
	}
	return append([]byte(nil), s.value...), s.revision, nil
}

func (m *MemorySlots) Put(ctx context.Context, key string, value []byte, expectRev int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.slots[key] // zero revision when absent
	if current.revision != expectRev {
		return 0, ErrConflict
	}
	next := memorySlot{value: append([]byte(nil), value...), revision: expectRev + 1}
	m.slots[key] = next
	return next.revision, nil
}

// Raw replaces a slot's bytes without a revision check. Tests use it to plant
// corrupt data.
func (m *MemorySlots) Raw(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.slots[key]
	m.slots[key] = memorySlot{value: append([]byte(nil), value...), revision: s.revision + 1}
}
