package store

import (
	"context"
	"sync"
)

// Slot is a single key-value cell holding the whole serialized card collection.
// An empty payload means the key is absent.
type Slot interface {
	// Read returns the current payload, "" when nothing is stored.
	Read(ctx context.Context) (string, error)

	// Update runs fn against the current payload and stores what it returns,
	// atomically with respect to other Update calls on the same key.
	// Returning "" from fn deletes the key.
	Update(ctx context.Context, fn func(current string) (string, error)) error

	// Delete removes the key entirely.
	Delete(ctx context.Context) error

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error

	// Name identifies the backend in logs and /infra.
	Name() string

	Close() error
}

// MemorySlot keeps the payload in process memory.
type MemorySlot struct {
	mu      sync.Mutex
	payload string
}

// NewMemorySlot returns an empty in-memory slot, optionally pre-filled.
func NewMemorySlot(initial string) *MemorySlot {
	return &MemorySlot{payload: initial}
}

func (m *MemorySlot) Read(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload, nil
}

func (m *MemorySlot) Update(ctx context.Context, fn func(string) (string, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(m.payload)
	if err != nil {
		return err
	}
	m.payload = next
	return nil
}

func (m *MemorySlot) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = ""
	return nil
}

func (m *MemorySlot) Ping(ctx context.Context) error { return nil }

func (m *MemorySlot) Name() string { return "memory" }

func (m *MemorySlot) Close() error { return nil }
