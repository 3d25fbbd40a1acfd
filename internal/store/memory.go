package store

import (
	"context"
	"sync"

	"github.com/f3rmion/plab/internal/lab"
)

// Memory keeps the snapshot in process. Saved snapshots are copied through
// their JSON encoding so later changes by the caller are not visible.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (lab.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return lab.Snapshot{}, ErrNotFound
	}
	return lab.DecodeSnapshot(m.data)
}

func (m *Memory) Save(ctx context.Context, snap lab.Snapshot) error {
	data, err := persisted(snap).Encode()
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func (m *Memory) Close() error {
	return nil
}
