// Package store persists exported games.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound is returned when no snapshot exists for a game id.
var ErrNotFound = errors.New("snapshot not found")

// Memory keeps snapshots in a map. It is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{snapshots: make(map[string][]byte)}
}

// SaveSnapshot stores a copy of data under gameID, replacing any older one.
func (m *Memory) SaveSnapshot(_ context.Context, gameID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[gameID] = append([]byte(nil), data...)
	return nil
}

// LoadSnapshot returns a copy of the snapshot stored under gameID.
func (m *Memory) LoadSnapshot(_ context.Context, gameID string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, gameID)
	}
	return append([]byte(nil), data...), nil
}

// DeleteSnapshot removes a snapshot. Deleting a missing id is not an error.
func (m *Memory) DeleteSnapshot(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.snapshots, gameID)
	return nil
}

// IDs lists the stored game ids in sorted order.
func (m *Memory) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.snapshots))
	for id := range m.snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
