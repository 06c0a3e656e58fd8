// Package dedup is the collaborator boundary for duplicate detection: a
// registry of canonical ids already seen. The engine itself only does exact
// id matching; where the ids live is this package's concern.
package dedup

import (
	"context"
	"sync"
)

// Registry records canonical ids and answers membership queries.
type Registry interface {
	Seen(ctx context.Context, canonicalID string) (bool, error)
	Add(ctx context.Context, canonicalID string) error
}

// Memory is the in-process Registry used by default. Safe for concurrent use.
type Memory struct {
	mu  sync.RWMutex
	ids map[string]bool
}

// NewMemory creates an empty in-memory registry, optionally seeded.
func NewMemory(seed ...string) *Memory {
	ids := make(map[string]bool, len(seed))
	for _, id := range seed {
		if id != "" {
			ids[id] = true
		}
	}
	return &Memory{ids: ids}
}

// Seen reports whether the canonical id was recorded before.
func (m *Memory) Seen(_ context.Context, canonicalID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ids[canonicalID], nil
}

// Add records a canonical id.
func (m *Memory) Add(_ context.Context, canonicalID string) error {
	if canonicalID == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[canonicalID] = true
	return nil
}

// Known returns a snapshot of every recorded id.
func (m *Memory) Known() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.ids))
	for id := range m.ids {
		ids = append(ids, id)
	}
	return ids
}
