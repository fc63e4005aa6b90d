// Package projection builds local views from observed participant changes.
// It does not emit events or touch rendering.
package projection

import (
	"collab-lab/domain"
	"context"
	"slices"
	"sync"
)

const defaultTimelineCapacity = 512

// Timeline keeps the most recent changes of a room in arrival order.
// Once full, the oldest entries are dropped first.
type Timeline struct {
	mu       sync.RWMutex
	capacity int
	changes  []domain.Change
}

func NewTimeline(capacity int) *Timeline {
	if capacity <= 0 {
		capacity = defaultTimelineCapacity
	}
	return &Timeline{capacity: capacity}
}

func (t *Timeline) Consume(_ context.Context, change domain.Change) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.changes) == t.capacity {
		t.changes = slices.Delete(t.changes, 0, 1)
	}
	t.changes = append(t.changes, change)
	return nil
}

// Changes returns a copy of the retained changes, oldest first.
func (t *Timeline) Changes() []domain.Change {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.changes)
}

// Last returns the n most recent changes, oldest first.
func (t *Timeline) Last(n int) []domain.Change {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	if n > len(t.changes) {
		n = len(t.changes)
	}
	return slices.Clone(t.changes[len(t.changes)-n:])
}

func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.changes)
}
