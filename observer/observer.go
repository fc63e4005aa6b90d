// Package observer provides the observer list owned by each emitting component.
// Dispatch is synchronous, in registration order, and observers are removed by
// the cancel function returned when they were added.
package observer

import "sync"

type entry[T any] struct {
	id int
	fn func(T)
}

// List is safe for concurrent use. Notify iterates over a copy, so an observer
// may cancel itself (or add another one) while being notified.
type List[T any] struct {
	mu      sync.Mutex
	nextID  int
	entries []entry[T]
}

func NewList[T any]() *List[T] {
	return &List[T]{}
}

// Add registers fn and returns its cancel function. Calling cancel more than once is a no-op.
func (l *List[T]) Add(fn func(T)) (cancel func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, entry[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *List[T]) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, e := range l.entries {
		if e.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return
		}
	}
}

// Notify calls every observer with v.
func (l *List[T]) Notify(v T) {
	l.mu.Lock()
	snapshot := make([]entry[T], len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	for _, e := range snapshot {
		e.fn(v)
	}
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear drops every observer.
func (l *List[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
