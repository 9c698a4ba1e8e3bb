// Package state provides a small observable value container.
//
// A Store holds one value and a registry of (selector, callback) pairs.
// Writes recompute each subscriber's selected projection from the old and
// new value and invoke the callback only when the projection changed, so
// subscribers watching an unaffected slice are never notified.
//
// The store is pure memory and never the source of truth; the Sentinel API
// is. The session layer repopulates it after every cold start.
package state

import (
	"reflect"
	"sync"
)

// Store holds a single value of type T with change notification.
type Store[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]subscription[T]
	nextID int
}

type subscription[T any] struct {
	selector func(T) any
	onChange func(any)
}

// New creates a Store seeded with the given initial value.
func New[T any](initial T) *Store[T] {
	return &Store[T]{
		value: initial,
		subs:  make(map[int]subscription[T]),
	}
}

// Read returns the current value. It never blocks on I/O.
func (s *Store[T]) Read() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Write replaces the stored value and notifies affected subscribers.
func (s *Store[T]) Write(next T) {
	s.Update(func(T) T { return next })
}

// Update replaces the stored value via a function of the previous value.
// Each subscriber's projection is computed from the old and new full value;
// the callback runs only when the projected slice changed structurally.
// Callbacks are invoked outside the lock so they may read or resubscribe.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	old := s.value
	next := fn(old)
	s.value = next

	var pending []func()
	for _, sub := range s.subs {
		before := sub.selector(old)
		after := sub.selector(next)
		if !reflect.DeepEqual(before, after) {
			cb := sub.onChange
			pending = append(pending, func() { cb(after) })
		}
	}
	s.mu.Unlock()

	for _, notify := range pending {
		notify()
	}
}

// Subscribe registers interest in a projection of the store. The returned
// function removes the subscription and must be called when the observer
// goes away, or the listener leaks.
func (s *Store[T]) Subscribe(selector func(T) any, onChange func(any)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = subscription[T]{selector: selector, onChange: onChange}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
