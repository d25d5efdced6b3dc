// Package store is a framework-agnostic state container.
//
// A Store owns one value of state S and the transition function that maps
// (S, action) to the next S. Callers decide when to re-render by subscribing;
// the store never reaches into any UI runtime.
package store

import (
	"slices"
	"sync"
)

// Reducer computes the next state from the current state and an action.
// Reducers must not mutate the state they receive.
type Reducer[S any, A any] func(state S, action A) S

// Listener is notified after every dispatched transition.
type Listener[S any] func(state S)

// Store is a mutex-guarded state container with subscriber callbacks.
type Store[S any, A any] struct {
	mu        sync.Mutex
	state     S
	reducer   Reducer[S, A]
	listeners map[int]Listener[S]
	nextID    int
}

// New creates a Store with the given initial state and reducer.
func New[S any, A any](initial S, reducer Reducer[S, A]) *Store[S, A] {
	return &Store[S, A]{
		state:     initial,
		reducer:   reducer,
		listeners: make(map[int]Listener[S]),
	}
}

// GetState returns the current state.
func (s *Store[S, A]) GetState() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies the action and returns the new state.
// Listeners run after the lock is released, in subscription order.
func (s *Store[S, A]) Dispatch(action A) S {
	s.mu.Lock()
	s.state = s.reducer(s.state, action)
	next := s.state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

// Replace swaps the state wholesale without running the reducer (used when
// hydrating from an external source). Listeners are notified.
func (s *Store[S, A]) Replace(state S) {
	s.mu.Lock()
	s.state = state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store[S, A]) Subscribe(l Listener[S]) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store[S, A]) snapshotListeners() []Listener[S] {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	// ids are monotonically assigned, so sorting restores subscription order
	slices.Sort(ids)

	out := make([]Listener[S], 0, len(ids))
	for _, id := range ids {
		out = append(out, s.listeners[id])
	}
	return out
}
