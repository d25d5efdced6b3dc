// Package clock abstracts the wall clock so order timestamps and retention
// cutoffs can be pinned in tests.
package clock

import (
	"sync"
	"time"
)

// Clock tells the time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// NewRealClock returns the system clock, in UTC.
func NewRealClock() Clock {
	return realClock{}
}

// MockClock is a settable clock, safe for concurrent use.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock returns a clock stopped at start.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Set moves the clock to t.
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the clock forward by d.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
