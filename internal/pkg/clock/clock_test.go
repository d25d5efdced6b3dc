package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMockClock(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	c := NewMockClock(start)
	assert.Equal(t, start, c.Now())

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	c.Set(start)
	assert.Equal(t, start, c.Now())
}

func TestRealClock_IsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewRealClock().Now().Location())
}
