package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCutoffs(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	completed, failed := cutoffs(now, Options{CompletedRetentionDays: 30, FailedRetentionDays: 90})

	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), completed)
	assert.Equal(t, time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC), failed)
}

func TestDays(t *testing.T) {
	assert.Equal(t, 30, days(30*24*time.Hour))
	assert.Equal(t, 0, days(time.Hour))
}
