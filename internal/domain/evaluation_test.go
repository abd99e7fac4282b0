package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatusForProgress verifies the status state machine is a pure
// function of progress with no terminal state.
func TestStatusForProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		want     EvaluationStatus
	}{
		{name: "zero progress is not started", progress: 0, want: StatusNotStarted},
		{name: "one percent is in progress", progress: 1, want: StatusInProgress},
		{name: "ninety nine percent is in progress", progress: 99, want: StatusInProgress},
		{name: "one hundred percent is completed", progress: 100, want: StatusCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForProgress(tt.progress))
		})
	}
}

// TestNextCompletedAt verifies the set-once / clear-on-regression
// policy for the completion timestamp.
func TestNextCompletedAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	earlier := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)

	t.Run("sets timestamp when progress first reaches one hundred", func(t *testing.T) {
		got := NextCompletedAt(nil, 100, now)
		require.NotNil(t, got)
		assert.Equal(t, now, *got)
	})

	t.Run("preserves the original timestamp on later completed runs", func(t *testing.T) {
		got := NextCompletedAt(&earlier, 100, now)
		require.NotNil(t, got)
		assert.Equal(t, earlier, *got)
	})

	t.Run("clears timestamp when progress drops below one hundred", func(t *testing.T) {
		assert.Nil(t, NextCompletedAt(&earlier, 99, now))
	})

	t.Run("stays nil while incomplete", func(t *testing.T) {
		assert.Nil(t, NextCompletedAt(nil, 40, now))
	})
}
