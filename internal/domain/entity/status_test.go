package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedTransitions(t *testing.T) {
	tests := []struct {
		current string
		want    []string
	}{
		{StatusPending, []string{StatusPending, StatusInProgress, StatusCancelled}},
		{StatusInProgress, []string{StatusInProgress, StatusCompleted, StatusCancelled}},
		{StatusCompleted, []string{StatusCompleted}},
		{StatusCancelled, []string{StatusCancelled}},
	}

	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedTransitions(tt.current))
		})
	}

	assert.Nil(t, AllowedTransitions("bogus"))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusInProgress))
	assert.True(t, CanTransition(StatusPending, StatusCancelled))
	assert.True(t, CanTransition(StatusInProgress, StatusCompleted))
	assert.True(t, CanTransition(StatusInProgress, StatusCancelled))

	// No backward or skipping moves.
	assert.False(t, CanTransition(StatusPending, StatusCompleted))
	assert.False(t, CanTransition(StatusInProgress, StatusPending))
	assert.False(t, CanTransition(StatusCompleted, StatusInProgress))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))

	// A no-op write is not a transition.
	assert.False(t, CanTransition(StatusPending, StatusPending))
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusCompleted))
	assert.True(t, IsTerminalStatus(StatusCancelled))
	assert.False(t, IsTerminalStatus(StatusPending))
	assert.False(t, IsTerminalStatus(StatusInProgress))
	assert.False(t, IsTerminalStatus("bogus"))
}
