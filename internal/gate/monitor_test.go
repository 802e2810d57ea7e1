package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/logging"
)

func tapFlow() []ExpectedAction {
	return []ExpectedAction{
		MustExpectedAction(Spec{Type: Gesture, Value: "tap"}),
		MustExpectedAction(Spec{Type: Gesture, Value: "swipeUp1", ShouldPropagate: true}),
	}
}

func TestMonitorPassesInputWithoutFlow(t *testing.T) {
	m := NewMonitor(logging.Nop())

	assert.Nil(t, m.Active())
	assert.True(t, m.OnGesture("tap"))
	assert.True(t, m.OnBraille("dots"))
	assert.True(t, m.OnKeySequence(space()))
	assert.False(t, m.CloseFlow())
}

func TestMonitorSingleSlot(t *testing.T) {
	m := NewMonitor(logging.Nop())

	q, err := m.Create(tapFlow(), Hooks{})
	require.NoError(t, err)
	assert.Same(t, q, m.Active())

	_, err = m.Create(tapFlow(), Hooks{})
	assert.ErrorIs(t, err, ErrQueueActive)

	m.Destroy()
	assert.Nil(t, m.Active())

	_, err = m.Create(tapFlow(), Hooks{})
	assert.NoError(t, err)
}

func TestMonitorGatesInput(t *testing.T) {
	m := NewMonitor(logging.Nop())
	completed := 0
	_, err := m.Create(tapFlow(), Hooks{Complete: func() { completed++ }})
	require.NoError(t, err)

	assert.False(t, m.OnGesture("swipeUp1"), "mismatch is blocked")
	assert.False(t, m.OnGesture("tap"), "match without propagate is blocked")
	assert.True(t, m.OnGesture("swipeUp1"), "match with propagate passes")

	assert.Equal(t, 1, completed)
	assert.Nil(t, m.Active())
	assert.True(t, m.OnGesture("tap"))
}

func TestMonitorCloseFlow(t *testing.T) {
	m := NewMonitor(logging.Nop())
	closed := 0
	_, err := m.Create(tapFlow(), Hooks{Close: func() { closed++ }})
	require.NoError(t, err)

	assert.False(t, m.OnKeySequence(key.CloseSequence()))
	assert.Nil(t, m.Active())
	assert.Equal(t, 1, closed)

	_, err = m.Create(tapFlow(), Hooks{Close: func() { closed++ }})
	require.NoError(t, err)
	assert.True(t, m.CloseFlow())
	assert.Nil(t, m.Active())
	assert.Equal(t, 2, closed)
}

func TestMonitorCreateValidates(t *testing.T) {
	m := NewMonitor(nil)
	_, err := m.Create(nil, Hooks{})
	assert.ErrorIs(t, err, ErrEmptyQueue)
	assert.Nil(t, m.Active())
}
