package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
)

type recorder struct {
	events    []string
	completed int
	closed    int
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		Announce: func(msg string) { r.events = append(r.events, "say:"+msg) },
		Dispatch: func(cmd command.Command) bool {
			r.events = append(r.events, "cmd:"+cmd.String())
			return false
		},
		Complete: func() { r.completed++ },
		Close:    func() { r.closed++ },
	}
}

func space() *key.Sequence {
	return key.NewSequenceFrom(key.NewSpecialEvent(key.KeySpace, key.ModNone))
}

func TestScenarioSpaceThenGesture(t *testing.T) {
	rec := &recorder{}
	q, err := NewQueue([]ExpectedAction{
		MustExpectedAction(Spec{Type: KeySequence, Value: space()}),
		MustExpectedAction(Spec{Type: Gesture, Value: "swipeUp1"}),
	}, rec.hooks())
	require.NoError(t, err)

	out, err := q.OnKeySequence(space())
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, out)
	assert.Equal(t, 1, q.Index())

	out, err = q.OnGesture("swipeUp2")
	require.NoError(t, err)
	assert.Equal(t, OutcomeMismatch, out)
	assert.Equal(t, 1, q.Index())

	out, err = q.OnGesture("swipeUp1")
	require.NoError(t, err)
	assert.True(t, out.Matched())
	assert.Equal(t, 2, q.Index())
	assert.True(t, q.Done())
	assert.Equal(t, 1, rec.completed)

	_, err = q.OnGesture("swipeUp1")
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.Equal(t, 1, rec.completed)
	assert.Equal(t, 2, q.Index())
}

func TestQueueProgressCallsCompleteOnce(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	actions := make([]ExpectedAction, len(names))
	for i, n := range names {
		actions[i] = MustExpectedAction(Spec{Type: BrailleInput, Value: n})
	}
	rec := &recorder{}
	q, err := NewQueue(actions, rec.hooks())
	require.NoError(t, err)

	for i, n := range names {
		out, err := q.OnBraille("wrong")
		require.NoError(t, err)
		assert.Equal(t, OutcomeMismatch, out)
		assert.Equal(t, i, q.Index())

		out, err = q.OnBraille(n)
		require.NoError(t, err)
		assert.True(t, out.Matched())
		assert.Equal(t, i+1, q.Index())
	}
	assert.Equal(t, 1, rec.completed)
}

func TestTypeMismatchDoesNotAdvance(t *testing.T) {
	q, err := NewQueue([]ExpectedAction{
		MustExpectedAction(Spec{Type: Gesture, Value: "tap"}),
	}, Hooks{})
	require.NoError(t, err)

	out, err := q.OnBraille("tap")
	require.NoError(t, err)
	assert.Equal(t, OutcomeMismatch, out)

	out, err = q.OnKeySequence(space())
	require.NoError(t, err)
	assert.Equal(t, OutcomeMismatch, out)
	assert.Equal(t, 0, q.Index())
}

func TestMessagesAndAfterCommand(t *testing.T) {
	rec := &recorder{}
	q, err := NewQueue([]ExpectedAction{
		MustExpectedAction(Spec{
			Type:          Gesture,
			Value:         "swipeRight1",
			BeforeMessage: "Swipe right",
			AfterMessage:  "Good",
			AfterCommand:  command.NextObject,
		}),
		MustExpectedAction(Spec{Type: Gesture, Value: "tap", BeforeMessage: "Now tap", ShouldPropagate: true}),
	}, rec.hooks())
	require.NoError(t, err)
	assert.Equal(t, []string{"say:Swipe right"}, rec.events)

	out, _ := q.OnGesture("swipeRight1")
	assert.Equal(t, OutcomeMatched, out)
	out, _ = q.OnGesture("tap")
	assert.Equal(t, OutcomeMatchedPropagate, out)
	assert.True(t, out.Propagate())

	assert.Equal(t, []string{
		"say:Swipe right",
		"say:Good",
		"cmd:nextObject",
		"say:Now tap",
	}, rec.events)
}

func TestCloseCombinationInAnyState(t *testing.T) {
	rec := &recorder{}
	q, err := NewQueue([]ExpectedAction{
		MustExpectedAction(Spec{Type: KeySequence, Value: space()}),
	}, rec.hooks())
	require.NoError(t, err)

	closeSeq := key.MustParseSequence("Ctrl+Alt+Z")
	out, err := q.OnKeySequence(closeSeq)
	require.NoError(t, err)
	assert.Equal(t, OutcomeClose, out)
	assert.Equal(t, 0, q.Index())

	_, _ = q.OnKeySequence(space())
	require.True(t, q.Done())

	out, err = q.OnKeySequence(closeSeq)
	require.NoError(t, err)
	assert.Equal(t, OutcomeClose, out)
	assert.Equal(t, 1, q.Index())
	assert.Equal(t, 2, rec.closed)
}

func TestCloseCombinationAsExpectedAction(t *testing.T) {
	q, err := NewQueue([]ExpectedAction{
		MustExpectedAction(Spec{Type: KeySequence, Value: key.CloseSequence()}),
	}, Hooks{})
	require.NoError(t, err)

	out, err := q.OnKeySequence(key.CloseSequence())
	require.NoError(t, err)
	assert.Equal(t, OutcomeClose, out)
	assert.Equal(t, 0, q.Index())
}

func TestNewQueueRequiresActions(t *testing.T) {
	_, err := NewQueue(nil, Hooks{})
	assert.ErrorIs(t, err, ErrEmptyQueue)

	_, err = NewQueue([]ExpectedAction{}, Hooks{})
	assert.ErrorIs(t, err, ErrEmptyQueue)
}

func TestNewExpectedActionValidation(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		err  error
	}{
		{"key sequence from string", Spec{Type: KeySequence, Value: "Space"}, ErrPayloadType},
		{"nil key sequence", Spec{Type: KeySequence, Value: (*key.Sequence)(nil)}, ErrPayloadType},
		{"empty key sequence", Spec{Type: KeySequence, Value: key.NewSequence()}, ErrPayloadType},
		{"gesture from sequence", Spec{Type: Gesture, Value: space()}, ErrPayloadType},
		{"braille from int", Spec{Type: BrailleInput, Value: 3}, ErrPayloadType},
		{"empty gesture", Spec{Type: Gesture, Value: ""}, ErrPayloadType},
		{"unknown type", Spec{Type: ActionType(9), Value: "x"}, ErrUnknownType},
		{"valid gesture", Spec{Type: Gesture, Value: "tap"}, nil},
		{"valid keys", Spec{Type: KeySequence, Value: space()}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExpectedAction(tt.spec)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestExpectedActionIsImmutable(t *testing.T) {
	seq := space()
	a := MustExpectedAction(Spec{Type: KeySequence, Value: seq})
	seq.Add(key.NewRuneEvent('x', key.ModNone))
	a.Sequence().Add(key.NewRuneEvent('y', key.ModNone))

	assert.True(t, a.Equals(MustExpectedAction(Spec{Type: KeySequence, Value: space()})))
	assert.False(t, a.Equals(MustExpectedAction(Spec{Type: Gesture, Value: "Space"})))
}

func TestQueueHasSessionID(t *testing.T) {
	actions := []ExpectedAction{MustExpectedAction(Spec{Type: Gesture, Value: "tap"})}
	a, err := NewQueue(actions, Hooks{})
	require.NoError(t, err)
	b, err := NewQueue(actions, Hooks{})
	require.NoError(t, err)

	assert.Len(t, a.ID(), 36)
	assert.NotEqual(t, a.ID(), b.ID())
}
