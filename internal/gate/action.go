package gate

import (
	"fmt"
	"strings"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
)

// ActionType tags the kind of input an ExpectedAction waits for.
type ActionType uint8

const (
	KeySequence ActionType = iota
	Gesture
	BrailleInput
)

var actionTypeNames = [...]string{
	KeySequence:  "key_sequence",
	Gesture:      "gesture",
	BrailleInput: "braille",
}

// String returns the script name of the type.
func (t ActionType) String() string {
	if int(t) < len(actionTypeNames) {
		return actionTypeNames[t]
	}
	return fmt.Sprintf("ActionType(%d)", t)
}

// ParseActionType resolves a script type name.
func ParseActionType(s string) (ActionType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range actionTypeNames {
		if name == s {
			return ActionType(t), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Spec is the input to NewExpectedAction. Value must be a *key.Sequence for
// KeySequence actions and a string for the other types.
type Spec struct {
	Type  ActionType
	Value any

	// ShouldPropagate forwards the matching input to normal handling as well.
	ShouldPropagate bool

	BeforeMessage string
	AfterMessage  string

	// AfterCommand is dispatched when the action matches. Unknown means none.
	AfterCommand command.Command
}

// ExpectedAction is one step of a guided flow. It is immutable.
type ExpectedAction struct {
	typ       ActionType
	seq       *key.Sequence
	name      string
	propagate bool
	before    string
	after     string
	afterCmd  command.Command
}

// NewExpectedAction validates spec and builds the action.
func NewExpectedAction(spec Spec) (ExpectedAction, error) {
	a := ExpectedAction{
		typ:       spec.Type,
		propagate: spec.ShouldPropagate,
		before:    spec.BeforeMessage,
		after:     spec.AfterMessage,
		afterCmd:  spec.AfterCommand,
	}
	if spec.AfterCommand != command.Unknown && !spec.AfterCommand.Valid() {
		return ExpectedAction{}, fmt.Errorf("gate: invalid after command %d", uint16(spec.AfterCommand))
	}

	switch spec.Type {
	case KeySequence:
		seq, ok := spec.Value.(*key.Sequence)
		if !ok || seq == nil || seq.IsEmpty() {
			return ExpectedAction{}, fmt.Errorf("%w: %s needs a key sequence, got %T", ErrPayloadType, spec.Type, spec.Value)
		}
		a.seq = seq.Clone()
	case Gesture, BrailleInput:
		name, ok := spec.Value.(string)
		if !ok {
			return ExpectedAction{}, fmt.Errorf("%w: %s needs a string, got %T", ErrPayloadType, spec.Type, spec.Value)
		}
		if name == "" {
			return ExpectedAction{}, fmt.Errorf("%w: %s name is empty", ErrPayloadType, spec.Type)
		}
		a.name = name
	default:
		return ExpectedAction{}, fmt.Errorf("%w: %d", ErrUnknownType, spec.Type)
	}
	return a, nil
}

// MustExpectedAction is like NewExpectedAction but panics on error.
// Use only for literal flows in initialization code.
func MustExpectedAction(spec Spec) ExpectedAction {
	a, err := NewExpectedAction(spec)
	if err != nil {
		panic(err)
	}
	return a
}

// Type returns the input kind the action waits for.
func (a ExpectedAction) Type() ActionType { return a.typ }

// Sequence returns the expected key sequence, or nil for other types.
func (a ExpectedAction) Sequence() *key.Sequence { return a.seq.Clone() }

// Name returns the expected gesture or braille name.
func (a ExpectedAction) Name() string { return a.name }

// ShouldPropagate reports whether a matching input is also forwarded.
func (a ExpectedAction) ShouldPropagate() bool { return a.propagate }

// BeforeMessage is announced when the action becomes current.
func (a ExpectedAction) BeforeMessage() string { return a.before }

// AfterMessage is announced when the action matches.
func (a ExpectedAction) AfterMessage() string { return a.after }

// AfterCommand is dispatched when the action matches.
func (a ExpectedAction) AfterCommand() command.Command { return a.afterCmd }

// matchesSequence compares structurally, ignoring timestamps.
func (a ExpectedAction) matchesSequence(seq *key.Sequence) bool {
	return a.typ == KeySequence && a.seq.Equals(seq)
}

func (a ExpectedAction) matchesName(typ ActionType, name string) bool {
	return a.typ == typ && a.name == name
}

// Equals reports whether a and b wait for the same input.
func (a ExpectedAction) Equals(b ExpectedAction) bool {
	if a.typ != b.typ {
		return false
	}
	if a.typ == KeySequence {
		return a.seq.Equals(b.seq)
	}
	return a.name == b.name
}

// String describes the action for logs.
func (a ExpectedAction) String() string {
	if a.typ == KeySequence {
		return fmt.Sprintf("%s(%s)", a.typ, a.seq)
	}
	return fmt.Sprintf("%s(%s)", a.typ, a.name)
}
