package gate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
)

const basics = `
name: basics
description: Moving by object
actions:
  - type: key_sequence
    value: Search+Right
    before: Press Search and the right arrow.
    after: Well done.
    command: nextObject
  - type: gesture
    value: swipeUp1
    propagate: true
  - type: braille
    value: routing
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript(strings.NewReader(basics), "basics.yaml")
	require.NoError(t, err)
	assert.Equal(t, "basics", s.Name)
	assert.Equal(t, "Moving by object", s.Description)

	actions, err := s.ExpectedActions()
	require.NoError(t, err)
	require.Len(t, actions, 3)

	first := actions[0]
	assert.Equal(t, KeySequence, first.Type())
	assert.True(t, first.Sequence().Equals(key.MustParseSequence("Search+Right")))
	assert.Equal(t, "Press Search and the right arrow.", first.BeforeMessage())
	assert.Equal(t, "Well done.", first.AfterMessage())
	assert.Equal(t, command.NextObject, first.AfterCommand())
	assert.False(t, first.ShouldPropagate())

	assert.Equal(t, Gesture, actions[1].Type())
	assert.True(t, actions[1].ShouldPropagate())
	assert.Equal(t, BrailleInput, actions[2].Type())
	assert.Equal(t, "routing", actions[2].Name())
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		target error
		action int
	}{
		{"empty document", "", ErrEmptyQueue, -1},
		{"no actions", "name: x\nactions: []\n", ErrEmptyQueue, -1},
		{"unknown type", "actions:\n  - type: voice\n    value: hi\n", ErrUnknownType, 0},
		{"bad key", "actions:\n  - type: gesture\n    value: tap\n  - type: key_sequence\n    value: Hyper+Q\n", ErrPayloadType, 1},
		{"empty gesture", "actions:\n  - type: gesture\n", ErrPayloadType, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.input), "flow.yaml")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)

			var se *ScriptError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "flow.yaml", se.Path)
			assert.Equal(t, tt.action, se.Action)
		})
	}
}

func TestParseScriptRejectsUnknownFields(t *testing.T) {
	_, err := ParseScript(strings.NewReader("actions:\n  - type: gesture\n    value: tap\n    colour: red\n"), "flow.yaml")
	var se *ScriptError
	assert.ErrorAs(t, err, &se)
}

func TestParseScriptUnknownCommand(t *testing.T) {
	_, err := ParseScript(strings.NewReader("actions:\n  - type: gesture\n    value: tap\n    command: fly\n"), "flow.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "fly"`)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	write("basics.yaml", basics)
	write("tap.yml", "actions:\n  - type: gesture\n    value: tap\n")
	write("notes.txt", "not a flow")

	scripts, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"basics", "tap"}, Names(scripts))

	write("again.yaml", "name: tap\nactions:\n  - type: gesture\n    value: tap\n")
	_, err = LoadDir(dir)
	assert.Error(t, err)
}

func TestLoadScriptMissingFile(t *testing.T) {
	_, err := LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
