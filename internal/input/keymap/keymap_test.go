package keymap

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
)

func TestNewKeymap(t *testing.T) {
	km := NewKeymap("test")

	if km.Name != "test" {
		t.Errorf("Name = %q, want %q", km.Name, "test")
	}
	if len(km.Bindings) != 0 {
		t.Errorf("Bindings should be empty, got %d", len(km.Bindings))
	}
	if km.Gestures == nil || km.Braille == nil {
		t.Error("name tables should be allocated")
	}
}

func TestKeymapBuilders(t *testing.T) {
	km := NewKeymap("test").
		WithPriority(10).
		WithSource("test-source").
		Add("Search+Right", "nextObject").
		AddGesture("swipeRight1", "nextObject").
		AddBraille("panLeft", "previousLine")

	if km.Priority != 10 {
		t.Errorf("Priority = %d, want %d", km.Priority, 10)
	}
	if km.Source != "test-source" {
		t.Errorf("Source = %q, want %q", km.Source, "test-source")
	}
	if len(km.Bindings) != 1 {
		t.Errorf("Bindings = %d, want 1", len(km.Bindings))
	}
	if km.Gestures["swipeRight1"] != "nextObject" {
		t.Errorf("gesture = %q", km.Gestures["swipeRight1"])
	}
	if km.Braille["panLeft"] != "previousLine" {
		t.Errorf("braille = %q", km.Braille["panLeft"])
	}
}

func TestBindingBuilders(t *testing.T) {
	b := NewBinding("Search+H", "nextHeading").
		WithDescription("Next heading").
		WithCategory("Jump")

	if b.Keys != "Search+H" || b.Command != "nextHeading" {
		t.Errorf("binding = %+v", b)
	}
	if b.Description != "Next heading" || b.Category != "Jump" {
		t.Errorf("metadata = %q, %q", b.Description, b.Category)
	}
}

func TestDefaultKeymapIsValid(t *testing.T) {
	km := Default()
	if err := km.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if km.Name != "default" {
		t.Errorf("Name = %q", km.Name)
	}
	if len(km.Bindings) == 0 || len(km.Gestures) == 0 || len(km.Braille) == 0 {
		t.Error("default keymap should bind keys, gestures and braille")
	}
}

func TestDefaultKeymapHasNoDuplicateKeys(t *testing.T) {
	parsed, err := Default().Parse()
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]string)
	for _, pb := range parsed.ParsedBindings {
		id := pb.Sequence.String()
		if prev, ok := seen[id]; ok {
			t.Errorf("%s bound to both %s and %s", id, prev, pb.Command)
		}
		seen[id] = pb.Command
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		km    *Keymap
		input string
		want  error
	}{
		{
			name:  "unknown command",
			km:    NewKeymap("bad").Add("Search+Q", "flyAway"),
			input: "Search+Q",
			want:  ErrUnknownCommand,
		},
		{
			name:  "empty keys",
			km:    NewKeymap("bad").Add("", "nextObject"),
			input: "",
			want:  ErrEmptyBinding,
		},
		{
			name:  "bad modifier",
			km:    NewKeymap("bad").Add("Hyper+Q", "nextObject"),
			input: "Hyper+Q",
			want:  key.ErrInvalidSpec,
		},
		{
			name:  "empty command",
			km:    NewKeymap("bad").Add("Search+Q", ""),
			input: "Search+Q",
			want:  ErrEmptyBinding,
		},
		{
			name:  "unknown gesture command",
			km:    NewKeymap("bad").AddGesture("swipeUp4", "teleport"),
			input: "swipeUp4",
			want:  ErrUnknownCommand,
		},
		{
			name:  "empty braille name",
			km:    NewKeymap("bad").AddBraille("", "nextLine"),
			input: "",
			want:  ErrEmptyBinding,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.km.Parse()
			var be *BindingError
			if !errors.As(err, &be) {
				t.Fatalf("Parse() error = %v, want *BindingError", err)
			}
			if be.Keymap != "bad" {
				t.Errorf("Keymap = %q", be.Keymap)
			}
			if be.Input != tt.input {
				t.Errorf("Input = %q, want %q", be.Input, tt.input)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromTables(t *testing.T) {
	km := FromTables("user",
		map[string]string{"Search+Q": "nextHeading", "Search+A Q": "readCurrentTitle"},
		map[string]string{"tap3": "stopSpeech"},
		map[string]string{"chord_q": "nextLink"},
	)

	if len(km.Bindings) != 2 {
		t.Fatalf("Bindings = %d, want 2", len(km.Bindings))
	}
	// Sorted by key specification.
	if km.Bindings[0].Keys != "Search+A Q" {
		t.Errorf("first binding = %q", km.Bindings[0].Keys)
	}
	if km.Gestures["tap3"] != "stopSpeech" {
		t.Errorf("gesture = %q", km.Gestures["tap3"])
	}
	if km.Braille["chord_q"] != "nextLink" {
		t.Errorf("braille = %q", km.Braille["chord_q"])
	}
	if err := km.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestKeymapClone(t *testing.T) {
	km := NewKeymap("a").Add("Search+Right", "nextObject").AddGesture("tap2", "stopSpeech")
	clone := km.Clone()
	clone.Add("Search+Left", "previousObject")
	clone.Gestures["tap2"] = "nextLine"

	if len(km.Bindings) != 1 {
		t.Errorf("original bindings changed: %d", len(km.Bindings))
	}
	if km.Gestures["tap2"] != "stopSpeech" {
		t.Errorf("original gestures changed: %q", km.Gestures["tap2"])
	}
}

func TestKeymapString(t *testing.T) {
	s := NewKeymap("user").Add("Search+Q", "nextLink").String()
	if !strings.Contains(s, "user") || !strings.Contains(s, "1 keys") {
		t.Errorf("String() = %q", s)
	}
}

func TestParsedBindingMatch(t *testing.T) {
	parsed, err := NewKeymap("m").Add("Search+A t", "readCurrentTitle").Parse()
	if err != nil {
		t.Fatal(err)
	}
	pb := &parsed.ParsedBindings[0]

	if !pb.Match(key.MustParseSequence("Search+A t")) {
		t.Error("full sequence should match")
	}
	if pb.Match(key.MustParseSequence("Search+A")) {
		t.Error("prefix should not match")
	}
	if !pb.IsPrefix(key.MustParseSequence("Search+A")) {
		t.Error("Search+A should be a prefix")
	}
	if pb.IsPrefix(key.MustParseSequence("Search+A t")) {
		t.Error("full sequence is not a proper prefix")
	}
	if pb.Cmd != command.ReadCurrentTitle {
		t.Errorf("Cmd = %v", pb.Cmd)
	}
}

func TestGroupByCategory(t *testing.T) {
	groups := GroupByCategory([]Binding{
		{Keys: "a", Category: "Jump"},
		{Keys: "b"},
		{Keys: "c", Category: "Jump"},
	})
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if groups[0].Name != "Jump" || len(groups[0].Bindings) != 2 {
		t.Errorf("first group = %+v", groups[0])
	}
	if groups[1].Name != "Other" {
		t.Errorf("second group = %q, want Other", groups[1].Name)
	}
}
