package command

import (
	"testing"

	"github.com/dshills/voxnav/internal/predicate"
	"github.com/dshills/voxnav/internal/tree"
)

func TestParseRoundTrip(t *testing.T) {
	for _, c := range All() {
		got, ok := Parse(c.String())
		if !ok || got != c {
			t.Errorf("Parse(%q) = (%v, %v), want %v", c.String(), got, ok, c)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	for _, name := range []string{"", "unknown", "NEXT_HEADING", "nextheading"} {
		if c, ok := Parse(name); ok {
			t.Errorf("Parse(%q) = %v, want not found", name, c)
		}
	}
}

func TestEveryCommandNamed(t *testing.T) {
	for _, c := range All() {
		if names[c] == "" {
			t.Errorf("command %d has no name", c)
		}
	}
	if n := len(All()); n < 80 {
		t.Errorf("only %d commands", n)
	}
}

func TestTier(t *testing.T) {
	tests := []struct {
		cmd  Command
		want Tier
	}{
		{ToggleStickyMode, TierStateOnly},
		{CloseGuidedFlow, TierStateOnly},
		{SpeakTimeAndDate, TierStateOnly},
		{NextObject, TierRangeRequired},
		{NextHeading, TierRangeRequired},
		{ToggleSelection, TierRangeRequired},
	}
	for _, tt := range tests {
		if got := tt.cmd.Tier(); got != tt.want {
			t.Errorf("%s.Tier() = %s, want %s", tt.cmd, got, tt.want)
		}
	}
}

func TestStateOnlyCommandsHaveNoDescriptor(t *testing.T) {
	for _, c := range All() {
		if c.Tier() == TierStateOnly && c.IsNavigation() {
			t.Errorf("state-only command %s has a navigation descriptor", c)
		}
	}
}

func TestDescriptors(t *testing.T) {
	d, ok := Lookup(NextHeading2)
	if !ok {
		t.Fatal("nextHeading2 has no descriptor")
	}
	if d.Predicate != predicate.HeadingOfLevel(2) || d.Dir != tree.Forward || !d.Wrap || d.ErrorArg != 2 {
		t.Errorf("nextHeading2 descriptor = %+v", d)
	}

	for _, c := range []Command{NextRow, PreviousRow, NextCol, PreviousCol, GoToRowFirstCell, GoToColLastCell} {
		d, _ := Lookup(c)
		if d.Wrap {
			t.Errorf("%s must not wrap", c)
		}
		if d.Root != predicate.Table {
			t.Errorf("%s root = %s, want table", c, d.Root)
		}
	}

	if d, _ := Lookup(NextCharacter); !d.IsUnitMove() || !d.Speech.Phonetic {
		t.Errorf("nextCharacter descriptor = %+v", d)
	}
	if _, ok := Lookup(ToggleSelection); ok {
		t.Error("toggleSelection is not a navigation command")
	}
}

func TestDescriptorErrorsAreSet(t *testing.T) {
	for c, d := range descriptors {
		if d.Error == "" {
			t.Errorf("%s has no error message", c)
		}
	}
}
