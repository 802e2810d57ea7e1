package key

import (
	"testing"
)

func TestSequenceBasicOperations(t *testing.T) {
	seq := NewSequence()
	if !seq.IsEmpty() || seq.First() != nil || seq.Last() != nil {
		t.Fatal("NewSequence should be empty")
	}

	seq.Add(MustParse("Search+O"))
	seq.Add(MustParse("Search+W"))
	if seq.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", seq.Len())
	}
	if seq.First().Rune != 'o' || seq.Last().Rune != 'w' {
		t.Errorf("First/Last = %v/%v", seq.First(), seq.Last())
	}
	if got := seq.String(); got != "Search+O Search+W" {
		t.Errorf("String() = %q", got)
	}

	seq.Clear()
	if !seq.IsEmpty() {
		t.Error("Sequence should be empty after Clear")
	}
}

func TestSequenceEquals(t *testing.T) {
	a := MustParseSequence("Search+O Search+W")
	b := MustParseSequence("search+o search+w")
	if !a.Equals(b) {
		t.Error("equal sequences should compare equal")
	}
	if a.Equals(MustParseSequence("Search+O")) {
		t.Error("different lengths should not compare equal")
	}
	if !b.HasPrefix(MustParseSequence("Search+O")) {
		t.Error("HasPrefix should match the first event")
	}

	var nilSeq *Sequence
	if nilSeq.Equals(a) || !nilSeq.Equals(nil) {
		t.Error("nil handling mismatch")
	}

	c := a.Clone()
	c.Events[0] = MustParse("Space")
	if a.Equals(c) {
		t.Error("Clone should not share storage")
	}
}

func TestCloseSequence(t *testing.T) {
	if !MustParseSequence("Ctrl+Alt+Z").IsClose() {
		t.Error("Ctrl+Alt+Z should be the close sequence")
	}
	if MustParseSequence("Ctrl+Z").IsClose() {
		t.Error("Ctrl+Z should not be the close sequence")
	}
	if MustParseSequence("Ctrl+Alt+Z Space").IsClose() {
		t.Error("longer sequences are not the close sequence")
	}
}

func TestParseSequenceEmpty(t *testing.T) {
	if _, err := ParseSequence("   "); err == nil {
		t.Error("expected error for empty sequence")
	}
}
