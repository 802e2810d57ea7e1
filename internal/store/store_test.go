package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTypedGetters(t *testing.T) {
	s := New()

	if got := s.Bool("sticky", true); !got {
		t.Error("Bool default not returned for missing key")
	}
	if err := s.Set("sticky", false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := s.Bool("sticky", true); got {
		t.Error("Bool(sticky) = true, want false")
	}

	_ = s.Set("rate", 1.5)
	if got := s.Float("rate", 0); got != 1.5 {
		t.Errorf("Float(rate) = %v, want 1.5", got)
	}

	_ = s.Set("echo", 2)
	if got := s.Int("echo", 0); got != 2 {
		t.Errorf("Int(echo) = %v, want 2", got)
	}

	_ = s.Set("voice", "Samantha")
	if got := s.String("voice", ""); got != "Samantha" {
		t.Errorf("String(voice) = %q", got)
	}
}

func TestURLKeysAreLiteral(t *testing.T) {
	s := New()
	key := "focus:https://example.com/a.b/c?q=1*2"
	if err := s.Set(key, map[string]int{"x": 10, "y": 20}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	res, ok := s.Get(key)
	if !ok {
		t.Fatal("URL key not found")
	}
	if res.Get("x").Int() != 10 || res.Get("y").Int() != 20 {
		t.Errorf("stored point = %s", res.Raw)
	}

	keys := s.Keys()
	if len(keys) != 1 || keys[0] != key {
		t.Errorf("Keys() = %v, want [%s]", keys, key)
	}

	if err := s.Delete(key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Has(key) {
		t.Error("key still present after Delete")
	}
}

func TestEmptyKey(t *testing.T) {
	s := New()
	if err := s.Set("", 1); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Set(\"\") err = %v", err)
	}
	if err := s.Delete(""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Delete(\"\") err = %v", err)
	}
}

func TestSaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "voxnav.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open missing file: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save clean store: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clean store should not create a file")
	}

	_ = s.Set("earcons", true)
	if !s.Dirty() {
		t.Error("store not dirty after Set")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Dirty() {
		t.Error("store dirty after Save")
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !reopened.Bool("earcons", false) {
		t.Error("value lost across Save/Open")
	}
}

func TestOpenCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("[1,2,3]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Open(array) err = %v, want ErrCorrupt", err)
	}
}
