package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const waitTimeout = 5 * time.Second

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")

	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) error = %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b) error = %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Errorf("second Watch(a) error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 2 {
		t.Errorf("WatchedFiles() = %d, want 2", got)
	}

	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch(a) error = %v", err)
	}
	if got := len(w.WatchedFiles()); got != 1 {
		t.Errorf("WatchedFiles() = %d, want 1", got)
	}
	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch of unwatched file error = %v", err)
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "x.toml")); err == nil {
		t.Error("Watch() in a missing directory should fail")
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voxnav.toml")
	other := filepath.Join(dir, "other.toml")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(ev Event) { events <- ev })
	w.OnChange(func(Event) { panic("handler panic must not stop the loop") })

	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}

	// Changes to unwatched files in the same directory are ignored.
	if err := os.WriteFile(other, []byte("b = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("a = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		if ev.Path != path {
			t.Errorf("event path = %q, want %q", ev.Path, path)
		}
		if ev.Op != OpWrite && ev.Op != OpCreate {
			t.Errorf("event op = %v", ev.Op)
		}
	case <-time.After(waitTimeout):
		t.Fatal("no change event")
	}
}

func TestWatcher_Coalesces(t *testing.T) {
	w := &Watcher{pending: make(map[string]pendingEvent)}
	now := time.Now()

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: "/a", Op: OpWrite, Time: now})
	if got := w.pending["/a"].Op; got != OpCreate {
		t.Errorf("create+write = %v, want create", got)
	}

	w.queueEvent(Event{Path: "/a", Op: OpRemove, Time: now})
	if got := w.pending["/a"].Op; got != OpRemove {
		t.Errorf("create+write+remove = %v, want remove", got)
	}

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	if got := w.pending["/a"].Op; got != OpCreate {
		t.Errorf("remove+create = %v, want create", got)
	}

	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: now})
	w.queueEvent(Event{Path: "/b", Op: OpWrite, Time: now})
	if len(w.pending) != 2 || w.pending["/b"].Op != OpWrite {
		t.Errorf("pending = %v", w.pending)
	}
}

func TestWatcher_Close(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Watch(filepath.Join(t.TempDir(), "x.toml")); !errors.Is(err, ErrClosed) {
		t.Errorf("Watch() after Close = %v, want ErrClosed", err)
	}
}
