package navstate

import (
	"strings"

	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/logging"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/store"
	"github.com/dshills/voxnav/internal/tree"
)

// focusKeyPrefix namespaces persisted focus positions in the store.
const focusKeyPrefix = "focus:"

// Observer is notified after the current range changes. r may be nil.
type Observer func(r *cursor.Range, fromEditing bool)

type observerEntry struct {
	id uint64
	fn Observer
}

type notification struct {
	r           *cursor.Range
	fromEditing bool
}

// State is the navigation state.
type State struct {
	host   tree.Host
	out    *output.Renderer
	store  *store.Store
	logger *logging.Logger

	current       *cursor.Range
	previous      *cursor.Range
	pageSelection *cursor.Range

	readingContinuously bool
	talkBackEnabled     bool
	ignoreRangeChanges  bool

	ready     bool
	pending   []notification
	nextID    uint64
	observers []observerEntry
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *State) { s.logger = l }
}

// WithStore persists focus positions to st.
func WithStore(st *store.Store) Option {
	return func(s *State) { s.store = st }
}

// New creates a navigation state over host rendering to out.
func New(host tree.Host, out *output.Renderer, opts ...Option) *State {
	s := &State{
		host:   host,
		out:    out,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Host returns the tree host.
func (s *State) Host() tree.Host {
	return s.host
}

// Output returns the renderer.
func (s *State) Output() *output.Renderer {
	return s.out
}

// CurrentRange returns the current range if it is still valid, else nil.
// An invalid range is not cleared.
func (s *State) CurrentRange() *cursor.Range {
	if s.current == nil || !s.current.IsValid() {
		return nil
	}
	return s.current
}

// CurrentRangeWithoutRecovery returns the current range without validation.
func (s *State) CurrentRangeWithoutRecovery() *cursor.Range {
	return s.current
}

// PreviousRange returns the range that was current before the last change.
func (s *State) PreviousRange() *cursor.Range {
	return s.previous
}

// SetCurrentRange makes r the current range. fromEditing marks changes that
// originate from text editing.
func (s *State) SetCurrentRange(r *cursor.Range, fromEditing bool) {
	s.out.Thaw()

	if (s.current == nil && r == nil) || (r != nil && !r.IsValid()) {
		s.out.ClearFocusBounds()
		return
	}

	s.previous = s.current
	s.current = r
	s.logger.Debug("range %v -> %v", s.previous, r)

	if r != nil && s.pageSelection != nil {
		s.extendPageSelection(*r)
	}

	s.notify(notification{r: r, fromEditing: fromEditing})

	if r == nil {
		s.out.ClearFocusBounds()
		return
	}

	start := r.Start.Node
	s.host.MakeVisible(start)
	s.host.SetAccessibilityFocus(start)

	root := tree.DocumentRoot(start)
	if root == start || root.Role() != tree.RoleRootWebArea {
		return
	}
	s.saveFocusPosition(root.DocURL(), start.Location().Center())
}

// RestoreLastValidRangeIfNeeded falls back to the previous range when the
// current one is gone. It does nothing while TalkBack is enabled.
func (s *State) RestoreLastValidRangeIfNeeded() {
	if s.talkBackEnabled {
		return
	}
	if s.current == nil || !s.current.IsValid() {
		s.SetCurrentRange(s.previous, false)
	}
}

// AddObserver registers fn and returns a function that removes it.
func (s *State) AddObserver(fn Observer) (remove func()) {
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observerEntry{id: id, fn: fn})
	return func() {
		for i, e := range s.observers {
			if e.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// MarkReady opens the startup gate. Notifications issued before the gate
// opened are delivered now, in order. Later calls are no-ops.
func (s *State) MarkReady() {
	if s.ready {
		return
	}
	s.ready = true
	pending := s.pending
	s.pending = nil
	for _, n := range pending {
		s.deliver(n)
	}
}

// Ready reports whether MarkReady has been called.
func (s *State) Ready() bool {
	return s.ready
}

func (s *State) notify(n notification) {
	if !s.ready {
		s.pending = append(s.pending, n)
		return
	}
	s.deliver(n)
}

func (s *State) deliver(n notification) {
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	for _, e := range observers {
		e.fn(n.r, n.fromEditing)
	}
}

// ReadingContinuously reports whether continuous reading is active.
func (s *State) ReadingContinuously() bool { return s.readingContinuously }

// SetReadingContinuously sets the continuous reading flag.
func (s *State) SetReadingContinuously(v bool) { s.readingContinuously = v }

// TalkBackEnabled reports whether a competing assistive technology is active.
func (s *State) TalkBackEnabled() bool { return s.talkBackEnabled }

// SetTalkBackEnabled sets the TalkBack flag.
func (s *State) SetTalkBackEnabled(v bool) { s.talkBackEnabled = v }

// IgnoreRangeChanges suppresses focus-driven range updates while v is true.
func (s *State) IgnoreRangeChanges(v bool) { s.ignoreRangeChanges = v }

// IgnoringRangeChanges reports whether focus-driven updates are suppressed.
func (s *State) IgnoringRangeChanges() bool { return s.ignoreRangeChanges }

// FocusPosition returns the saved focus center for a document URL.
func (s *State) FocusPosition(url string) (tree.Point, bool) {
	if s.store == nil {
		return tree.Point{}, false
	}
	res, ok := s.store.Get(focusKeyPrefix + stripFragment(url))
	if !ok {
		return tree.Point{}, false
	}
	return tree.Point{X: int(res.Get("x").Int()), Y: int(res.Get("y").Int())}, true
}

func (s *State) saveFocusPosition(url string, p tree.Point) {
	if s.store == nil || url == "" {
		return
	}
	if err := s.store.Set(focusKeyPrefix+stripFragment(url), p); err != nil {
		s.logger.Warn("save focus position: %v", err)
	}
}

func stripFragment(url string) string {
	u, _, _ := strings.Cut(url, "#")
	return u
}
