package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
)

// Registry layers keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// layers holds registered keymaps in ascending priority; registration
	// order breaks ties.
	layers []*ParsedKeymap

	// merged lookup tables, rebuilt on every change.
	keys     map[string]*ParsedBinding
	prefixes map[string]bool
	gestures map[string]command.Command
	braille  map[string]command.Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}
	r.rebuild()
	return r
}

// Register adds a keymap. A keymap with the same name is replaced. An
// invalid keymap is rejected with a *BindingError and the registry is left
// unchanged.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}
	parsed, err := km.Parse()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.remove(km.Name)
	r.layers = append(r.layers, parsed)
	sort.SliceStable(r.layers, func(i, j int) bool {
		return r.layers[i].Priority < r.layers[j].Priority
	})
	r.rebuild()
	return nil
}

// Merge registers a copy of km above every registered layer, so its
// bindings override all existing ones.
func (r *Registry) Merge(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot merge nil keymap")
	}
	overlay := km.Clone()
	r.mu.RLock()
	for _, l := range r.layers {
		if l.Name != overlay.Name && l.Priority >= overlay.Priority {
			overlay.Priority = l.Priority + 1
		}
	}
	r.mu.RUnlock()
	return r.Register(overlay)
}

// Replace swaps the keymap registered under km.Name, as Register does.
// It exists for config reloads, where the old layer must go even if the new
// one is invalid.
func (r *Registry) Replace(km *Keymap) error {
	if err := r.Register(km); err != nil {
		r.Unregister(km.Name)
		return err
	}
	return nil
}

// Unregister removes the keymap with the given name.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.remove(name) {
		return false
	}
	r.rebuild()
	return true
}

func (r *Registry) remove(name string) bool {
	for i, l := range r.layers {
		if l.Name == name {
			r.layers = append(r.layers[:i:i], r.layers[i+1:]...)
			return true
		}
	}
	return false
}

// rebuild merges layers in ascending priority.
func (r *Registry) rebuild() {
	r.keys = make(map[string]*ParsedBinding)
	r.gestures = make(map[string]command.Command)
	r.braille = make(map[string]command.Command)

	for _, l := range r.layers {
		for i := range l.ParsedBindings {
			pb := &l.ParsedBindings[i]
			id := pb.Sequence.String()
			if pb.Cmd == command.Unknown {
				delete(r.keys, id)
				continue
			}
			r.keys[id] = pb
		}
		mergeNames(r.gestures, l.ParsedGestures)
		mergeNames(r.braille, l.ParsedBraille)
	}

	r.prefixes = make(map[string]bool)
	for _, pb := range r.keys {
		events := pb.Sequence.Events
		for n := 1; n < len(events); n++ {
			r.prefixes[key.NewSequenceFrom(events[:n]...).String()] = true
		}
	}
}

func mergeNames(dst map[string]command.Command, src map[string]ParsedName) {
	for name, pn := range src {
		if pn.Cmd == command.Unknown {
			delete(dst, name)
			continue
		}
		dst[name] = pn.Cmd
	}
}

// Lookup returns the command bound to seq.
func (r *Registry) Lookup(seq *key.Sequence) (command.Command, bool) {
	if seq == nil || seq.IsEmpty() {
		return command.Unknown, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pb, ok := r.keys[seq.String()]
	if !ok {
		return command.Unknown, false
	}
	return pb.Cmd, true
}

// HasPrefix reports whether seq is the start of a longer bound sequence.
func (r *Registry) HasPrefix(seq *key.Sequence) bool {
	if seq == nil || seq.IsEmpty() {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prefixes[seq.String()]
}

// Gesture returns the command bound to a gesture name.
func (r *Registry) Gesture(name string) (command.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.gestures[name]
	return cmd, ok
}

// Braille returns the command bound to a braille input name.
func (r *Registry) Braille(name string) (command.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.braille[name]
	return cmd, ok
}

// KeysFor returns the key specifications bound to cmd, sorted.
func (r *Registry) KeysFor(cmd command.Command) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for id, pb := range r.keys {
		if pb.Cmd == cmd {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Bindings returns the effective key bindings sorted by key specification.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Binding, 0, len(r.keys))
	for _, pb := range r.keys {
		out = append(out, pb.Binding)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// Keymaps returns the names of the registered keymaps in ascending priority.
func (r *Registry) Keymaps() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.layers))
	for i, l := range r.layers {
		names[i] = l.Name
	}
	return names
}
