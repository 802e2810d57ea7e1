package keymap

import (
	"fmt"
	"maps"
	"sort"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
)

// Keymap holds bindings from one source.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Bindings are the key-to-command mappings.
	Bindings []Binding

	// Gestures maps touch gesture names, e.g. "swipeRight1", to commands.
	Gestures map[string]string

	// Braille maps braille display input names to commands.
	Braille map[string]string

	// Priority determines precedence when keymaps are layered.
	// Higher priority wins. Default is 0.
	Priority int

	// Source indicates where this keymap was defined, e.g. "default" or a
	// config file path.
	Source string
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
		Gestures: make(map[string]string),
		Braille:  make(map[string]string),
	}
}

// FromTables builds a keymap from configuration tables. Key bindings are
// added in sorted key order so errors are reported deterministically.
func FromTables(name string, keys, gestures, braille map[string]string) *Keymap {
	km := NewKeymap(name)
	specs := make([]string, 0, len(keys))
	for spec := range keys {
		specs = append(specs, spec)
	}
	sort.Strings(specs)
	for _, spec := range specs {
		km.Add(spec, keys[spec])
	}
	maps.Copy(km.Gestures, gestures)
	maps.Copy(km.Braille, braille)
	return km
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a key binding to this keymap.
func (k *Keymap) Add(keys, cmd string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, cmd))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// AddGesture binds a gesture name.
func (k *Keymap) AddGesture(name, cmd string) *Keymap {
	if k.Gestures == nil {
		k.Gestures = make(map[string]string)
	}
	k.Gestures[name] = cmd
	return k
}

// AddBraille binds a braille input name.
func (k *Keymap) AddBraille(name, cmd string) *Keymap {
	if k.Braille == nil {
		k.Braille = make(map[string]string)
	}
	k.Braille[name] = cmd
	return k
}

// Validate checks that every binding parses and names a known command.
func (k *Keymap) Validate() error {
	_, err := k.Parse()
	return err
}

// ParsedKeymap is a keymap with pre-parsed key sequences and commands.
type ParsedKeymap struct {
	*Keymap
	ParsedBindings []ParsedBinding
	ParsedGestures map[string]ParsedName
	ParsedBraille  map[string]ParsedName
}

// ParsedName is a resolved gesture or braille binding. Cmd is
// command.Unknown for Unbind.
type ParsedName struct {
	Command string
	Cmd     command.Command
}

// Parse parses all bindings in the keymap. The first invalid binding is
// returned as a *BindingError.
func (k *Keymap) Parse() (*ParsedKeymap, error) {
	parsed := &ParsedKeymap{
		Keymap:         k,
		ParsedBindings: make([]ParsedBinding, 0, len(k.Bindings)),
		ParsedGestures: make(map[string]ParsedName, len(k.Gestures)),
		ParsedBraille:  make(map[string]ParsedName, len(k.Braille)),
	}

	for _, b := range k.Bindings {
		if b.Keys == "" {
			return nil, k.bindingError(b.Keys, b.Command, ErrEmptyBinding)
		}
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, k.bindingError(b.Keys, b.Command, err)
		}
		cmd, err := parseCommand(b.Command)
		if err != nil {
			return nil, k.bindingError(b.Keys, b.Command, err)
		}
		parsed.ParsedBindings = append(parsed.ParsedBindings, ParsedBinding{
			Binding:  b,
			Sequence: seq,
			Cmd:      cmd,
		})
	}

	if err := k.parseNames(k.Gestures, parsed.ParsedGestures); err != nil {
		return nil, err
	}
	if err := k.parseNames(k.Braille, parsed.ParsedBraille); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (k *Keymap) parseNames(src map[string]string, dst map[string]ParsedName) error {
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "" {
			return k.bindingError(name, src[name], ErrEmptyBinding)
		}
		cmd, err := parseCommand(src[name])
		if err != nil {
			return k.bindingError(name, src[name], err)
		}
		dst[name] = ParsedName{
			Command: src[name],
			Cmd:     cmd,
		}
	}
	return nil
}

func (k *Keymap) bindingError(input, cmd string, err error) error {
	return &BindingError{Keymap: k.Name, Input: input, Command: cmd, Err: err}
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		Priority: k.Priority,
		Source:   k.Source,
		Bindings: make([]Binding, len(k.Bindings)),
		Gestures: maps.Clone(k.Gestures),
		Braille:  maps.Clone(k.Braille),
	}
	copy(clone.Bindings, k.Bindings)
	return clone
}

// String describes the keymap for logs.
func (k *Keymap) String() string {
	return fmt.Sprintf("%s(%d keys, %d gestures, %d braille)", k.Name, len(k.Bindings), len(k.Gestures), len(k.Braille))
}
