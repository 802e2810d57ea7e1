package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
)

// Unbind is the command name that removes an inherited binding.
const Unbind = "none"

// Binding errors.
var (
	ErrEmptyBinding   = errors.New("empty binding")
	ErrUnknownCommand = errors.New("unknown command")
)

// BindingError reports a binding that could not be compiled.
type BindingError struct {
	Keymap  string
	Input   string // key specification, gesture or braille name
	Command string
	Err     error
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("keymap %s: binding %q -> %q: %v", e.Keymap, e.Input, e.Command, e.Err)
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// Binding maps a key sequence to a command.
type Binding struct {
	// Keys is the key sequence, e.g. "Search+Right" or "Search+O T".
	Keys string

	// Command is the command identifier, e.g. "nextObject", or Unbind.
	Command string

	// Description documents the binding for learn mode.
	Description string

	// Category groups bindings for display purposes.
	Category string
}

// NewBinding creates a new binding with the given keys and command.
func NewBinding(keys, cmd string) Binding {
	return Binding{
		Keys:    keys,
		Command: cmd,
	}
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// WithCategory sets the category for this binding.
func (b Binding) WithCategory(category string) Binding {
	b.Category = category
	return b
}

// ParsedBinding is a binding with its key sequence and command resolved.
type ParsedBinding struct {
	Binding
	Sequence *key.Sequence
	Cmd      command.Command
}

// Match checks if this binding's key sequence matches the given sequence.
func (pb *ParsedBinding) Match(seq *key.Sequence) bool {
	if pb == nil || pb.Sequence == nil || seq == nil {
		return false
	}
	return pb.Sequence.Equals(seq)
}

// IsPrefix checks if the given sequence is a proper prefix of this binding's
// sequence.
func (pb *ParsedBinding) IsPrefix(seq *key.Sequence) bool {
	if pb == nil || pb.Sequence == nil || seq == nil {
		return false
	}
	return seq.Len() < pb.Sequence.Len() && pb.Sequence.HasPrefix(seq)
}

// parseCommand resolves a command name. Unbind resolves to command.Unknown.
func parseCommand(name string) (command.Command, error) {
	if name == "" {
		return command.Unknown, ErrEmptyBinding
	}
	if name == Unbind {
		return command.Unknown, nil
	}
	cmd, ok := command.Parse(name)
	if !ok {
		return command.Unknown, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
