package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "/"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Search+Right", "Ctrl+Alt+Z", "Search+Shift+H"
//
// A lone "+" is the plus character; "Ctrl++" is Ctrl with plus.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if spec == "+" {
		return NewRuneEvent('+', ModNone), nil
	}

	var keyPart string
	var mods Modifier
	if strings.HasSuffix(spec, "++") {
		keyPart = "+"
		spec = strings.TrimSuffix(spec, "+")
		spec = strings.TrimSuffix(spec, "+")
		m, err := parseModifiers(strings.Split(spec, "+"))
		if err != nil {
			return Event{}, err
		}
		mods = m
	} else {
		parts := strings.Split(spec, "+")
		keyPart = parts[len(parts)-1]
		m, err := parseModifiers(parts[:len(parts)-1])
		if err != nil {
			return Event{}, err
		}
		mods = m
	}

	return parseKeyWithModifiers(keyPart, mods)
}

func parseModifiers(parts []string) (Modifier, error) {
	var mods Modifier
	for _, p := range parts {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return ModNone, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}
	return mods, nil
}

// parseKeyWithModifiers parses a key part with already-known modifiers
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}

	r := runes[0]
	// A bare uppercase letter has implicit Shift; with explicit modifiers the
	// letter case is ignored.
	if mods == ModNone && unicode.IsUpper(r) {
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(unicode.ToLower(r), mods), nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
