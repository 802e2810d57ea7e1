// Package key provides the pre-normalized keyboard input model consumed by
// the command gate and keymap.
//
// This package defines:
//
//   - Key: Identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: Modifier keys (Ctrl, Alt, Shift, Meta and the Search key)
//   - Event: A single key press with modifiers and timestamp
//   - Sequence: An ordered series of key events bound to a command
//
// # Key Specifications
//
// Key specifications use the "Modifier+Key" notation:
//
//   - Simple keys: "a", "Space", "Enter", "Escape"
//   - With modifiers: "Search+Right", "Ctrl+Alt+Z", "Search+Shift+H"
//
// Sequences are written as space separated specifications, for example
// "Search+O Search+W". Raw hardware events are converted to these values by
// the host before they reach this package.
package key
