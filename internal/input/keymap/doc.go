// Package keymap maps key sequences, gesture names and braille input names
// to screen reader commands.
//
// # Key Concepts
//
// Keymap: A named, prioritized collection of bindings. Key bindings use the
// key package's specification syntax; gesture and braille bindings map a
// name to a command identifier.
//
// Registry: Holds keymaps as layers and answers lookups from the merged
// result.
//
// # Binding Precedence
//
// Layers merge in ascending priority, so a binding in a higher priority
// keymap replaces the same keys or name in a lower one. The command name
// "none" removes an inherited binding.
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	if err := registry.Register(keymap.Default()); err != nil {
//	    return err
//	}
//	user := keymap.FromTables("user", cfg.Keymap.Bindings, cfg.Gestures.Bindings, nil)
//	if err := registry.Register(user.WithPriority(10)); err != nil {
//	    return err // *BindingError names the offending binding
//	}
//
//	if cmd, ok := registry.Lookup(seq); ok {
//	    dispatcher.Dispatch(cmd)
//	}
package keymap
