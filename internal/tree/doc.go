// Package tree defines the external accessibility tree the navigation core
// runs against.
//
// The tree is owned by the host. Nodes may be invalidated at any time by
// document mutation, so callers check Node.Valid on every access instead of
// caching it. Host collects the side-effecting operations (accessibility
// focus, scrolling, native key presses, text selection).
//
// Node implementations must be comparable with == (pointer identity); cursor
// equality relies on it.
package tree
