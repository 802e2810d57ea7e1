// Package cursor provides cursors and ranges over the external
// accessibility tree.
//
// A Cursor is a node plus an optional character offset. A Range is an
// ordered pair of cursors; when Start equals End the range is collapsed.
// Both are immutable value types: Move, Normalize and WithWrapped return new
// values.
//
// Validity is never cached. A range whose nodes were removed from the tree
// simply reports IsValid() == false on the next call.
//
// Units:
//
//   - Character: one grapheme cluster of a node's text
//   - Word: one word (segmented per UAX #29, punctuation and spaces skipped)
//   - Line: one newline-delimited line of a node's text
//   - Node: one object node in document order
//
// Character, word and line moves spill over to the next or previous text
// leaf when they run off the end of a node.
package cursor
