// Package actions provides handlers for commands that act on the current
// range without moving it by a navigation rule: activating the item,
// continuous reading, page selection and the informational reads (title,
// URL, link target, full description, phonetic spelling).
//
// The dispatcher only invokes these handlers when a valid current range
// exists; it is passed in handler.Context.Range.
package actions
