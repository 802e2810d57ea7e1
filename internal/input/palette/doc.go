// Package palette finds screen reader commands by name.
//
// A Palette lists every command with a readable title, its description and
// category from the keymap, and the keys bound to it. Search ranks entries
// with a fuzzy subsequence match, so "nxhd" finds "Next heading":
//
//	p := palette.New(registry)
//	for _, r := range p.Search("head", 5) {
//	    fmt.Println(r.Entry.Title, r.Entry.Keys)
//	}
//
// Commands recorded with Record appear first for an empty query, most
// recent first. Suggest proposes the closest command identifier for a
// misspelled one, for configuration error messages.
//
// All palette operations are safe for concurrent use.
package palette
