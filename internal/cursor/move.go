package cursor

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"

	"github.com/dshills/voxnav/internal/predicate"
	"github.com/dshills/voxnav/internal/tree"
)

// span is a [start, end) byte range within a node's text.
type span struct{ start, end int }

// Move returns the range one unit away in direction dir. The boolean is false
// when no further unit exists before the document boundary; the original
// range is returned unchanged in that case.
func (r Range) Move(unit Unit, dir tree.Dir) (Range, bool) {
	if !r.IsValid() {
		return r, false
	}
	if unit == UnitNode {
		return r.moveNode(dir)
	}
	return r.moveText(unit, dir)
}

func (r Range) moveNode(dir tree.Dir) (Range, bool) {
	from := r.Bound(dir).Node
	root := tree.DocumentRoot(from)
	isObject := predicate.Func(predicate.Object, nil)

	next := tree.FindNext(from, dir, isObject, tree.FindOptions{Root: root, SkipInitialSubtree: true})
	if next == nil {
		return r, false
	}
	return FromNode(OutermostObject(next, root)), true
}

// OutermostObject climbs from n to the highest object ancestor below root so
// that backward moves never land inside a composite object.
func OutermostObject(n, root tree.Node) tree.Node {
	best := n
	for p := n.Parent(); p != nil && p != root; p = p.Parent() {
		if predicate.Match(predicate.Object, p, nil) {
			best = p
		}
	}
	return best
}

func (r Range) moveText(unit Unit, dir tree.Dir) (Range, bool) {
	c := r.Bound(dir)
	if dir == tree.Forward && !r.Start.IsWholeNode() && r.Start.Node == r.End.Node {
		// Advance from the start of the current unit, not its end.
		c = r.Start
	}
	text := tree.Text(c.Node)
	pos := c.Offset
	if pos < 0 {
		pos = 0
	}

	spans := segment(unit, text)
	if dir == tree.Forward {
		for _, s := range spans {
			if s.start > pos {
				return spanRange(c.Node, s), true
			}
		}
	} else {
		for i := len(spans) - 1; i >= 0; i-- {
			if spans[i].start < pos {
				return spanRange(c.Node, spans[i]), true
			}
		}
	}

	// Spill into the adjacent text leaf.
	root := tree.DocumentRoot(c.Node)
	next := tree.FindNext(c.Node, dir, isTextLeaf, tree.FindOptions{Root: root, SkipInitialSubtree: true})
	for next != nil {
		spans := segment(unit, tree.Text(next))
		if len(spans) > 0 {
			if dir == tree.Forward {
				return spanRange(next, spans[0]), true
			}
			return spanRange(next, spans[len(spans)-1]), true
		}
		next = tree.FindNext(next, dir, isTextLeaf, tree.FindOptions{Root: root, SkipInitialSubtree: true})
	}
	return r, false
}

func spanRange(n tree.Node, s span) Range {
	return Range{Start: New(n, s.start), End: New(n, s.end)}
}

func isTextLeaf(n tree.Node) bool {
	return n.Valid() && tree.IsLeaf(n) && tree.Text(n) != "" && !n.State().Has(tree.StateIgnored)
}

func segment(unit Unit, text string) []span {
	switch unit {
	case UnitCharacter:
		return graphemes(text)
	case UnitWord:
		return words(text)
	case UnitLine:
		return lines(text)
	default:
		return nil
	}
}

func graphemes(text string) []span {
	var out []span
	pos, state := 0, -1
	for len(text) > 0 {
		var cluster string
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		out = append(out, span{pos, pos + len(cluster)})
		pos += len(cluster)
	}
	return out
}

func words(text string) []span {
	var out []span
	pos, state := 0, -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		if strings.IndexFunc(word, isWordRune) >= 0 {
			out = append(out, span{pos, pos + len(word)})
		}
		pos += len(word)
	}
	return out
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func lines(text string) []span {
	if text == "" {
		return nil
	}
	var out []span
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, span{start, i})
			start = i + 1
		}
	}
	return append(out, span{start, len(text)})
}

// LineIndex returns the line containing offset and the number of lines in
// the text of n.
func LineIndex(n tree.Node, offset int) (line, count int) {
	ls := lines(tree.Text(n))
	if len(ls) == 0 {
		return 0, 1
	}
	for i, s := range ls {
		if offset <= s.end {
			return i, len(ls)
		}
	}
	return len(ls) - 1, len(ls)
}
