package output

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/tree"
)

// EventKind is the reason a range is being rendered.
type EventKind int

const (
	// EventNavigate is a user navigation; entered containers are announced.
	EventNavigate EventKind = iota
	// EventFocus is a host focus change.
	EventFocus
	// EventSelection is a selection announcement; hints are omitted.
	EventSelection
)

// Output is a single announcement under construction.
type Output struct {
	r        *Renderer
	rng      *cursor.Range
	prev     *cursor.Range
	kind     EventKind
	hints    bool
	props    SpeechProps
	messages []string
	earcon   Earcon
}

// New starts a new announcement.
func (r *Renderer) New() *Output {
	return &Output{r: r, hints: true}
}

// WithRichSpeechAndBraille describes rng. prev is the range navigated from
// and may be nil.
func (o *Output) WithRichSpeechAndBraille(rng, prev *cursor.Range, kind EventKind) *Output {
	o.rng, o.prev, o.kind = rng, prev, kind
	return o
}

// WithoutHints suppresses usage hints.
func (o *Output) WithoutHints() *Output {
	o.hints = false
	return o
}

// WithSpeechProps overrides speech properties for the described range.
func (o *Output) WithSpeechProps(p SpeechProps) *Output {
	o.props = o.props.merge(p)
	return o
}

// WithEarcon plays e before speaking.
func (o *Output) WithEarcon(e Earcon) *Output {
	o.earcon = e
	return o
}

// Format appends a catalog message.
func (o *Output) Format(key MsgKey, args ...any) *Output {
	o.messages = append(o.messages, o.r.Message(key, args...))
	return o
}

// WithString appends literal text.
func (o *Output) WithString(text string) *Output {
	if text != "" {
		o.messages = append(o.messages, text)
	}
	return o
}

// Text returns the full announcement text without side effects.
func (o *Output) Text() string {
	var parts []string
	if d := o.description(); d != "" {
		parts = append(parts, d)
	}
	parts = append(parts, o.messages...)
	return strings.Join(parts, ", ")
}

// Go renders the announcement.
func (o *Output) Go() {
	r := o.r
	r.Earcon(o.earcon)

	base := r.baseProps()
	var items []Utterance
	desc := o.description()
	if desc != "" {
		props, notice := r.voiceFor(o.rng.Start.Node, base.merge(o.props))
		if notice != "" {
			items = append(items, Utterance{Text: notice, Props: base})
		}
		items = append(items, Utterance{Text: desc, Props: props})
		if props.Phonetic {
			if word := phoneticWord(desc); word != "" {
				items = append(items, Utterance{Text: word, Props: props})
			}
		}
	}
	for _, m := range o.messages {
		items = append(items, Utterance{Text: m, Props: base})
	}
	if len(items) == 0 {
		return
	}

	if r.speechEnabled() {
		for _, u := range items {
			r.sink.Speak(u.Text, u.Props)
		}
	}
	if text := o.Text(); text != "" {
		r.sink.Braille(text)
	}
}

func (o *Output) description() string {
	if o.rng == nil || !o.rng.IsValid() {
		return ""
	}
	rng := *o.rng
	if rng.Start.Node != rng.End.Node {
		return spanText(rng)
	}
	if !rng.Start.IsWholeNode() {
		return rng.Text()
	}

	n := rng.Start.Node
	var parts []string
	if o.kind == EventNavigate && o.prev != nil && o.prev.IsValid() {
		parts = append(parts, o.contexts(n, o.prev.Start.Node)...)
	}
	if n.State().Has(tree.StateEditable) {
		parts = appendNonEmpty(parts, n.Name(), n.Value())
	} else {
		parts = appendNonEmpty(parts, tree.Text(n))
		if n.Name() != "" {
			parts = appendNonEmpty(parts, n.Value())
		}
	}
	parts = appendNonEmpty(parts, o.r.roleText(n))
	parts = append(parts, o.r.stateText(n)...)
	if o.hints && o.kind != EventSelection {
		parts = appendNonEmpty(parts, o.r.hintText(n))
	}
	return strings.Join(parts, ", ")
}

// contexts describes the containers entered when moving from prev to n.
func (o *Output) contexts(n, prev tree.Node) []string {
	var out []string
	anc := tree.Ancestors(n)
	for i := len(anc) - 1; i >= 0; i-- {
		a := anc[i]
		if !contextRoles[a.Role()] || a == prev || tree.IsAncestor(a, prev) {
			continue
		}
		out = appendNonEmpty(out, o.r.roleText(a))
	}
	return out
}

// spanText returns the text between the ends of a multi-node range.
func spanText(rng cursor.Range) string {
	rng = rng.Normalize()
	var parts []string
	for cur := rng.Start.Node; cur != nil; cur = tree.Next(cur, nil) {
		if tree.IsLeaf(cur) {
			text := tree.Text(cur)
			if cur == rng.End.Node && !rng.End.IsWholeNode() && rng.End.Offset <= len(text) {
				text = text[:rng.End.Offset]
			}
			if cur == rng.Start.Node && !rng.Start.IsWholeNode() && rng.Start.Offset <= len(text) {
				text = text[rng.Start.Offset:]
			}
			parts = appendNonEmpty(parts, text)
		}
		if cur == rng.End.Node {
			break
		}
	}
	return strings.Join(parts, " ")
}

func appendNonEmpty(parts []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}

var phonetics = map[rune]string{
	'a': "alpha", 'b': "bravo", 'c': "charlie", 'd': "delta", 'e': "echo",
	'f': "foxtrot", 'g': "golf", 'h': "hotel", 'i': "india", 'j': "juliett",
	'k': "kilo", 'l': "lima", 'm': "mike", 'n': "november", 'o': "oscar",
	'p': "papa", 'q': "quebec", 'r': "romeo", 's': "sierra", 't': "tango",
	'u': "uniform", 'v': "victor", 'w': "whiskey", 'x': "x-ray", 'y': "yankee",
	'z': "zulu",
}

// phoneticWord returns the phonetic alphabet word for a single letter.
func phoneticWord(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return ""
	}
	return phonetics[unicode.ToLower(r)]
}

// Phonetic spells the letters of text with the phonetic alphabet. Other
// characters are kept as they are.
func Phonetic(text string) string {
	var words []string
	for _, r := range text {
		if w, ok := phonetics[unicode.ToLower(r)]; ok {
			words = append(words, w)
		} else if !unicode.IsSpace(r) {
			words = append(words, string(r))
		}
	}
	return strings.Join(words, " ")
}
