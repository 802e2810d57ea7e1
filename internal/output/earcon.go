package output

// Earcon is a short non-speech sound.
type Earcon int

const (
	EarconNone Earcon = iota
	EarconWrap
	EarconWrapEdge
	EarconObjectSelect
	EarconNoPointerAnchor
	EarconAlert
	EarconSelectionStart
	EarconSelectionEnd
)

var earconNames = [...]string{
	EarconNone:            "none",
	EarconWrap:            "wrap",
	EarconWrapEdge:        "wrap_edge",
	EarconObjectSelect:    "object_select",
	EarconNoPointerAnchor: "no_pointer_anchor",
	EarconAlert:           "alert",
	EarconSelectionStart:  "selection_start",
	EarconSelectionEnd:    "selection_end",
}

// String returns the earcon name.
func (e Earcon) String() string {
	if e >= 0 && int(e) < len(earconNames) {
		return earconNames[e]
	}
	return "unknown"
}
