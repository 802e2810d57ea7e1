package navstate

import (
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/tree"
)

// PageSelection returns the active page selection, or nil.
func (s *State) PageSelection() *cursor.Range {
	return s.pageSelection
}

// TogglePageSelection enters or exits page selection mode and reports
// whether selection mode is now active. Entering requires a current range.
func (s *State) TogglePageSelection() bool {
	if s.pageSelection == nil {
		cur := s.CurrentRange()
		if cur == nil {
			return false
		}
		sel := *cur
		s.pageSelection = &sel
		s.host.SetSelectionEventsSuppressed(true)
		s.host.SetSelection(toHostSelection(sel))
		s.out.New().WithEarcon(output.EarconSelectionStart).Format(output.MsgBeginSelection).Go()
		return true
	}

	o := s.out.New().WithEarcon(output.EarconSelectionEnd)
	if live, ok := s.host.Selection(); ok && live.Anchor != nil && live.Focus != nil {
		rng := cursor.NewRange(
			cursor.New(live.Anchor, live.AnchorOffset),
			cursor.New(live.Focus, live.FocusOffset),
		).Normalize()
		o = o.WithRichSpeechAndBraille(&rng, nil, output.EventSelection)
	}
	o.Format(output.MsgEndSelection).Go()

	s.host.SetSelectionEventsSuppressed(false)
	s.pageSelection = nil
	return false
}

// extendPageSelection moves the selection focus to the end of r.
func (s *State) extendPageSelection(r cursor.Range) {
	ext := cursor.NewRange(s.pageSelection.Start, r.End)
	s.pageSelection = &ext
	s.host.SetSelection(toHostSelection(ext))
}

func toHostSelection(r cursor.Range) tree.Selection {
	anchorOffset := r.Start.Offset
	if r.Start.IsWholeNode() {
		anchorOffset = 0
	}
	focusOffset := r.End.Offset
	if r.End.IsWholeNode() {
		focusOffset = len(tree.Text(r.End.Node))
	}
	return tree.Selection{
		Anchor:       r.Start.Node,
		AnchorOffset: anchorOffset,
		Focus:        r.End.Node,
		FocusOffset:  focusOffset,
	}
}
