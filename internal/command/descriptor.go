package command

import (
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/predicate"
	"github.com/dshills/voxnav/internal/tree"
)

// Descriptor is the navigation policy of a command.
type Descriptor struct {
	Dir tree.Dir

	// Predicate selects the target node. The zero predicate means a unit
	// move of Unit.
	Predicate predicate.Predicate
	Unit      cursor.Unit

	// Wrap allows restarting the search from the opposite end of the
	// enclosing root when nothing matches.
	Wrap bool

	// Root bounds the search.
	Root predicate.Predicate

	// SyncToObject re-resolves a non-object result to the first object
	// inside it.
	SyncToObject bool

	// Edge resolves to the first (Forward) or last (Backward) match within
	// Root instead of searching from the current range.
	Edge bool

	// Error is the message key announced when no target exists. ErrorArg is
	// passed to it when non-zero.
	Error    output.MsgKey
	ErrorArg int

	Speech output.SpeechProps
}

// IsUnitMove reports whether d moves by unit rather than by predicate.
func (d Descriptor) IsUnitMove() bool {
	return d.Predicate.IsZero()
}

// Lookup returns the navigation descriptor of c.
func Lookup(c Command) (Descriptor, bool) {
	d, ok := descriptors[c]
	return d, ok
}

func unit(dir tree.Dir, u cursor.Unit, wrap bool, errKey output.MsgKey, speech output.SpeechProps) Descriptor {
	return Descriptor{Dir: dir, Unit: u, Wrap: wrap, Root: predicate.Root, Error: errKey, Speech: speech}
}

func pred(dir tree.Dir, p predicate.Predicate, errKey output.MsgKey) Descriptor {
	return Descriptor{Dir: dir, Predicate: p, Wrap: true, Root: predicate.Root, SyncToObject: true, Error: errKey}
}

// container is a predicate move whose target is announced as a whole.
func container(dir tree.Dir, p predicate.Predicate, errKey output.MsgKey) Descriptor {
	d := pred(dir, p, errKey)
	d.SyncToObject = false
	return d
}

func heading(dir tree.Dir, level int) Descriptor {
	var errKey output.MsgKey = output.MsgNoNextHeadingLevel
	if dir == tree.Backward {
		errKey = output.MsgNoPrevHeadingLevel
	}
	d := pred(dir, predicate.HeadingOfLevel(level), errKey)
	d.ErrorArg = level
	return d
}

func cell(move predicate.CellMove, errKey output.MsgKey) Descriptor {
	return Descriptor{
		Dir:       move.Dir,
		Predicate: predicate.TableCell(move),
		Root:      predicate.Table,
		Error:     errKey,
	}
}

func tableEdge(dir tree.Dir) Descriptor {
	return Descriptor{Dir: dir, Predicate: predicate.AnyCell, Root: predicate.Table, Edge: true, Error: output.MsgNotInTable}
}

var phonetic = output.SpeechProps{Phonetic: true}

var descriptors = map[Command]Descriptor{
	NextObject:        unit(tree.Forward, cursor.UnitNode, true, output.MsgNoNextObject, output.SpeechProps{}),
	PreviousObject:    unit(tree.Backward, cursor.UnitNode, true, output.MsgNoPrevObject, output.SpeechProps{}),
	NextCharacter:     unit(tree.Forward, cursor.UnitCharacter, false, output.MsgNoNextCharacter, phonetic),
	PreviousCharacter: unit(tree.Backward, cursor.UnitCharacter, false, output.MsgNoPrevCharacter, phonetic),
	NextWord:          unit(tree.Forward, cursor.UnitWord, false, output.MsgNoNextWord, output.SpeechProps{}),
	PreviousWord:      unit(tree.Backward, cursor.UnitWord, false, output.MsgNoPrevWord, output.SpeechProps{}),
	NextLine:          unit(tree.Forward, cursor.UnitLine, false, output.MsgNoNextLine, output.SpeechProps{}),
	PreviousLine:      unit(tree.Backward, cursor.UnitLine, false, output.MsgNoPrevLine, output.SpeechProps{}),

	JumpToTop:    {Dir: tree.Forward, Predicate: predicate.Object, Root: predicate.Root, Edge: true, Error: output.MsgNoNextObject},
	JumpToBottom: {Dir: tree.Backward, Predicate: predicate.Object, Root: predicate.Root, Edge: true, Error: output.MsgNoPrevObject},

	NextGroup:     container(tree.Forward, predicate.Group, output.MsgNoNextGroup),
	PreviousGroup: container(tree.Backward, predicate.Group, output.MsgNoPrevGroup),

	NextHeading:      pred(tree.Forward, predicate.Heading, output.MsgNoNextHeading),
	PreviousHeading:  pred(tree.Backward, predicate.Heading, output.MsgNoPrevHeading),
	NextHeading1:     heading(tree.Forward, 1),
	PreviousHeading1: heading(tree.Backward, 1),
	NextHeading2:     heading(tree.Forward, 2),
	PreviousHeading2: heading(tree.Backward, 2),
	NextHeading3:     heading(tree.Forward, 3),
	PreviousHeading3: heading(tree.Backward, 3),
	NextHeading4:     heading(tree.Forward, 4),
	PreviousHeading4: heading(tree.Backward, 4),
	NextHeading5:     heading(tree.Forward, 5),
	PreviousHeading5: heading(tree.Backward, 5),
	NextHeading6:     heading(tree.Forward, 6),
	PreviousHeading6: heading(tree.Backward, 6),

	NextLink:            pred(tree.Forward, predicate.Link, output.MsgNoNextLink),
	PreviousLink:        pred(tree.Backward, predicate.Link, output.MsgNoPrevLink),
	NextVisitedLink:     pred(tree.Forward, predicate.VisitedLink, output.MsgNoNextVisitedLink),
	PreviousVisitedLink: pred(tree.Backward, predicate.VisitedLink, output.MsgNoPrevVisitedLink),
	NextButton:          pred(tree.Forward, predicate.Button, output.MsgNoNextButton),
	PreviousButton:      pred(tree.Backward, predicate.Button, output.MsgNoPrevButton),
	NextCheckbox:        pred(tree.Forward, predicate.Checkbox, output.MsgNoNextCheckbox),
	PreviousCheckbox:    pred(tree.Backward, predicate.Checkbox, output.MsgNoPrevCheckbox),
	NextComboBox:        pred(tree.Forward, predicate.ComboBox, output.MsgNoNextComboBox),
	PreviousComboBox:    pred(tree.Backward, predicate.ComboBox, output.MsgNoPrevComboBox),
	NextEditText:        pred(tree.Forward, predicate.EditText, output.MsgNoNextEditText),
	PreviousEditText:    pred(tree.Backward, predicate.EditText, output.MsgNoPrevEditText),
	NextFormField:       pred(tree.Forward, predicate.FormField, output.MsgNoNextFormField),
	PreviousFormField:   pred(tree.Backward, predicate.FormField, output.MsgNoPrevFormField),
	NextGraphic:         pred(tree.Forward, predicate.Graphic, output.MsgNoNextGraphic),
	PreviousGraphic:     pred(tree.Backward, predicate.Graphic, output.MsgNoPrevGraphic),
	NextInvalidItem:     pred(tree.Forward, predicate.InvalidItem, output.MsgNoNextInvalid),
	PreviousInvalidItem: pred(tree.Backward, predicate.InvalidItem, output.MsgNoPrevInvalid),
	NextSimilarItem:     pred(tree.Forward, predicate.SameRole(""), output.MsgNoNextSame),
	PreviousSimilarItem: pred(tree.Backward, predicate.SameRole(""), output.MsgNoPrevSame),

	NextLandmark:     container(tree.Forward, predicate.Landmark, output.MsgNoNextLandmark),
	PreviousLandmark: container(tree.Backward, predicate.Landmark, output.MsgNoPrevLandmark),
	NextList:         container(tree.Forward, predicate.List, output.MsgNoNextList),
	PreviousList:     container(tree.Backward, predicate.List, output.MsgNoPrevList),
	NextTable:        container(tree.Forward, predicate.Table, output.MsgNoNextTable),
	PreviousTable:    container(tree.Backward, predicate.Table, output.MsgNoPrevTable),
	NextMath:         container(tree.Forward, predicate.Math, output.MsgNoNextMath),
	PreviousMath:     container(tree.Backward, predicate.Math, output.MsgNoPrevMath),

	NextRow:          cell(predicate.CellMove{Col: true, Dir: tree.Forward}, output.MsgNoCellBelow),
	PreviousRow:      cell(predicate.CellMove{Col: true, Dir: tree.Backward}, output.MsgNoCellAbove),
	NextCol:          cell(predicate.CellMove{Row: true, Dir: tree.Forward}, output.MsgNoCellRight),
	PreviousCol:      cell(predicate.CellMove{Row: true, Dir: tree.Backward}, output.MsgNoCellLeft),
	GoToRowFirstCell: cell(predicate.CellMove{Row: true, Dir: tree.Backward, End: true}, output.MsgNoCellLeft),
	GoToRowLastCell:  cell(predicate.CellMove{Row: true, Dir: tree.Forward, End: true}, output.MsgNoCellRight),
	GoToColFirstCell: cell(predicate.CellMove{Col: true, Dir: tree.Backward, End: true}, output.MsgNoCellAbove),
	GoToColLastCell:  cell(predicate.CellMove{Col: true, Dir: tree.Forward, End: true}, output.MsgNoCellBelow),
	GoToFirstCell:    tableEdge(tree.Forward),
	GoToLastCell:     tableEdge(tree.Backward),
}
