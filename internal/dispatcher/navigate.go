package dispatcher

import (
	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/predicate"
	"github.com/dshills/voxnav/internal/tree"
)

// Outcome is the result of planning a navigation.
type Outcome uint8

const (
	// OutcomeReady means the plan has a target.
	OutcomeReady Outcome = iota
	// OutcomeNoTarget means nothing matched; the miss was announced.
	OutcomeNoTarget
	// OutcomeNoRange means there is no valid current range to start from.
	OutcomeNoRange
	// OutcomeNotNavigation means the command has no navigation descriptor.
	OutcomeNotNavigation
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeReady:
		return "ready"
	case OutcomeNoTarget:
		return "no-target"
	case OutcomeNoRange:
		return "no-range"
	case OutcomeNotNavigation:
		return "not-navigation"
	default:
		return "unknown"
	}
}

// Plan is a resolved navigation waiting to be applied.
type Plan struct {
	Command command.Command

	// From is the range the plan was resolved from.
	From cursor.Range

	// Target is the new current range. Target.Wrapped is set when the search
	// restarted from the opposite end of its root.
	Target cursor.Range

	Speech output.SpeechProps
}

// Plan resolves the navigation target of cmd from the current range without
// changing it. A miss is announced with the command's error message and
// reported as OutcomeNoTarget.
func (d *Dispatcher) Plan(cmd command.Command) (*Plan, Outcome) {
	if !cmd.IsNavigation() {
		return nil, OutcomeNotNavigation
	}
	cur := d.state.CurrentRange()
	if cur == nil {
		return nil, OutcomeNoRange
	}
	return d.plan(cmd, *cur)
}

// Execute applies p: it plays the wrap earcon for wrapped targets, makes the
// target current and describes it. A target invalidated since planning is
// resolved again from the current range. Execute reports whether the
// current range changed.
func (d *Dispatcher) Execute(p *Plan) bool {
	if p == nil {
		return false
	}
	if !p.Target.IsValid() {
		d.logger.Debug("plan for %s is stale, planning again", p.Command)
		fresh, outcome := d.Plan(p.Command)
		if outcome != OutcomeReady {
			return false
		}
		p = fresh
	}

	if p.Target.Wrapped {
		d.out.Earcon(output.EarconWrap)
	}
	prev := d.state.CurrentRange()
	target := p.Target
	d.state.SetCurrentRange(&target, false)
	d.out.New().
		WithRichSpeechAndBraille(&target, prev, output.EventNavigate).
		WithSpeechProps(p.Speech).
		Go()
	return true
}

func (d *Dispatcher) plan(cmd command.Command, cur cursor.Range) (*Plan, Outcome) {
	desc, ok := command.Lookup(cmd)
	if !ok {
		return nil, OutcomeNotNavigation
	}

	var (
		target cursor.Range
		found  bool
	)
	if desc.IsUnitMove() {
		target, found = d.resolveUnit(desc, cur)
	} else {
		var anchor tree.Node
		anchor, found = d.anchor(desc, cur)
		if !found {
			return nil, OutcomeNoTarget
		}
		target, found = d.resolvePredicate(desc, cur, anchor)
	}
	if !found {
		return nil, OutcomeNoTarget
	}

	return &Plan{Command: cmd, From: cur, Target: target, Speech: desc.Speech}, OutcomeReady
}

// anchor returns the node a predicate search is relative to. Table moves
// start from the enclosing cell; a range outside any table is announced.
func (d *Dispatcher) anchor(desc command.Descriptor, cur cursor.Range) (tree.Node, bool) {
	n := cur.Start.Node
	if desc.Predicate.Kind != predicate.KindTableCell {
		return n, true
	}
	cell := enclosingCell(n)
	if cell == nil {
		d.out.Announce(output.MsgNotInTable)
		return nil, false
	}
	return cell, true
}

func (d *Dispatcher) resolveUnit(desc command.Descriptor, cur cursor.Range) (cursor.Range, bool) {
	if next, ok := cur.Move(desc.Unit, desc.Dir); ok {
		return next, true
	}

	d.out.Earcon(output.EarconWrapEdge)
	if !d.wraps(desc) {
		d.miss(desc)
		return cursor.Range{}, false
	}
	bound := cur.Bound(desc.Dir).Node
	root := d.wrapRoot(bound)
	n := edgeMatch(root, desc.Dir, predicate.Func(predicate.Object, nil))
	if n == nil {
		d.miss(desc)
		return cursor.Range{}, false
	}
	return cursor.FromNode(cursor.OutermostObject(n, root)).WithWrapped(true), true
}

func (d *Dispatcher) resolvePredicate(desc command.Descriptor, cur cursor.Range, anchor tree.Node) (cursor.Range, bool) {
	p := desc.Predicate
	if p.Kind == predicate.KindSameRole {
		p = predicate.SameRole(anchor.Role())
	}
	match := predicate.Func(p, anchor)
	root := searchRoot(desc.Root, anchor)

	bound := cur.Bound(desc.Dir).Node
	if p.Kind == predicate.KindTableCell {
		bound = anchor
	}

	var n tree.Node
	if desc.Edge {
		n = edgeMatch(root, desc.Dir, match)
	} else {
		n = tree.FindNext(bound, desc.Dir, match, tree.FindOptions{Root: root, SkipInitialSubtree: true})
	}

	wrapped := false
	if n == nil {
		d.out.Earcon(output.EarconWrapEdge)
		if desc.Edge || !d.wraps(desc) {
			d.miss(desc)
			return cursor.Range{}, false
		}
		n = edgeMatch(d.wrapRoot(bound), desc.Dir, match)
		if n == nil {
			d.miss(desc)
			return cursor.Range{}, false
		}
		wrapped = true
	}

	if p.Kind == predicate.KindObject {
		n = cursor.OutermostObject(n, tree.DocumentRoot(n))
	}
	if desc.SyncToObject && d.config.SyncToObject {
		n = syncToObject(n)
	}
	return cursor.FromNode(n).WithWrapped(wrapped), true
}

func (d *Dispatcher) wraps(desc command.Descriptor) bool {
	return desc.Wrap && d.config.Wrap
}

// miss announces that no target exists.
func (d *Dispatcher) miss(desc command.Descriptor) {
	if desc.ErrorArg != 0 {
		d.out.Announce(desc.Error, desc.ErrorArg)
		return
	}
	d.out.Announce(desc.Error)
}

// wrapRoot is the boundary a wrapped search restarts within: the nearest
// root or editable root above bound. Starting above bound keeps a search
// from a text field itself from wrapping inside that field. When bound has
// no such ancestor (a detached subtree) the search falls back to its
// topmost ancestor, which is logged because it widens the search beyond any
// known document.
func (d *Dispatcher) wrapRoot(bound tree.Node) tree.Node {
	if p := bound.Parent(); p != nil {
		if root := predicate.EnclosingRoot(predicate.RootOrEditableRoot, p); root != nil {
			return root
		}
	}
	root := tree.DocumentRoot(bound)
	d.logger.Debug("no root above %s, wrapping within %s", bound.ID(), root.ID())
	return root
}

// searchRoot returns the nearest ancestor of anchor matching rootPred, or the
// document root.
func searchRoot(rootPred predicate.Predicate, anchor tree.Node) tree.Node {
	if root := predicate.EnclosingRoot(rootPred, anchor); root != nil {
		return root
	}
	return tree.DocumentRoot(anchor)
}

// edgeMatch returns the first (Forward) or last (Backward) descendant of
// root that satisfies match.
func edgeMatch(root tree.Node, dir tree.Dir, match func(tree.Node) bool) tree.Node {
	if root == nil {
		return nil
	}
	if dir == tree.Forward {
		return tree.FindNext(root, tree.Forward, match, tree.FindOptions{Root: root})
	}
	for n := tree.LastDescendant(root); n != nil && n != root; n = tree.Prev(n, root) {
		if match(n) {
			return n
		}
	}
	return nil
}

// syncToObject returns n when it is an object, else the first object inside
// it, else n.
func syncToObject(n tree.Node) tree.Node {
	if predicate.Match(predicate.Object, n, nil) {
		return n
	}
	isObject := predicate.Func(predicate.Object, nil)
	if o := tree.FindNext(n, tree.Forward, isObject, tree.FindOptions{Root: n}); o != nil {
		return o
	}
	return n
}

func enclosingCell(n tree.Node) tree.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if _, _, ok := cur.TableCell(); ok {
			return cur
		}
	}
	return nil
}
