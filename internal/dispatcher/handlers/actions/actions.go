package actions

import (
	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/cursor"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/tree"
)

// Handler handles range actions.
type Handler struct{}

// New creates a range action handler.
func New() *Handler {
	return &Handler{}
}

// Priority implements handler.Handler.
func (h *Handler) Priority() int { return 0 }

// Commands implements handler.Set.
func (h *Handler) Commands() []command.Command {
	return []command.Command{
		command.ForceClickOnCurrentItem,
		command.ReadFromHere,
		command.ToggleSelection,
		command.ReadCurrentTitle,
		command.ReadCurrentURL,
		command.ReadLinkURL,
		command.FullyDescribe,
		command.ReadPhoneticPronunciation,
		command.SpeakCurrentRange,
	}
}

// Handle implements handler.Handler.
func (h *Handler) Handle(ctx *handler.Context) handler.Result {
	if ctx.Range == nil {
		return handler.Propagate()
	}
	rng := *ctx.Range
	node := rng.Start.Node

	switch ctx.Command {
	case command.ForceClickOnCurrentItem:
		ctx.Host.DoDefault(node)
		ctx.Output.Earcon(output.EarconObjectSelect)
	case command.ReadFromHere:
		h.readFromHere(ctx, rng)
	case command.ToggleSelection:
		ctx.State.TogglePageSelection()
	case command.ReadCurrentTitle:
		root := tree.DocumentRoot(node)
		if root == nil || root.Name() == "" {
			return handler.NoOp()
		}
		ctx.Announce(output.MsgTitle, root.Name())
	case command.ReadCurrentURL:
		root := tree.DocumentRoot(node)
		if root == nil || root.DocURL() == "" {
			ctx.Announce(output.MsgNoURL)
			return handler.NoOp()
		}
		ctx.Output.New().WithString(root.DocURL()).Go()
	case command.ReadLinkURL:
		link := enclosingLink(node)
		if link == nil || link.DocURL() == "" {
			ctx.Announce(output.MsgNoURL)
			return handler.NoOp()
		}
		ctx.Announce(output.MsgURL, link.DocURL())
	case command.FullyDescribe:
		ctx.Output.New().WithRichSpeechAndBraille(&rng, nil, output.EventNavigate).Go()
	case command.ReadPhoneticPronunciation:
		text := rng.Text()
		if text == "" {
			return handler.NoOp()
		}
		ctx.Output.New().WithString(output.Phonetic(text)).Go()
	case command.SpeakCurrentRange:
		ctx.Output.New().WithRichSpeechAndBraille(&rng, nil, output.EventNavigate).WithoutHints().Go()
	default:
		return handler.Errorf("actions: unhandled command %s", ctx.Command)
	}
	return handler.Success()
}

// readFromHere reads object by object to the end of the document, moving the
// current range along. Reading stops early when a range observer clears the
// reading flag.
func (h *Handler) readFromHere(ctx *handler.Context, rng cursor.Range) {
	ctx.State.SetReadingContinuously(true)
	defer ctx.State.SetReadingContinuously(false)

	prev := ctx.State.PreviousRange()
	for ctx.State.ReadingContinuously() {
		r := rng
		ctx.State.SetCurrentRange(&r, false)
		ctx.Output.New().WithRichSpeechAndBraille(&r, prev, output.EventNavigate).WithoutHints().Go()
		next, ok := rng.Move(cursor.UnitNode, tree.Forward)
		if !ok {
			return
		}
		prev = &r
		rng = next
	}
}

func enclosingLink(n tree.Node) tree.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Role() == tree.RoleLink {
			return cur
		}
	}
	return nil
}
