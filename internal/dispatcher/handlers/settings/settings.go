package settings

import (
	"math"
	"strings"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/prefs"
)

// Page names passed to handler.PageOpener.
const (
	PageOptions   = "options"
	PageLearnMode = "learn_mode"
	PageLog       = "log"
)

const timeLayout = "3:04 PM, Monday January 2, 2006"

// toggle describes a boolean preference and its announcements.
type toggle struct {
	key     prefs.Key
	on, off output.MsgKey
}

var toggles = map[command.Command]toggle{
	command.ToggleStickyMode:        {prefs.StickyMode, output.MsgStickyOn, output.MsgStickyOff},
	command.ToggleEarcons:           {prefs.Earcons, output.MsgEarconsOn, output.MsgEarconsOff},
	command.ToggleBrailleCaptions:   {prefs.BrailleCaptions, output.MsgBrailleCaptionsOn, output.MsgBrailleCaptionsOff},
	command.ToggleLanguageSwitching: {prefs.LanguageSwitching, output.MsgLangSwitchOn, output.MsgLangSwitchOff},
	command.ToggleReadOnlyEditing:   {prefs.ReadOnlyEditing, output.MsgReadOnlyOn, output.MsgReadOnlyOff},
}

// step describes a ranged speech preference.
type step struct {
	key   prefs.Key
	delta int
	msg   output.MsgKey
}

var steps = map[command.Command]step{
	command.IncreaseTtsRate:   {prefs.Rate, 1, output.MsgRate},
	command.DecreaseTtsRate:   {prefs.Rate, -1, output.MsgRate},
	command.IncreaseTtsPitch:  {prefs.Pitch, 1, output.MsgPitch},
	command.DecreaseTtsPitch:  {prefs.Pitch, -1, output.MsgPitch},
	command.IncreaseTtsVolume: {prefs.Volume, 1, output.MsgVolume},
	command.DecreaseTtsVolume: {prefs.Volume, -1, output.MsgVolume},
}

type cycle struct {
	key prefs.Key
	msg output.MsgKey
}

var cycles = map[command.Command]cycle{
	command.CycleTypingEcho:      {prefs.TypingEcho, output.MsgTypingEcho},
	command.CyclePunctuationEcho: {prefs.PunctuationEcho, output.MsgPunctuationEcho},
	command.ToggleBrailleTable:   {prefs.BrailleTable, output.MsgBrailleTable},
}

var pages = map[command.Command]struct {
	name string
	msg  output.MsgKey
}{
	command.ShowOptionsPage:   {PageOptions, output.MsgOpenOptions},
	command.ShowLearnModePage: {PageLearnMode, output.MsgOpenLearnMode},
	command.ShowLogPage:       {PageLog, output.MsgOpenLog},
}

// Handler handles state-only commands.
type Handler struct{}

// New creates a settings handler.
func New() *Handler {
	return &Handler{}
}

// Priority implements handler.Handler.
func (h *Handler) Priority() int { return 0 }

// Commands implements handler.Set.
func (h *Handler) Commands() []command.Command {
	var out []command.Command
	for _, c := range command.All() {
		if c.Tier() == command.TierStateOnly {
			out = append(out, c)
		}
	}
	return out
}

// Handle implements handler.Handler.
func (h *Handler) Handle(ctx *handler.Context) handler.Result {
	c := ctx.Command
	if t, ok := toggles[c]; ok {
		return h.toggle(ctx, t)
	}
	if s, ok := steps[c]; ok {
		return h.step(ctx, s)
	}
	if cy, ok := cycles[c]; ok {
		return h.cycle(ctx, cy)
	}
	if p, ok := pages[c]; ok {
		ctx.Announce(p.msg)
		if ctx.Services.Pages != nil {
			ctx.Services.Pages.OpenPage(p.name)
		}
		return handler.Success()
	}

	switch c {
	case command.ToggleSpeechOnOrOff:
		return h.toggleSpeech(ctx)
	case command.AnnounceBatteryDescription:
		if b := ctx.Services.Battery; b != nil {
			if desc, ok := b.BatteryDescription(); ok {
				ctx.Output.New().WithString(desc).Go()
				return handler.Success()
			}
		}
		ctx.Announce(output.MsgBatteryUnknown)
		return handler.Success()
	case command.SpeakTimeAndDate:
		ctx.Announce(output.MsgTime, ctx.Now().Format(timeLayout))
		return handler.Success()
	case command.AnnounceVersion:
		ctx.Announce(output.MsgVersion, ctx.Services.Version)
		return handler.Success()
	case command.StopSpeech:
		if !ctx.State.ReadingContinuously() {
			return handler.NoOp()
		}
		ctx.State.SetReadingContinuously(false)
		ctx.Announce(output.MsgReadingStopped)
		return handler.Success()
	case command.CloseGuidedFlow:
		if ctx.Services.Flows == nil || !ctx.Services.Flows.CloseFlow() {
			ctx.Announce(output.MsgNoFlow)
			return handler.NoOp()
		}
		ctx.Announce(output.MsgFlowClosed)
		return handler.Success()
	}
	return handler.Errorf("settings: unhandled command %s", c)
}

func (h *Handler) toggle(ctx *handler.Context, t toggle) handler.Result {
	v, err := ctx.Prefs.Toggle(t.key)
	if err != nil {
		return handler.Error(err)
	}
	if v {
		ctx.Announce(t.on)
	} else {
		ctx.Announce(t.off)
	}
	return handler.Success()
}

// toggleSpeech announces before muting and after unmuting so the change is
// always heard.
func (h *Handler) toggleSpeech(ctx *handler.Context) handler.Result {
	if ctx.Prefs.Bool(prefs.SpeechEnabled) {
		ctx.Announce(output.MsgSpeechOff)
		if err := ctx.Prefs.SetBool(prefs.SpeechEnabled, false); err != nil {
			return handler.Error(err)
		}
		return handler.Success()
	}
	if err := ctx.Prefs.SetBool(prefs.SpeechEnabled, true); err != nil {
		return handler.Error(err)
	}
	ctx.Announce(output.MsgSpeechOn)
	return handler.Success()
}

func (h *Handler) step(ctx *handler.Context, s step) handler.Result {
	v, _, err := ctx.Prefs.Step(s.key, s.delta)
	if err != nil {
		return handler.Error(err)
	}
	ctx.Announce(s.msg, int(math.Round(v*100)))
	return handler.Success()
}

func (h *Handler) cycle(ctx *handler.Context, cy cycle) handler.Result {
	if _, err := ctx.Prefs.Cycle(cy.key); err != nil {
		return handler.Error(err)
	}
	name := strings.ReplaceAll(ctx.Prefs.ChoiceName(cy.key), "_", " ")
	ctx.Announce(cy.msg, name)
	return handler.Success()
}
