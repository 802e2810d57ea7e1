package main

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/output"
)

// maxLines bounds the scrollback kept by the view.
const maxLines = 500

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// convertMod maps terminal modifiers. Terminals have no Search key, so Alt
// stands in for it and Meta becomes Alt.
func convertMod(m tcell.ModMask) key.Modifier {
	mods := key.ModNone
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModSearch)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModAlt)
	}
	return mods
}

// convertKey normalises a terminal key press. Ctrl+Alt+z is passed through
// unchanged as the close combination.
func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	k := ev.Key()
	m := ev.Modifiers()

	if k == tcell.KeyCtrlZ && m&tcell.ModAlt != 0 {
		return key.CloseSequence().Events[0], true
	}

	mods := convertMod(m)
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return key.NewSpecialEvent(key.KeySpace, mods), true
		}
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		return key.NewRuneEvent(unicode.ToLower(r), mods), true
	case k == tcell.KeyCtrlSpace:
		return key.NewSpecialEvent(key.KeySpace, mods.With(key.ModCtrl)), true
	case k == tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift)), true
	}

	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + int(k-tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}

// isQuit reports whether ev ends the demo.
func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyCtrlQ
}

type line struct {
	text  string
	style tcell.Style
}

// view shows speech, braille, earcons and log lines on a tcell screen. It
// implements output.Sink and handler.PageOpener.
type view struct {
	mu     sync.Mutex
	screen tcell.Screen
	title  string
	lines  []line
}

var (
	titleStyle   = tcell.StyleDefault.Reverse(true)
	speechStyle  = tcell.StyleDefault.Bold(true)
	brailleStyle = tcell.StyleDefault.Foreground(tcell.ColorTeal)
	earconStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	hostStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	logStyle     = tcell.StyleDefault.Dim(true)
)

func newView(screen tcell.Screen, title string) *view {
	return &view{screen: screen, title: title}
}

func (v *view) add(style tcell.Style, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	v.mu.Lock()
	for _, part := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		v.lines = append(v.lines, line{text: part, style: style})
	}
	if over := len(v.lines) - maxLines; over > 0 {
		v.lines = append(v.lines[:0:0], v.lines[over:]...)
	}
	v.mu.Unlock()
	v.draw()
}

// Speak implements output.Sink.
func (v *view) Speak(text string, props output.SpeechProps) {
	if props.Lang != "" {
		v.add(speechStyle, "speak [%s]: %s", props.Lang, text)
		return
	}
	v.add(speechStyle, "speak: %s", text)
}

// Braille implements output.Sink.
func (v *view) Braille(text string) { v.add(brailleStyle, "braille: %s", text) }

// Earcon implements output.Sink.
func (v *view) Earcon(e output.Earcon) { v.add(earconStyle, "earcon: %s", e) }

// Thaw implements output.Sink.
func (v *view) Thaw() {}

// ClearFocusBounds implements output.Sink.
func (v *view) ClearFocusBounds() {}

// OpenPage implements handler.PageOpener.
func (v *view) OpenPage(name string) { v.add(hostStyle, "host: open %s page", name) }

// Host prints a line on behalf of the demo host.
func (v *view) Host(format string, args ...any) { v.add(hostStyle, "host: "+format, args...) }

// Write receives log output.
func (v *view) Write(p []byte) (int, error) {
	v.add(logStyle, "%s", p)
	return len(p), nil
}

// draw renders the title bar and as many recent lines as fit.
func (v *view) draw() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.screen.Clear()
	width, height := v.screen.Size()
	if height == 0 {
		return
	}
	drawText(v.screen, 0, 0, width, v.title, titleStyle)

	rows := height - 1
	start := 0
	if len(v.lines) > rows {
		start = len(v.lines) - rows
	}
	for i, l := range v.lines[start:] {
		drawText(v.screen, 0, i+1, width, l.text, l.style)
	}
	v.screen.Show()
}

// drawText writes s one grapheme cluster at a time, clipped to width.
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if x+w > width {
			return
		}
		runes := g.Runes()
		var comb []rune
		if len(runes) > 1 {
			comb = runes[1:]
		}
		s.SetContent(x, y, runes[0], comb, style)
		x += w
	}
}
