package output

import (
	"fmt"

	"golang.org/x/text/message"

	"github.com/dshills/voxnav/internal/locale"
	"github.com/dshills/voxnav/internal/logging"
	"github.com/dshills/voxnav/internal/prefs"
	"github.com/dshills/voxnav/internal/tree"
)

// Renderer turns announcements into Sink calls.
type Renderer struct {
	sink    Sink
	prefs   *prefs.Prefs
	voices  *locale.Selector
	printer *message.Printer
	logger  *logging.Logger

	// noticed records languages whose missing voice was already announced.
	noticed map[string]bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPrefs reads earcon, speech, rate, pitch, volume and language switching
// preferences from p.
func WithPrefs(p *prefs.Prefs) Option {
	return func(r *Renderer) { r.prefs = p }
}

// WithVoices sets the voice selector used for language switching. Its UI
// locale also selects the message language.
func WithVoices(s *locale.Selector) Option {
	return func(r *Renderer) { r.voices = s }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer creates a renderer writing to sink.
func NewRenderer(sink Sink, opts ...Option) *Renderer {
	r := &Renderer{
		sink:    sink,
		logger:  logging.Nop(),
		noticed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.voices == nil {
		r.voices, _ = locale.NewSelector("en", nil)
	}
	r.printer = newPrinter(catalogTag(r.voices.UILocale()), newCatalog())
	return r
}

// Sink returns the underlying sink.
func (r *Renderer) Sink() Sink {
	return r.sink
}

// Message formats a catalog message. Keys that are not in the catalog are
// treated as literal text.
func (r *Renderer) Message(key MsgKey, args ...any) string {
	if hasMessage(key) {
		return r.printer.Sprintf(string(key), args...)
	}
	if len(args) > 0 {
		return fmt.Sprintf(string(key), args...)
	}
	return string(key)
}

// Announce speaks and brailles a single message.
func (r *Renderer) Announce(key MsgKey, args ...any) {
	r.New().Format(key, args...).Go()
}

// Earcon plays e unless earcons are turned off.
func (r *Renderer) Earcon(e Earcon) {
	if e == EarconNone {
		return
	}
	if r.prefs != nil && !r.prefs.Bool(prefs.Earcons) {
		return
	}
	r.sink.Earcon(e)
}

// Thaw releases a frozen braille display.
func (r *Renderer) Thaw() {
	r.sink.Thaw()
}

// ClearFocusBounds removes visual focus highlighting.
func (r *Renderer) ClearFocusBounds() {
	r.sink.ClearFocusBounds()
}

func (r *Renderer) speechEnabled() bool {
	return r.prefs == nil || r.prefs.Bool(prefs.SpeechEnabled)
}

func (r *Renderer) baseProps() SpeechProps {
	v := r.voices.UIVoice()
	p := SpeechProps{Lang: v.Lang, Voice: v.Name, Rate: 1, Pitch: 1, Volume: 1}
	if r.prefs != nil {
		p.Rate = r.prefs.Float(prefs.Rate)
		p.Pitch = r.prefs.Float(prefs.Pitch)
		p.Volume = r.prefs.Float(prefs.Volume)
	}
	return p
}

// voiceFor applies language switching for n. The returned notice is non-empty
// the first time a language without a voice is encountered.
func (r *Renderer) voiceFor(n tree.Node, props SpeechProps) (SpeechProps, string) {
	if r.prefs == nil || !r.prefs.Bool(prefs.LanguageSwitching) {
		return props, ""
	}
	lang := nodeLang(n)
	if lang == "" {
		return props, ""
	}
	v, fallback := r.voices.VoiceFor(lang)
	props.Lang, props.Voice = v.Lang, v.Name
	if fallback && !r.noticed[lang] {
		r.noticed[lang] = true
		r.logger.Info("no voice for language %s, using %s", lang, v.Name)
		return props, r.Message(MsgVoiceUnavailable, lang)
	}
	return props, ""
}

// nodeLang returns the nearest declared language of n or its ancestors.
func nodeLang(n tree.Node) string {
	for cur := n; cur != nil; cur = cur.Parent() {
		if l := cur.Lang(); l != "" {
			return l
		}
	}
	return ""
}
