package output

import (
	"fmt"
	"io"
	"sync"
)

// SpeechProps are per-utterance speech parameters. Zero numeric values mean
// "use the preference".
type SpeechProps struct {
	Lang     string
	Voice    string
	Rate     float64
	Pitch    float64
	Volume   float64
	Phonetic bool
}

// merge overlays the non-zero fields of o onto p.
func (p SpeechProps) merge(o SpeechProps) SpeechProps {
	if o.Lang != "" {
		p.Lang = o.Lang
	}
	if o.Voice != "" {
		p.Voice = o.Voice
	}
	if o.Rate != 0 {
		p.Rate = o.Rate
	}
	if o.Pitch != 0 {
		p.Pitch = o.Pitch
	}
	if o.Volume != 0 {
		p.Volume = o.Volume
	}
	p.Phonetic = p.Phonetic || o.Phonetic
	return p
}

// Sink is the host's speech, braille and sound output.
type Sink interface {
	Speak(text string, props SpeechProps)
	Braille(text string)
	Earcon(e Earcon)
	// Thaw releases a frozen braille display.
	Thaw()
	// ClearFocusBounds removes visual focus highlighting.
	ClearFocusBounds()
}

// Utterance is one recorded Speak call.
type Utterance struct {
	Text  string
	Props SpeechProps
}

// Recorder is a Sink that records everything it receives.
type Recorder struct {
	mu sync.Mutex

	Utterances         []Utterance
	BrailleLines       []string
	Earcons            []Earcon
	Thaws              int
	FocusBoundsCleared int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Speak(text string, props SpeechProps) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Utterances = append(r.Utterances, Utterance{Text: text, Props: props})
}

func (r *Recorder) Braille(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BrailleLines = append(r.BrailleLines, text)
}

func (r *Recorder) Earcon(e Earcon) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Earcons = append(r.Earcons, e)
}

func (r *Recorder) Thaw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Thaws++
}

func (r *Recorder) ClearFocusBounds() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FocusBoundsCleared++
}

// Spoken returns the text of every utterance in order.
func (r *Recorder) Spoken() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Utterances))
	for i, u := range r.Utterances {
		out[i] = u.Text
	}
	return out
}

// Last returns the most recent utterance text, or "".
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Utterances) == 0 {
		return ""
	}
	return r.Utterances[len(r.Utterances)-1].Text
}

// Reset clears all recorded output.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Utterances = nil
	r.BrailleLines = nil
	r.Earcons = nil
	r.Thaws = 0
	r.FocusBoundsCleared = 0
}

// LogSink writes output as text lines, one per call.
type LogSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogSink creates a sink writing to w.
func NewLogSink(w io.Writer) *LogSink {
	return &LogSink{w: w}
}

func (s *LogSink) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.w, format+"\n", args...)
}

func (s *LogSink) Speak(text string, props SpeechProps) {
	if props.Lang != "" {
		s.printf("speak [%s]: %s", props.Lang, text)
		return
	}
	s.printf("speak: %s", text)
}

func (s *LogSink) Braille(text string) { s.printf("braille: %s", text) }
func (s *LogSink) Earcon(e Earcon)     { s.printf("earcon: %s", e) }
func (s *LogSink) Thaw()               {}
func (s *LogSink) ClearFocusBounds()   {}
