// Package locale picks a speech voice for a document language.
//
// Matching uses golang.org/x/text/language so "en-GB" text can be spoken by
// an "en-US" voice while "ja" text with no Japanese voice falls back to the
// UI locale voice.
package locale

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned when the UI locale is not a valid BCP 47 tag.
var ErrInvalidLocale = errors.New("locale: invalid UI locale")

// Voice is an available speech voice.
type Voice struct {
	Name string `toml:"name" yaml:"name"`
	Lang string `toml:"lang" yaml:"lang"`
}

// Selector resolves language tags to voices.
type Selector struct {
	ui      language.Tag
	uiVoice Voice
	voices  []Voice
	matcher language.Matcher
}

// NewSelector creates a selector for the given UI locale and voices. Voices
// with unparsable languages are skipped.
func NewSelector(uiLocale string, voices []Voice) (*Selector, error) {
	ui, err := language.Parse(uiLocale)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, uiLocale, err)
	}

	s := &Selector{ui: ui}
	var tags []language.Tag
	for _, v := range voices {
		tag, err := language.Parse(v.Lang)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		s.voices = append(s.voices, v)
	}

	s.uiVoice = Voice{Name: "default", Lang: ui.String()}
	if len(tags) > 0 {
		s.matcher = language.NewMatcher(tags)
		if v, ok := s.match(ui); ok {
			s.uiVoice = v
		}
	}
	return s, nil
}

// UILocale returns the UI locale tag.
func (s *Selector) UILocale() language.Tag {
	return s.ui
}

// UIVoice returns the voice used for the UI locale.
func (s *Selector) UIVoice() Voice {
	return s.uiVoice
}

// Voices returns the usable voices.
func (s *Selector) Voices() []Voice {
	out := make([]Voice, len(s.voices))
	copy(out, s.voices)
	return out
}

// VoiceFor returns the voice for lang. fallback is true when no voice
// matches and the UI voice was returned instead.
func (s *Selector) VoiceFor(lang string) (v Voice, fallback bool) {
	tag, err := language.Parse(lang)
	if err != nil {
		return s.uiVoice, true
	}
	if v, ok := s.match(tag); ok {
		return v, false
	}
	return s.uiVoice, true
}

// SameLanguage reports whether two tags share a base language.
func SameLanguage(a, b string) bool {
	ta, err := language.Parse(a)
	if err != nil {
		return false
	}
	tb, err := language.Parse(b)
	if err != nil {
		return false
	}
	ba, _ := ta.Base()
	bb, _ := tb.Base()
	return ba == bb
}

func (s *Selector) match(tag language.Tag) (Voice, bool) {
	if s.matcher == nil {
		return Voice{}, false
	}
	_, idx, conf := s.matcher.Match(tag)
	if conf == language.No {
		return Voice{}, false
	}
	return s.voices[idx], true
}
