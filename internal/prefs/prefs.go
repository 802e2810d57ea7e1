// Package prefs holds user preferences backed by the key-value store.
//
// Preferences are typed views over store keys with defaults, bounds and
// change notification. Observers subscribe to all keys or to one key, in the
// same shape as configuration change notification.
package prefs

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dshills/voxnav/internal/store"
)

// Key names a preference.
type Key string

const (
	StickyMode        Key = "sticky_mode"
	Earcons           Key = "earcons"
	SpeechEnabled     Key = "speech_enabled"
	Rate              Key = "tts_rate"
	Pitch             Key = "tts_pitch"
	Volume            Key = "tts_volume"
	TypingEcho        Key = "typing_echo"
	PunctuationEcho   Key = "punctuation_echo"
	BrailleCaptions   Key = "braille_captions"
	LanguageSwitching Key = "language_switching"
	BrailleTable      Key = "braille_table"
	ReadOnlyEditing   Key = "read_only_editing"
)

// ErrUnknownKey is returned for keys with no registered definition.
var ErrUnknownKey = errors.New("prefs: unknown key")

// ErrWrongType is returned when a key is accessed with the wrong type.
var ErrWrongType = errors.New("prefs: wrong type for key")

// Kind is the value type of a preference.
type Kind int

const (
	KindBool Kind = iota
	KindFloat
	KindChoice
)

// Def describes one preference.
type Def struct {
	Key     Key
	Kind    Kind
	Bool    bool
	Float   float64
	Min     float64
	Max     float64
	Step    float64
	Choices []string
	Choice  int
}

// TypingEcho choices.
const (
	EchoCharacter = iota
	EchoWord
	EchoCharacterAndWord
	EchoNone
)

// PunctuationEcho choices.
const (
	PunctuationNone = iota
	PunctuationSome
	PunctuationAll
)

// Defs returns the built-in preference definitions.
func Defs() []Def {
	return []Def{
		{Key: StickyMode, Kind: KindBool},
		{Key: Earcons, Kind: KindBool, Bool: true},
		{Key: SpeechEnabled, Kind: KindBool, Bool: true},
		{Key: BrailleCaptions, Kind: KindBool},
		{Key: LanguageSwitching, Kind: KindBool},
		{Key: ReadOnlyEditing, Kind: KindBool},
		{Key: Rate, Kind: KindFloat, Float: 1.0, Min: 0.2, Max: 5.0, Step: 0.1},
		{Key: Pitch, Kind: KindFloat, Float: 1.0, Min: 0.2, Max: 2.0, Step: 0.1},
		{Key: Volume, Kind: KindFloat, Float: 1.0, Min: 0.2, Max: 1.0, Step: 0.1},
		{Key: TypingEcho, Kind: KindChoice, Choices: []string{"character", "word", "character_and_word", "none"}},
		{Key: PunctuationEcho, Kind: KindChoice, Choices: []string{"none", "some", "all"}},
		{Key: BrailleTable, Kind: KindChoice, Choices: []string{"grade1", "grade2", "computer8"}},
	}
}

// Change describes a preference change.
type Change struct {
	Key      Key
	OldValue any
	NewValue any
}

// Observer is called after a preference changes.
type Observer func(Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id    uint64
	prefs *Prefs
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.prefs != nil {
		s.prefs.unsubscribe(s.id)
	}
}

// Prefs is the preference set.
type Prefs struct {
	store *store.Store
	defs  map[Key]Def

	mu        sync.RWMutex
	nextID    uint64
	global    map[uint64]Observer
	keyed     map[Key]map[uint64]Observer
	keyOfSubs map[uint64]Key
}

// New creates preferences over st with the built-in definitions. overrides
// replace the default value of matching definitions.
func New(st *store.Store, overrides ...Def) *Prefs {
	p := &Prefs{
		store:     st,
		defs:      make(map[Key]Def),
		global:    make(map[uint64]Observer),
		keyed:     make(map[Key]map[uint64]Observer),
		keyOfSubs: make(map[uint64]Key),
	}
	for _, d := range Defs() {
		p.defs[d.Key] = d
	}
	for _, o := range overrides {
		if d, ok := p.defs[o.Key]; ok && d.Kind == o.Kind {
			d.Bool, d.Float, d.Choice = o.Bool, p.clamp(d, o.Float), o.Choice
			p.defs[o.Key] = d
		}
	}
	return p
}

// Def returns the definition of key.
func (p *Prefs) Def(key Key) (Def, bool) {
	d, ok := p.defs[key]
	return d, ok
}

func (p *Prefs) def(key Key, kind Kind) (Def, error) {
	d, ok := p.defs[key]
	if !ok {
		return Def{}, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if d.Kind != kind {
		return Def{}, fmt.Errorf("%w: %s", ErrWrongType, key)
	}
	return d, nil
}

// Bool returns a boolean preference. Unknown keys read as false.
func (p *Prefs) Bool(key Key) bool {
	d, err := p.def(key, KindBool)
	if err != nil {
		return false
	}
	return p.store.Bool(string(key), d.Bool)
}

// SetBool sets a boolean preference.
func (p *Prefs) SetBool(key Key, v bool) error {
	if _, err := p.def(key, KindBool); err != nil {
		return err
	}
	old := p.Bool(key)
	if err := p.store.Set(string(key), v); err != nil {
		return err
	}
	if old != v {
		p.notify(Change{Key: key, OldValue: old, NewValue: v})
	}
	return nil
}

// Toggle flips a boolean preference and returns the new value.
func (p *Prefs) Toggle(key Key) (bool, error) {
	v := !p.Bool(key)
	if err := p.SetBool(key, v); err != nil {
		return false, err
	}
	return v, nil
}

// Float returns a numeric preference.
func (p *Prefs) Float(key Key) float64 {
	d, err := p.def(key, KindFloat)
	if err != nil {
		return 0
	}
	return p.store.Float(string(key), d.Float)
}

// SetFloat sets a numeric preference, clamped to its bounds.
func (p *Prefs) SetFloat(key Key, v float64) error {
	d, err := p.def(key, KindFloat)
	if err != nil {
		return err
	}
	v = p.clamp(d, v)
	old := p.Float(key)
	if err := p.store.Set(string(key), v); err != nil {
		return err
	}
	if old != v {
		p.notify(Change{Key: key, OldValue: old, NewValue: v})
	}
	return nil
}

// Step moves a numeric preference by n steps and returns the new value.
// changed is false when the value was already at its bound.
func (p *Prefs) Step(key Key, n int) (v float64, changed bool, err error) {
	d, err := p.def(key, KindFloat)
	if err != nil {
		return 0, false, err
	}
	old := p.Float(key)
	v = p.clamp(d, old+float64(n)*d.Step)
	if err := p.SetFloat(key, v); err != nil {
		return old, false, err
	}
	return v, v != old, nil
}

// Choice returns the index of a choice preference.
func (p *Prefs) Choice(key Key) int {
	d, err := p.def(key, KindChoice)
	if err != nil {
		return 0
	}
	c := p.store.Int(string(key), d.Choice)
	if c < 0 || c >= len(d.Choices) {
		return d.Choice
	}
	return c
}

// ChoiceName returns the name of the current choice.
func (p *Prefs) ChoiceName(key Key) string {
	d, err := p.def(key, KindChoice)
	if err != nil {
		return ""
	}
	return d.Choices[p.Choice(key)]
}

// Cycle advances a choice preference to its next value, wrapping around, and
// returns the new index.
func (p *Prefs) Cycle(key Key) (int, error) {
	d, err := p.def(key, KindChoice)
	if err != nil {
		return 0, err
	}
	old := p.Choice(key)
	next := (old + 1) % len(d.Choices)
	if err := p.store.Set(string(key), next); err != nil {
		return old, err
	}
	p.notify(Change{Key: key, OldValue: old, NewValue: next})
	return next, nil
}

// Save persists the underlying store.
func (p *Prefs) Save() error {
	return p.store.Save()
}

func (p *Prefs) clamp(d Def, v float64) float64 {
	if d.Kind != KindFloat {
		return v
	}
	v = math.Max(d.Min, math.Min(d.Max, v))
	// Keep values on the step grid so repeated steps never drift.
	return math.Round(v*10) / 10
}

// Subscribe registers an observer for all changes.
func (p *Prefs) Subscribe(fn Observer) *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.global[id] = fn
	return &Subscription{id: id, prefs: p}
}

// SubscribeKey registers an observer for one key.
func (p *Prefs) SubscribeKey(key Key, fn Observer) *Subscription {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	if p.keyed[key] == nil {
		p.keyed[key] = make(map[uint64]Observer)
	}
	p.keyed[key][id] = fn
	p.keyOfSubs[id] = key
	return &Subscription{id: id, prefs: p}
}

// Unsubscribe removes a subscription.
func (p *Prefs) Unsubscribe(s *Subscription) {
	s.Unsubscribe()
}

func (p *Prefs) unsubscribe(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.global, id)
	if key, ok := p.keyOfSubs[id]; ok {
		delete(p.keyed[key], id)
		delete(p.keyOfSubs, id)
	}
}

func (p *Prefs) notify(c Change) {
	p.mu.RLock()
	observers := make([]Observer, 0, len(p.global)+len(p.keyed[c.Key]))
	for _, o := range p.global {
		observers = append(observers, o)
	}
	for _, o := range p.keyed[c.Key] {
		observers = append(observers, o)
	}
	p.mu.RUnlock()

	for _, o := range observers {
		o(c)
	}
}
