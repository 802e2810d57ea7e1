package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/config/loader"
	"github.com/dshills/voxnav/internal/dispatcher"
	"github.com/dshills/voxnav/internal/input/keymap"
	"github.com/dshills/voxnav/internal/input/palette"
	"github.com/dshills/voxnav/internal/locale"
	"github.com/dshills/voxnav/internal/logging"
	"github.com/dshills/voxnav/internal/prefs"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "VOXNAV_"

// EnvConfigPath names the config file. It is not a setting.
const EnvConfigPath = EnvPrefix + "CONFIG"

// UserKeymapPriority is the layer priority of configured bindings, above
// the built-in keymap.
const UserKeymapPriority = 10

const maxIncludeDepth = 8

// Config is the complete voxnav configuration. Values are snapshots; a
// reload produces a new Config.
type Config struct {
	Log          LogConfig          `toml:"log"`
	Storage      StorageConfig      `toml:"storage"`
	Navigation   NavigationConfig   `toml:"navigation"`
	Restrictions RestrictionsConfig `toml:"restrictions"`
	Speech       SpeechConfig       `toml:"speech"`
	Keymap       BindingsConfig     `toml:"keymap"`
	Gestures     BindingsConfig     `toml:"gestures"`
	Braille      BindingsConfig     `toml:"braille"`
	Flows        FlowsConfig        `toml:"flows"`

	path string
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// StorageConfig configures the persistent state file.
type StorageConfig struct {
	// Path of the JSON state file. Empty keeps state in memory.
	Path string `toml:"path"`
}

// NavigationConfig configures command dispatch.
type NavigationConfig struct {
	Wrap           bool `toml:"wrap"`
	SyncToObject   bool `toml:"sync_to_object"`
	EditIntercepts bool `toml:"edit_intercepts"`
	Metrics        bool `toml:"metrics"`
}

// RestrictionsConfig configures the restricted context policy.
type RestrictionsConfig struct {
	// Mode is none, incognito or kiosk.
	Mode string `toml:"mode"`
	// Deny lists additional command names denied in every mode.
	Deny []string `toml:"deny"`
}

// SpeechConfig holds speech defaults. Stored preferences win over these.
type SpeechConfig struct {
	Rate     float64        `toml:"rate"`
	Pitch    float64        `toml:"pitch"`
	Volume   float64        `toml:"volume"`
	UILocale string         `toml:"ui_locale"`
	Voices   []locale.Voice `toml:"voices"`
}

// BindingsConfig maps an input (key spec, gesture or braille name) to a
// command name.
type BindingsConfig struct {
	Bindings map[string]string `toml:"bindings"`
}

// FlowsConfig locates guided-flow scripts.
type FlowsConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Navigation: NavigationConfig{
			Wrap:           true,
			SyncToObject:   true,
			EditIntercepts: true,
		},
		Restrictions: RestrictionsConfig{Mode: "none"},
		Speech: SpeechConfig{
			Rate:     1.0,
			Pitch:    1.0,
			Volume:   1.0,
			UILocale: "en-US",
		},
	}
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Loader builds a Config from defaults, a TOML file and the environment.
type Loader struct {
	files *loader.TOMLLoader
	env   *loader.EnvLoader
}

// NewLoader creates a loader reading the OS file system and environment.
func NewLoader() *Loader {
	return &Loader{
		files: loader.NewTOMLLoader(),
		env:   loader.NewEnvLoader(EnvPrefix).Ignore(EnvConfigPath),
	}
}

// WithFS replaces the file system, for tests.
func (l *Loader) WithFS(fs loader.FileSystem) *Loader {
	l.files = loader.NewTOMLLoaderWithFS(fs)
	return l
}

// WithEnviron replaces the environment source, for tests.
func (l *Loader) WithEnviron(environ func() []string) *Loader {
	l.env.WithEnviron(environ)
	return l
}

// Load reads path (which may be empty or missing), applies environment
// overrides and validates the result.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if path != "" {
		fileLayer, err := l.files.LoadWithIncludes(path, maxIncludeDepth)
		if err != nil {
			return nil, err
		}
		if err := cfg.decode(path, fileLayer); err != nil {
			return nil, err
		}
	}

	envLayer, err := l.env.Load()
	if err != nil {
		return nil, err
	}
	// A single command in VOXNAV_RESTRICTIONS_DENY is a one-element list.
	if sec, ok := envLayer["restrictions"].(map[string]any); ok {
		if s, ok := sec["deny"].(string); ok {
			sec["deny"] = []any{s}
		}
	}
	if err := cfg.decode("env", envLayer); err != nil {
		return nil, err
	}

	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePaths expands environment references in file settings and makes
// relative ones relative to the config file.
func (c *Config) resolvePaths() {
	resolve := func(p string) string {
		if p == "" {
			return p
		}
		p = os.ExpandEnv(p)
		if !filepath.IsAbs(p) && c.path != "" {
			p = filepath.Join(filepath.Dir(c.path), p)
		}
		return p
	}
	c.Storage.Path = resolve(c.Storage.Path)
	c.Flows.Dir = resolve(c.Flows.Dir)
}

// Load loads path with the default loader.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// decode applies one layer on top of c. Keys the layer omits keep their
// current values.
func (c *Config) decode(source string, layer map[string]any) error {
	if len(layer) == 0 {
		return nil
	}
	data, err := toml.Marshal(layer)
	if err != nil {
		return &ConfigError{Path: source, Message: err.Error(), Err: ErrInvalidValue}
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	err = dec.Decode(c)
	if err == nil {
		return nil
	}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		return &ConfigError{
			Path:    source,
			Key:     strings.Join(strict.Errors[0].Key(), "."),
			Message: "no such setting",
			Err:     ErrUnknownSetting,
		}
	}
	return &ConfigError{Path: source, Message: err.Error(), Err: fmt.Errorf("%w: %w", ErrInvalidValue, err)}
}

// Validate checks every section. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		add(invalid(c.path, "log.level", "unknown level %q", c.Log.Level))
	}

	if _, err := dispatcher.ParseRestrictionMode(c.Restrictions.Mode); err != nil {
		add(invalid(c.path, "restrictions.mode", "%v", err))
	}
	for _, name := range c.Restrictions.Deny {
		if _, ok := command.Parse(name); !ok {
			add(invalid(c.path, "restrictions.deny", "unknown command %q%s", name, didYouMean(name)))
		}
	}

	add(c.checkRange("speech.rate", prefs.Rate, c.Speech.Rate))
	add(c.checkRange("speech.pitch", prefs.Pitch, c.Speech.Pitch))
	add(c.checkRange("speech.volume", prefs.Volume, c.Speech.Volume))
	if _, err := c.VoiceSelector(); err != nil {
		add(invalid(c.path, "speech.ui_locale", "%v", err))
	}

	if err := c.UserKeymap().Validate(); err != nil {
		msg := err.Error()
		var be *keymap.BindingError
		if errors.As(err, &be) && errors.Is(err, keymap.ErrUnknownCommand) {
			msg += didYouMean(be.Command)
		}
		add(&ConfigError{Path: c.path, Key: "keymap", Message: msg, Err: err})
	}

	return errors.Join(errs...)
}

// didYouMean suggests the closest command identifier to name.
func didYouMean(name string) string {
	if cmd, ok := palette.Suggest(name); ok {
		return fmt.Sprintf(" (did you mean %q?)", cmd.String())
	}
	return ""
}

func (c *Config) checkRange(key string, pref prefs.Key, v float64) error {
	for _, d := range prefs.Defs() {
		if d.Key == pref && (v < d.Min || v > d.Max) {
			return invalid(c.path, key, "%g is outside [%g, %g]", v, d.Min, d.Max)
		}
	}
	return nil
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}

// Restriction returns the restriction mode and the extra denied commands.
// Invalid entries, which Validate reports, are skipped.
func (c *Config) Restriction() (dispatcher.RestrictionMode, []command.Command) {
	mode, _ := dispatcher.ParseRestrictionMode(c.Restrictions.Mode)
	var deny []command.Command
	for _, name := range c.Restrictions.Deny {
		if cmd, ok := command.Parse(name); ok {
			deny = append(deny, cmd)
		}
	}
	return mode, deny
}

// DispatcherConfig returns the dispatcher settings.
func (c *Config) DispatcherConfig() dispatcher.Config {
	dc := dispatcher.DefaultConfig().
		WithWrap(c.Navigation.Wrap).
		WithSyncToObject(c.Navigation.SyncToObject).
		WithEditIntercepts(c.Navigation.EditIntercepts)
	if c.Navigation.Metrics {
		dc = dc.WithMetrics()
	}
	return dc
}

// PrefDefaults returns preference definitions carrying the speech defaults.
func (c *Config) PrefDefaults() []prefs.Def {
	return []prefs.Def{
		{Key: prefs.Rate, Kind: prefs.KindFloat, Float: c.Speech.Rate},
		{Key: prefs.Pitch, Kind: prefs.KindFloat, Float: c.Speech.Pitch},
		{Key: prefs.Volume, Kind: prefs.KindFloat, Float: c.Speech.Volume},
	}
}

// VoiceSelector returns the voice selector for the speech section.
func (c *Config) VoiceSelector() (*locale.Selector, error) {
	return locale.NewSelector(c.Speech.UILocale, c.Speech.Voices)
}

// UserKeymap returns the configured key, gesture and braille bindings as a
// keymap layered above the defaults.
func (c *Config) UserKeymap() *keymap.Keymap {
	source := c.path
	if source == "" {
		source = "env"
	}
	return keymap.FromTables("user", c.Keymap.Bindings, c.Gestures.Bindings, c.Braille.Bindings).
		WithPriority(UserKeymapPriority).
		WithSource(source)
}
