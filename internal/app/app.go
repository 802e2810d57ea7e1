// Package app assembles the screen reader core and routes host input to it.
//
// New builds every component in dependency order: configuration, logging,
// persistent state, preferences, output, navigation state, the guided-flow
// monitor, the command dispatcher and the keymap registry. The host then
// feeds input through HandleKeyEvent, HandleKey, HandleGesture and
// HandleBraille, and reports focus changes through HandleFocusChange.
package app

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/voxnav/internal/config"
	"github.com/dshills/voxnav/internal/dispatcher"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
	"github.com/dshills/voxnav/internal/gate"
	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/input/keymap"
	"github.com/dshills/voxnav/internal/input/palette"
	"github.com/dshills/voxnav/internal/logging"
	"github.com/dshills/voxnav/internal/navstate"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/prefs"
	"github.com/dshills/voxnav/internal/store"
	"github.com/dshills/voxnav/internal/tree"
)

// Application owns every component of one screen reader session.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	logger   *logging.Logger
	reloader *config.Reloader

	// Persistent state
	store *store.Store
	prefs *prefs.Prefs

	// Output and navigation
	out        *output.Renderer
	state      *navstate.State
	dispatcher *dispatcher.Dispatcher
	restrict   *dispatcher.RestrictionHook

	// Input
	keymap      *keymap.Registry
	palette     *palette.Palette
	monitor     *gate.Monitor
	flows       map[string]*gate.Script
	pendingKeys *key.Sequence

	closed atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// Host is the accessibility tree and its actions. Required.
	Host tree.Host

	// Config is used as is when set; otherwise ConfigPath is loaded.
	Config *config.Config

	// ConfigPath is the path to the configuration file. Empty uses defaults
	// and the environment.
	ConfigPath string

	// WatchConfig reloads the configuration file when it changes.
	WatchConfig bool

	// WatchDebounce is the quiet period before a change is reloaded.
	WatchDebounce time.Duration

	// LogLevel overrides the configured level when non-empty.
	LogLevel string

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Sink receives speech, braille and earcons. Defaults to a LogSink
	// writing to SpeechOutput.
	Sink output.Sink

	// SpeechOutput is where the default sink writes. Defaults to os.Stdout.
	SpeechOutput io.Writer

	// Scroller defers navigation until scrolling settles.
	Scroller dispatcher.Scroller

	// Version is announced by announceVersion.
	Version string

	// Now returns the current time for announcements. Defaults to time.Now.
	Now func() time.Time

	// Battery and Pages are optional host services.
	Battery handler.BatteryReporter
	Pages   handler.PageOpener
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:  opts,
		flows: make(map[string]*gate.Script),
	}

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	return app.reloader.Current()
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Prefs returns the preference store.
func (app *Application) Prefs() *prefs.Prefs {
	return app.prefs
}

// State returns the navigation state.
func (app *Application) State() *navstate.State {
	return app.state
}

// Output returns the output renderer.
func (app *Application) Output() *output.Renderer {
	return app.out
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Keymap returns the keymap registry.
func (app *Application) Keymap() *keymap.Registry {
	return app.keymap
}

// Monitor returns the guided-flow monitor.
func (app *Application) Monitor() *gate.Monitor {
	return app.monitor
}

// SearchCommands finds commands by name for a learn-mode style command
// list. An empty query lists recently used commands first.
func (app *Application) SearchCommands(query string, limit int) []palette.Result {
	return app.palette.Search(query, limit)
}
