package app

import (
	"os"
	"time"

	"github.com/dshills/voxnav/internal/config"
	"github.com/dshills/voxnav/internal/dispatcher"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
	"github.com/dshills/voxnav/internal/gate"
	"github.com/dshills/voxnav/internal/input/keymap"
	"github.com/dshills/voxnav/internal/input/palette"
	"github.com/dshills/voxnav/internal/logging"
	"github.com/dshills/voxnav/internal/navstate"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/prefs"
	"github.com/dshills/voxnav/internal/store"
)

const defaultWatchDebounce = 200 * time.Millisecond

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	cfg       *config.Config
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 10),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		// 1. Config, which every other step reads
		b.initConfig,
		// 2. Logger
		b.initLogger,
		// 3. Persistent store and preferences
		b.initStore,
		// 4. Output renderer
		b.initOutput,
		// 5. Navigation state
		b.initState,
		// 6. Guided flows, needed by the dispatcher's closeGuidedFlow
		b.initFlows,
		// 7. Dispatcher and its hooks
		b.initDispatcher,
		// 8. Keymap
		b.initKeymap,
		// 9. Live reload
		b.initReload,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}

	// Observers registered during setup see notifications from here on.
	b.app.state.MarkReady()
	b.app.logger.Info("ready (config %q, %d flows)", b.cfg.Path(), len(b.app.flows))
	return nil
}

// initConfig loads the configuration unless one was supplied.
func (b *bootstrapper) initConfig() error {
	cfg := b.opts.Config
	if cfg == nil {
		path := b.opts.ConfigPath
		if path == "" {
			path = os.Getenv(config.EnvConfigPath)
		}
		loaded, err := config.Load(path)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	b.cfg = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger creates the root logger. Options.LogLevel wins over the file.
func (b *bootstrapper) initLogger() error {
	level := b.cfg.LogLevel()
	if b.opts.LogLevel != "" {
		level = logging.ParseLevel(b.opts.LogLevel)
	}
	b.app.logger = logging.New(logging.Config{
		Level:  level,
		Output: b.opts.LogOutput,
		Prefix: "voxnav",
	})
	b.app.reloader = config.NewReloader(b.cfg, config.WithReloadLogger(b.app.logger))
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initStore opens the state file, or keeps state in memory without one.
func (b *bootstrapper) initStore() error {
	st := store.New()
	if path := b.cfg.Storage.Path; path != "" {
		opened, err := store.Open(path)
		if err != nil {
			return &InitError{Component: "store", Err: err}
		}
		st = opened
	}
	b.app.store = st
	b.app.prefs = prefs.New(st, b.cfg.PrefDefaults()...)
	b.initOrder = append(b.initOrder, "store")
	return nil
}

// initOutput creates the renderer over the configured sink.
func (b *bootstrapper) initOutput() error {
	voices, err := b.cfg.VoiceSelector()
	if err != nil {
		return &InitError{Component: "output", Err: err}
	}
	sink := b.opts.Sink
	if sink == nil {
		w := b.opts.SpeechOutput
		if w == nil {
			w = os.Stdout
		}
		sink = output.NewLogSink(w)
	}
	b.app.out = output.NewRenderer(sink,
		output.WithPrefs(b.app.prefs),
		output.WithVoices(voices),
		output.WithLogger(b.app.logger),
	)
	b.initOrder = append(b.initOrder, "output")
	return nil
}

// initState creates the navigation state over the host.
func (b *bootstrapper) initState() error {
	if b.opts.Host == nil {
		return &InitError{Component: "navigation state", Err: ErrNoHost}
	}
	b.app.state = navstate.New(b.opts.Host, b.app.out,
		navstate.WithLogger(b.app.logger),
		navstate.WithStore(b.app.store),
	)
	b.initOrder = append(b.initOrder, "navigation state")
	return nil
}

// initFlows creates the flow monitor and loads the flow scripts.
func (b *bootstrapper) initFlows() error {
	b.app.monitor = gate.NewMonitor(b.app.logger)
	if dir := b.cfg.Flows.Dir; dir != "" {
		scripts, err := gate.LoadDir(dir)
		if err != nil {
			return &InitError{Component: "guided flows", Err: err}
		}
		b.app.flows = scripts
	}
	b.initOrder = append(b.initOrder, "guided flows")
	return nil
}

// initDispatcher creates the dispatcher with the restriction and audit hooks.
func (b *bootstrapper) initDispatcher() error {
	now := b.opts.Now
	if now == nil {
		now = time.Now
	}
	services := handler.Services{
		Version: b.opts.Version,
		Now:     now,
		Battery: b.opts.Battery,
		Pages:   b.opts.Pages,
		Flows:   b.app.monitor,
	}

	dopts := []dispatcher.Option{
		dispatcher.WithLogger(b.app.logger),
		dispatcher.WithServices(services),
	}
	if b.opts.Scroller != nil {
		dopts = append(dopts, dispatcher.WithScroller(b.opts.Scroller))
	}
	d := dispatcher.New(b.cfg.DispatcherConfig(), b.app.state, b.app.prefs, dopts...)

	mode, deny := b.cfg.Restriction()
	b.app.restrict = dispatcher.NewRestrictionHook(mode, deny...)
	d.RegisterPreHook(b.app.restrict)
	d.RegisterPostHook(dispatcher.NewAuditHook(b.app.logger))

	b.app.dispatcher = d
	b.initOrder = append(b.initOrder, "dispatcher")
	return nil
}

// initKeymap layers the configured bindings over the defaults.
func (b *bootstrapper) initKeymap() error {
	reg := keymap.NewRegistry()
	if err := reg.Register(keymap.Default()); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	if err := reg.Register(b.cfg.UserKeymap()); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	b.app.keymap = reg
	b.app.palette = palette.New(reg)
	b.initOrder = append(b.initOrder, "keymap")
	return nil
}

// initReload subscribes to configuration reloads and optionally watches the
// file.
func (b *bootstrapper) initReload() error {
	b.app.reloader.Subscribe(b.app.applyConfig)
	if b.opts.WatchConfig && b.cfg.Path() != "" {
		debounce := b.opts.WatchDebounce
		if debounce <= 0 {
			debounce = defaultWatchDebounce
		}
		if err := b.app.reloader.Watch(debounce); err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
	}
	b.initOrder = append(b.initOrder, "config watcher")
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "config watcher":
			_ = b.app.reloader.Close()
		case "guided flows":
			b.app.monitor.Destroy()
		}
	}
}
