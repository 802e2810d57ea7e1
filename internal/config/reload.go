package config

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/voxnav/internal/config/watcher"
	"github.com/dshills/voxnav/internal/logging"
)

// ErrNoPath is returned when live reload is requested without a file.
var ErrNoPath = errors.New("config: no file to watch")

// Subscriber receives each successfully reloaded configuration.
type Subscriber func(*Config)

// Reloader keeps the current Config and replaces it when the file changes.
// A reload that fails to load or validate is logged and the previous
// configuration stays in effect.
type Reloader struct {
	loader *Loader
	logger *logging.Logger

	mu      sync.RWMutex
	current *Config
	subs    []Subscriber

	watcher *watcher.Watcher
}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithReloadLogger sets the logger.
func WithReloadLogger(l *logging.Logger) ReloaderOption {
	return func(r *Reloader) {
		r.logger = l
	}
}

// WithReloadLoader sets the loader used for reloads.
func WithReloadLoader(l *Loader) ReloaderOption {
	return func(r *Reloader) {
		r.loader = l
	}
}

// NewReloader wraps an already loaded configuration.
func NewReloader(current *Config, opts ...ReloaderOption) *Reloader {
	r := &Reloader{
		loader:  NewLoader(),
		logger:  logging.Nop(),
		current: current,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("config")
	return r
}

// Current returns the configuration in effect.
func (r *Reloader) Current() *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Subscribe registers fn for future reloads.
func (r *Reloader) Subscribe(fn Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, fn)
}

// Reload loads the file again and, on success, notifies subscribers.
func (r *Reloader) Reload() error {
	path := r.Current().Path()
	if path == "" {
		return ErrNoPath
	}

	next, err := r.loader.Load(path)
	if err != nil {
		r.logger.Warn("reload of %s failed, keeping previous configuration: %v", path, err)
		return err
	}

	r.mu.Lock()
	r.current = next
	subs := make([]Subscriber, len(r.subs))
	copy(subs, r.subs)
	r.mu.Unlock()

	r.logger.Info("reloaded %s", path)
	for _, fn := range subs {
		fn(next)
	}
	return nil
}

// Watch starts reloading whenever the configuration file changes.
func (r *Reloader) Watch(debounce time.Duration) error {
	path := r.Current().Path()
	if path == "" {
		return ErrNoPath
	}

	w, err := watcher.New(watcher.WithDebounce(debounce))
	if err != nil {
		return err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Close()
		return err
	}

	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			r.logger.Debug("%s %s, waiting for it to return", ev.Path, ev.Op)
			return
		}
		_ = r.Reload()
	})
	w.OnError(func(err error) {
		r.logger.Warn("watching %s: %v", path, err)
	})

	r.mu.Lock()
	old := r.watcher
	r.watcher = w
	r.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Close stops watching.
func (r *Reloader) Close() error {
	r.mu.Lock()
	w := r.watcher
	r.watcher = nil
	r.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
