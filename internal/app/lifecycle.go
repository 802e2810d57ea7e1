package app

import (
	"errors"

	"github.com/dshills/voxnav/internal/config"
	"github.com/dshills/voxnav/internal/gate"
)

// ReloadConfig loads the configuration file again and applies it. On
// failure the current configuration stays in effect.
func (app *Application) ReloadConfig() error {
	if app.closed.Load() {
		return ErrShutdown
	}
	return app.reloader.Reload()
}

// applyConfig applies the settings that can change while running: the log
// level, restrictions, bindings and flows. Navigation, storage and speech
// defaults are read once at startup.
func (app *Application) applyConfig(cfg *config.Config) {
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(cfg.LogLevel())
	}

	mode, deny := cfg.Restriction()
	app.restrict.Set(mode, deny...)

	if err := app.keymap.Replace(cfg.UserKeymap()); err != nil {
		app.logger.Error("configured bindings rejected: %v", err)
	}
	app.palette.Refresh(app.keymap)

	if dir := cfg.Flows.Dir; dir != "" {
		scripts, err := gate.LoadDir(dir)
		if err != nil {
			app.logger.Warn("keeping loaded flows: %v", err)
		} else {
			app.mu.Lock()
			app.flows = scripts
			app.mu.Unlock()
		}
	}

	app.logger.Info("configuration applied (restrictions %s)", mode)
}

// Shutdown stops watching the configuration, discards any active flow and
// saves preferences. Calling it again does nothing.
func (app *Application) Shutdown() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	if err := app.reloader.Close(); err != nil {
		errs = append(errs, err)
	}
	app.monitor.Destroy()

	app.mu.Lock()
	app.pendingKeys = nil
	app.mu.Unlock()

	if err := app.prefs.Save(); err != nil {
		errs = append(errs, err)
	}

	if m := app.dispatcher.Metrics(); m != nil {
		app.logger.Info("dispatch metrics: %s", m.Snapshot())
	}
	app.logger.Info("shut down")
	return errors.Join(errs...)
}
