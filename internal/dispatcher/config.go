package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool

	// Wrap allows wrapping for commands whose descriptor permits it. When
	// false no command wraps.
	Wrap bool

	// SyncToObject re-resolves predicate matches to the first object inside
	// them for commands that request it.
	SyncToObject bool

	// EditIntercepts maps navigation inside text fields to native key
	// presses.
	EditIntercepts bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		Wrap:             true,
		SyncToObject:     true,
		EditIntercepts:   true,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithWrap returns a copy of the config with global wrapping set.
func (c Config) WithWrap(wrap bool) Config {
	c.Wrap = wrap
	return c
}

// WithSyncToObject returns a copy of the config with object syncing set.
func (c Config) WithSyncToObject(sync bool) Config {
	c.SyncToObject = sync
	return c
}

// WithEditIntercepts returns a copy of the config with edit intercepts set.
func (c Config) WithEditIntercepts(enabled bool) Config {
	c.EditIntercepts = enabled
	return c
}
