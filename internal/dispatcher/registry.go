package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
)

// Registry manages handler registration by command.
type Registry struct {
	mu       sync.RWMutex
	handlers map[command.Command][]handler.Handler // sorted by priority
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[command.Command][]handler.Handler),
	}
}

// Register adds a handler for a command.
// Multiple handlers can be registered for the same command; they are sorted by priority.
func (r *Registry) Register(cmd command.Command, h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.register(cmd, h)
}

// RegisterSet registers a handler set for every command it lists.
func (r *Registry) RegisterSet(s handler.Set) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cmd := range s.Commands() {
		r.register(cmd, s)
	}
}

func (r *Registry) register(cmd command.Command, h handler.Handler) {
	handlers := append(r.handlers[cmd], h)

	// Sort by priority (descending)
	sort.SliceStable(handlers, func(i, j int) bool {
		return handlers[i].Priority() > handlers[j].Priority()
	})
	r.handlers[cmd] = handlers
}

// Unregister removes all handlers for a command.
func (r *Registry) Unregister(cmd command.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, cmd)
}

// Get returns the highest priority handler for a command.
// Returns nil if no handler is registered.
func (r *Registry) Get(cmd command.Command) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handlers := r.handlers[cmd]
	if len(handlers) == 0 {
		return nil
	}
	return handlers[0]
}

// Has returns true if a handler is registered for the command.
func (r *Registry) Has(cmd command.Command) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[cmd]) > 0
}

// List returns all registered commands in declaration order.
func (r *Registry) List() []command.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]command.Command, 0, len(r.handlers))
	for cmd := range r.handlers {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i] < cmds[j] })
	return cmds
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
