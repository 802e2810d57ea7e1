package palette

import (
	"slices"
	"sync"

	"github.com/dshills/voxnav/internal/command"
)

// History tracks recently run commands in most-recently-used order.
type History struct {
	mu       sync.Mutex
	items    []command.Command
	maxItems int
}

// NewHistory creates a command history with the given capacity.
func NewHistory(maxItems int) *History {
	if maxItems <= 0 {
		maxItems = DefaultHistorySize
	}
	return &History{
		items:    make([]command.Command, 0, maxItems),
		maxItems: maxItems,
	}
}

// Add records a command. A command already present moves to the front.
func (h *History) Add(cmd command.Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := slices.Index(h.items, cmd); i >= 0 {
		h.items = slices.Delete(h.items, i, i+1)
	}
	h.items = slices.Insert(h.items, 0, cmd)
	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}
}

// Recent returns up to limit commands, most recent first. A limit of zero
// or less returns all of them.
func (h *History) Recent(limit int) []command.Command {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(h.items)
	if limit > 0 && limit < n {
		n = limit
	}
	return slices.Clone(h.items[:n])
}

// Position returns the index of cmd, 0 being the most recent, or -1.
func (h *History) Position(cmd command.Command) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Index(h.items, cmd)
}

// Len returns the number of recorded commands.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Clear forgets every command.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = h.items[:0]
}
