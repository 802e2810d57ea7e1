package dispatcher

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
)

// Metrics counts dispatches per command. Navigation misses are tracked
// separately from errors: a miss is the "No next heading" kind of outcome.
type Metrics struct {
	mu       sync.Mutex
	commands map[command.Command]*CommandStats
	total    CommandStats
	panics   uint64
}

// CommandStats holds the counters of one command, or of all of them.
type CommandStats struct {
	Command    command.Command
	Dispatches uint64
	Errors     uint64
	Misses     uint64
	Elapsed    time.Duration
	Slowest    time.Duration
	LastStatus handler.ResultStatus
}

// Average returns the mean dispatch duration.
func (s CommandStats) Average() time.Duration {
	if s.Dispatches == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Dispatches)
}

func (s *CommandStats) add(d time.Duration, status handler.ResultStatus) {
	s.Dispatches++
	s.Elapsed += d
	s.Slowest = max(s.Slowest, d)
	s.LastStatus = status
	if status == handler.StatusError {
		s.Errors++
	}
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{commands: make(map[command.Command]*CommandStats)}
}

// RecordDispatch records one dispatch of cmd.
func (m *Metrics) RecordDispatch(cmd command.Command, d time.Duration, status handler.ResultStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.commands[cmd]
	if s == nil {
		s = &CommandStats{Command: cmd}
		m.commands[cmd] = s
	}
	s.add(d, status)
	m.total.add(d, status)
}

// RecordPanic records a recovered handler panic. The dispatch itself is
// recorded as an error by RecordDispatch.
func (m *Metrics) RecordPanic(command.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panics++
}

// RecordMiss records a navigation that found no target.
func (m *Metrics) RecordMiss(cmd command.Command) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total.Misses++
	if s := m.commands[cmd]; s != nil {
		s.Misses++
	}
}

// Stats returns the counters of cmd.
func (m *Metrics) Stats(cmd command.Command) (CommandStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.commands[cmd]
	if !ok {
		return CommandStats{}, false
	}
	return *s, true
}

// Snapshot is a copy of the counters at one point in time.
type Snapshot struct {
	Total  CommandStats
	Panics uint64

	// Busiest lists the most dispatched commands, most first.
	Busiest []CommandStats
}

// busiestLen bounds Snapshot.Busiest.
const busiestLen = 5

// Snapshot copies the counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{Total: m.total, Panics: m.panics}
	for _, s := range m.commands {
		snap.Busiest = append(snap.Busiest, *s)
	}
	sort.Slice(snap.Busiest, func(i, j int) bool {
		a, b := snap.Busiest[i], snap.Busiest[j]
		if a.Dispatches != b.Dispatches {
			return a.Dispatches > b.Dispatches
		}
		return a.Command < b.Command
	})
	if len(snap.Busiest) > busiestLen {
		snap.Busiest = snap.Busiest[:busiestLen]
	}
	return snap
}

// String formats the snapshot for the log.
func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d dispatches, %d misses, %d errors, %d panics, avg %v",
		s.Total.Dispatches, s.Total.Misses, s.Total.Errors, s.Panics, s.Total.Average())
	for i, c := range s.Busiest {
		if i == 0 {
			b.WriteString("; busiest:")
		}
		fmt.Fprintf(&b, " %s=%d", c.Command, c.Dispatches)
	}
	return b.String()
}
