package dispatcher

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/dispatcher/handler"
	"github.com/dshills/voxnav/internal/logging"
)

// PreDispatchHook is called before a command is dispatched.
// Returning false denies the command; the dispatcher then hands the input
// back to the host without side effects.
type PreDispatchHook interface {
	PreDispatch(cmd command.Command) bool
}

// PostDispatchHook is called after a command is dispatched.
type PostDispatchHook interface {
	PostDispatch(cmd command.Command, ctx *handler.Context, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(cmd command.Command) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(cmd command.Command) bool {
	return f(cmd)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(cmd command.Command, ctx *handler.Context, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(cmd command.Command, ctx *handler.Context, result *handler.Result) {
	f(cmd, ctx, result)
}

// RestrictionMode is the restricted context the screen reader runs in.
type RestrictionMode uint8

const (
	RestrictNone RestrictionMode = iota
	RestrictIncognito
	RestrictKiosk
)

var restrictionNames = [...]string{
	RestrictNone:      "none",
	RestrictIncognito: "incognito",
	RestrictKiosk:     "kiosk",
}

// String returns the mode name.
func (m RestrictionMode) String() string {
	if int(m) < len(restrictionNames) {
		return restrictionNames[m]
	}
	return fmt.Sprintf("RestrictionMode(%d)", m)
}

// ParseRestrictionMode parses "none", "incognito" or "kiosk". The empty
// string is "none".
func ParseRestrictionMode(s string) (RestrictionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return RestrictNone, nil
	case "incognito":
		return RestrictIncognito, nil
	case "kiosk":
		return RestrictKiosk, nil
	}
	return RestrictNone, fmt.Errorf("%w: %q", ErrUnknownRestriction, s)
}

// restricted lists the commands denied in each restricted mode: pages that
// would open a browser surface the context does not allow.
var restricted = map[RestrictionMode][]command.Command{
	RestrictIncognito: {command.ShowOptionsPage, command.ShowLearnModePage, command.ShowLogPage},
	RestrictKiosk: {
		command.ShowOptionsPage, command.ShowLearnModePage, command.ShowLogPage,
		command.ReadCurrentURL, command.ReadLinkURL,
	},
}

// RestrictionHook denies commands in restricted contexts. The policy can be
// swapped at any time, for example on configuration reload.
type RestrictionHook struct {
	mu   sync.RWMutex
	mode RestrictionMode
	deny map[command.Command]bool
}

// NewRestrictionHook creates a hook for mode. extra commands are denied in
// every mode, including RestrictNone.
func NewRestrictionHook(mode RestrictionMode, extra ...command.Command) *RestrictionHook {
	h := &RestrictionHook{}
	h.Set(mode, extra...)
	return h
}

// Set replaces the policy.
func (h *RestrictionHook) Set(mode RestrictionMode, extra ...command.Command) {
	deny := make(map[command.Command]bool)
	for _, c := range restricted[mode] {
		deny[c] = true
	}
	for _, c := range extra {
		deny[c] = true
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.mode = mode
	h.deny = deny
}

// Mode returns the current restriction mode.
func (h *RestrictionHook) Mode() RestrictionMode {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.mode
}

// Allowed reports whether cmd may run.
func (h *RestrictionHook) Allowed(cmd command.Command) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return !h.deny[cmd]
}

// PreDispatch implements PreDispatchHook.
func (h *RestrictionHook) PreDispatch(cmd command.Command) bool {
	return h.Allowed(cmd)
}

// AuditHook logs all dispatched commands.
type AuditHook struct {
	logger *logging.Logger
}

// NewAuditHook creates an audit hook with the given logger.
func NewAuditHook(logger *logging.Logger) *AuditHook {
	return &AuditHook{logger: logger.WithComponent("audit")}
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(cmd command.Command, ctx *handler.Context, result *handler.Result) {
	switch {
	case result.Error != nil:
		h.logger.Debug("dispatch %s -> %s: %v", cmd, result.Status, result.Error)
	case result.Message != "":
		h.logger.Debug("dispatch %s -> %s (%s)", cmd, result.Status, result.Message)
	default:
		h.logger.Debug("dispatch %s -> %s", cmd, result.Status)
	}
}
