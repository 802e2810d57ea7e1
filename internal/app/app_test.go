package app_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/voxnav/internal/app"
	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/config"
	"github.com/dshills/voxnav/internal/dispatcher"
	"github.com/dshills/voxnav/internal/gate"
	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/output"
	"github.com/dshills/voxnav/internal/tree"
	mt "github.com/dshills/voxnav/internal/tree/memtree"
)

const basicsFlow = `
name: basics
actions:
  - type: key_sequence
    value: Search+Right
    before: Press Search and the right arrow.
    after: Well done.
    command: nextObject
  - type: gesture
    value: swipeUp1
    after: Finished.
`

type pageRecorder struct {
	opened []string
}

func (p *pageRecorder) OpenPage(name string) {
	p.opened = append(p.opened, name)
}

type fixture struct {
	app   *app.Application
	doc   *mt.Document
	rec   *output.Recorder
	pages *pageRecorder
}

func document() *mt.Document {
	return mt.NewDocument(
		mt.N(tree.RoleRootWebArea, "Doc", mt.ID("page"), mt.URL("https://example.com/"), mt.Kids(
			mt.N(tree.RoleHeading, "Welcome", mt.ID("h1"), mt.Level(1)),
			mt.N(tree.RoleParagraph, "Start", mt.ID("x")),
			mt.N(tree.RoleParagraph, "End", mt.ID("y")),
		)),
	)
}

func newFixture(t *testing.T, opts app.Options) *fixture {
	t.Helper()
	f := &fixture{doc: document(), rec: output.NewRecorder(), pages: &pageRecorder{}}
	opts.Host = f.doc
	opts.Sink = f.rec
	opts.Pages = f.pages
	if opts.LogOutput == nil {
		opts.LogOutput = &strings.Builder{}
	}
	if opts.Config == nil && opts.ConfigPath == "" {
		opts.Config = config.Default()
	}

	a, err := app.New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })
	f.app = a
	return f
}

func (f *fixture) focus(id string) {
	f.doc.SetFocus(f.doc.Get(id))
	f.app.HandleFocusChange(f.doc.Get(id))
	f.rec.Reset()
}

func (f *fixture) currentID(t *testing.T) string {
	t.Helper()
	cur := f.app.State().CurrentRange()
	require.NotNil(t, cur)
	return cur.Start.Node.ID()
}

func (f *fixture) spoken() string {
	return strings.Join(f.rec.Spoken(), " | ")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func flowConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "basics.yaml"), basicsFlow)
	cfg := config.Default()
	cfg.Flows.Dir = dir
	return cfg
}

func TestNewRequiresHost(t *testing.T) {
	_, err := app.New(app.Options{Config: config.Default(), LogOutput: &strings.Builder{}})

	var initErr *app.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "navigation state", initErr.Component)
	assert.ErrorIs(t, err, app.ErrNoHost)
}

func TestNewReportsConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxnav.toml")
	writeFile(t, path, "[restrictions]\nmode = \"bogus\"\n")

	_, err := app.New(app.Options{Host: document(), ConfigPath: path, LogOutput: &strings.Builder{}})

	var initErr *app.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "config", initErr.Component)
	assert.ErrorIs(t, err, config.ErrInvalidValue)
}

func TestNewReportsBadFlowDir(t *testing.T) {
	cfg := config.Default()
	cfg.Flows.Dir = filepath.Join(t.TempDir(), "missing")

	_, err := app.New(app.Options{Host: document(), Config: cfg, LogOutput: &strings.Builder{}})

	var initErr *app.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "guided flows", initErr.Component)
}

func TestFocusChangeAnnounces(t *testing.T) {
	f := newFixture(t, app.Options{})

	f.app.HandleFocusChange(f.doc.Get("x"))
	assert.Equal(t, "x", f.currentID(t))
	assert.Contains(t, f.spoken(), "Start")

	f.rec.Reset()
	f.app.HandleFocusChange(f.doc.Get("x"))
	assert.Empty(t, f.rec.Spoken(), "refocusing the current node is silent")

	f.app.HandleFocusChange(nil)
	assert.Equal(t, "x", f.currentID(t))
}

func TestHandleKeyDispatches(t *testing.T) {
	f := newFixture(t, app.Options{})
	f.focus("x")

	assert.False(t, f.app.HandleKey(key.MustParseSequence("Search+Right")))
	assert.Equal(t, "y", f.currentID(t))
	assert.Contains(t, f.spoken(), "End")

	assert.True(t, f.app.HandleKey(key.MustParseSequence("Q")), "unbound keys reach the host")
	assert.True(t, f.app.HandleKey(nil))
}

func TestHandleKeyEventHoldsPrefix(t *testing.T) {
	f := newFixture(t, app.Options{})

	assert.False(t, f.app.HandleKeyEvent(key.MustParse("Search+O")))
	assert.Empty(t, f.rec.Spoken())
	assert.Empty(t, f.pages.opened)

	assert.False(t, f.app.HandleKeyEvent(key.MustParse("o")))
	assert.Equal(t, []string{"options"}, f.pages.opened)
	assert.Contains(t, f.spoken(), "Opening options")

	// An unbound continuation releases the prefix to the host.
	assert.False(t, f.app.HandleKeyEvent(key.MustParse("Search+O")))
	assert.True(t, f.app.HandleKeyEvent(key.MustParse("q")))
	assert.Equal(t, []string{"options"}, f.pages.opened)
}

func TestHandleGestureAndBraille(t *testing.T) {
	f := newFixture(t, app.Options{})
	f.focus("x")

	assert.False(t, f.app.HandleGesture("swipeRight1"))
	assert.Equal(t, "y", f.currentID(t))

	assert.True(t, f.app.HandleGesture("swipeNowhere"))
	assert.True(t, f.app.HandleGesture(""))
	assert.True(t, f.app.HandleBraille("nothing"))
}

func TestGuidedFlowGatesInput(t *testing.T) {
	f := newFixture(t, app.Options{Config: flowConfig(t)})
	f.focus("x")

	assert.Equal(t, []string{"basics"}, f.app.FlowNames())
	require.NoError(t, f.app.StartFlow("basics"))
	assert.True(t, f.app.FlowActive())
	assert.Contains(t, f.spoken(), "Press Search and the right arrow.")

	// Unexpected input is swallowed.
	f.rec.Reset()
	assert.False(t, f.app.HandleKey(key.MustParseSequence("Search+Left")))
	assert.Equal(t, "x", f.currentID(t))
	assert.Empty(t, f.rec.Spoken())

	// The expected key runs the step's command instead of its binding.
	assert.False(t, f.app.HandleKey(key.MustParseSequence("Search+Right")))
	assert.Equal(t, "y", f.currentID(t))
	assert.Contains(t, f.spoken(), "Well done.")

	assert.False(t, f.app.HandleGesture("swipeUp1"))
	assert.Contains(t, f.spoken(), "Finished.")
	assert.False(t, f.app.FlowActive())
	assert.Equal(t, "y", f.currentID(t), "the gesture's own binding did not run")
}

func TestCloseCombinationEndsFlow(t *testing.T) {
	f := newFixture(t, app.Options{Config: flowConfig(t)})
	require.NoError(t, f.app.StartFlow("basics"))
	f.rec.Reset()

	assert.False(t, f.app.HandleKeyEvent(key.MustParse("Ctrl+Alt+z")))
	assert.False(t, f.app.FlowActive())
	assert.Contains(t, f.spoken(), "Exited guided flow")

	// Without a flow the combination is an ordinary key.
	assert.True(t, f.app.HandleKeyEvent(key.MustParse("Ctrl+Alt+z")))
}

func TestCloseGuidedFlowCommand(t *testing.T) {
	f := newFixture(t, app.Options{Config: flowConfig(t)})

	assert.False(t, f.app.HandleKey(key.MustParseSequence("Search+Escape")))
	assert.Contains(t, f.spoken(), "No guided flow is active")

	require.NoError(t, f.app.StartFlow("basics"))
	f.rec.Reset()
	assert.False(t, f.app.Dispatcher().Dispatch(command.CloseGuidedFlow))
	assert.False(t, f.app.FlowActive())
	assert.Equal(t, []string{"Exited guided flow"}, f.rec.Spoken())
}

func TestStartFlowErrors(t *testing.T) {
	f := newFixture(t, app.Options{Config: flowConfig(t)})

	err := f.app.StartFlow("nope")
	assert.ErrorIs(t, err, app.ErrFlowNotFound)
	assert.Contains(t, f.spoken(), "No guided flow named nope")

	require.NoError(t, f.app.StartFlow("basics"))
	assert.ErrorIs(t, f.app.StartFlow("basics"), gate.ErrQueueActive)

	assert.True(t, f.app.CancelFlow())
	assert.False(t, f.app.CancelFlow())
	require.NoError(t, f.app.StartFlow("basics"), "a cancelled flow frees the slot")
}

func TestReloadSwapsRestrictionPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxnav.toml")
	writeFile(t, path, "[restrictions]\nmode = \"none\"\n")
	f := newFixture(t, app.Options{ConfigPath: path})

	assert.False(t, f.app.Dispatcher().Dispatch(command.ShowOptionsPage))
	assert.Equal(t, []string{"options"}, f.pages.opened)

	writeFile(t, path, "[restrictions]\nmode = \"kiosk\"\n\n[keymap.bindings]\n\"Search+Q\" = \"nextHeading\"\n")
	require.NoError(t, f.app.ReloadConfig())

	assert.True(t, f.app.Dispatcher().Dispatch(command.ShowOptionsPage))
	assert.Equal(t, []string{"options"}, f.pages.opened)
	assert.Equal(t, "kiosk", f.app.Config().Restrictions.Mode)

	cmd, ok := f.app.Keymap().Lookup(key.MustParseSequence("Search+Q"))
	assert.True(t, ok)
	assert.Equal(t, command.NextHeading, cmd)
	found := f.app.SearchCommands("next heading", 1)
	require.Len(t, found, 1)
	assert.Contains(t, found[0].Entry.Keys, key.MustParseSequence("Search+Q").String())

	// A broken file leaves the policy alone.
	writeFile(t, path, "[restrictions]\nmode = \"bogus\"\n")
	assert.Error(t, f.app.ReloadConfig())
	assert.True(t, f.app.Dispatcher().Dispatch(command.ShowOptionsPage))
	assert.Equal(t, "kiosk", f.app.Config().Restrictions.Mode)
}

func TestSearchCommandsListsRecentFirst(t *testing.T) {
	f := newFixture(t, app.Options{})
	f.focus("x")

	f.app.HandleKey(key.MustParseSequence("Search+Right"))
	recent := f.app.SearchCommands("", 1)
	require.Len(t, recent, 1)
	assert.Equal(t, command.NextObject, recent[0].Entry.Command)

	found := f.app.SearchCommands("previous object", 0)
	require.NotEmpty(t, found)
	assert.Equal(t, command.PreviousObject, found[0].Entry.Command)
}

func TestReloadWithoutFile(t *testing.T) {
	f := newFixture(t, app.Options{})
	assert.ErrorIs(t, f.app.ReloadConfig(), config.ErrNoPath)
}

func TestConfiguredDenyList(t *testing.T) {
	cfg := config.Default()
	cfg.Restrictions.Deny = []string{"showLogPage"}
	f := newFixture(t, app.Options{Config: cfg})

	assert.True(t, f.app.Dispatcher().Dispatch(command.ShowLogPage))
	assert.Empty(t, f.pages.opened)
	assert.False(t, f.app.Dispatcher().Dispatch(command.ShowOptionsPage))
}

func TestExecutePendingWithoutPlan(t *testing.T) {
	f := newFixture(t, app.Options{})
	assert.False(t, f.app.ExecutePending())
}

func TestShutdownSavesState(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.Path = filepath.Join(dir, "state.json")
	f := newFixture(t, app.Options{Config: cfg})

	f.app.HandleFocusChange(f.doc.Get("x"))
	_, ok := f.app.State().FocusPosition("https://example.com/")
	assert.True(t, ok)

	require.NoError(t, f.app.Shutdown())
	_, err := os.Stat(cfg.Storage.Path)
	assert.NoError(t, err)

	assert.NoError(t, f.app.Shutdown(), "second shutdown is a no-op")
	assert.True(t, f.app.HandleKey(key.MustParseSequence("Search+Right")))
	assert.False(t, f.app.ExecutePending())
	assert.True(t, errors.Is(f.app.StartFlow("basics"), app.ErrShutdown))
	assert.ErrorIs(t, f.app.ReloadConfig(), app.ErrShutdown)
}

func TestShutdownLogsDispatchMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.Navigation.Metrics = true
	var logs strings.Builder
	f := newFixture(t, app.Options{Config: cfg, LogOutput: &logs})
	f.focus("x")

	f.app.HandleKey(key.MustParseSequence("Search+Right"))
	f.app.HandleKey(key.MustParseSequence("Search+3"))
	require.NoError(t, f.app.Shutdown())

	assert.Contains(t, logs.String(), "dispatch metrics: 2 dispatches, 1 misses")
	assert.Contains(t, logs.String(), "nextObject=1")
	assert.Contains(t, logs.String(), "nextHeading3=1")
}

func TestDispatcherUsesConfiguredNavigation(t *testing.T) {
	cfg := config.Default()
	cfg.Navigation.Wrap = false
	f := newFixture(t, app.Options{Config: cfg})

	assert.Equal(t, dispatcher.DefaultConfig().WithWrap(false).Wrap, f.app.Dispatcher().Config().Wrap)
}
