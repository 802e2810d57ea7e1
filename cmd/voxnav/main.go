// Package main is a terminal demo host for voxnav. It loads an
// accessibility tree from YAML, reads keys through tcell and shows what the
// screen reader would speak and braille.
package main

import (
	"bytes"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/voxnav/internal/app"
	"github.com/dshills/voxnav/internal/config"
	"github.com/dshills/voxnav/internal/input/key"
	"github.com/dshills/voxnav/internal/input/keymap"
	"github.com/dshills/voxnav/internal/input/palette"
	"github.com/dshills/voxnav/internal/tree"
	mt "github.com/dshills/voxnav/internal/tree/memtree"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

//go:embed sample.yaml
var sampleDocument []byte

type options struct {
	configPath  string
	docPath     string
	flow        string
	logLevel    string
	commands    string
	listCmds    bool
	showVersion bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	if opts.showVersion {
		fmt.Printf("voxnav %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}
	if opts.listCmds {
		if err := listCommands(os.Stdout, opts.configPath, opts.commands); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	doc, err := loadDocument(opts.docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
		return 1
	}
	defer screen.Fini()

	v := newView(screen, "voxnav: Alt is Search, Tab moves focus, Ctrl+Q quits")
	application, err := app.New(app.Options{
		Host:        doc,
		ConfigPath:  opts.configPath,
		WatchConfig: opts.configPath != "",
		LogLevel:    opts.logLevel,
		LogOutput:   v,
		Sink:        v,
		Pages:       v,
		Version:     version,
	})
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer func() {
		if err := application.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		<-signals
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	h := &host{doc: doc, app: application, view: v}
	if focus := doc.Focus(); focus != nil {
		application.HandleFocusChange(focus)
	}
	if opts.flow != "" {
		if err := application.StartFlow(opts.flow); err != nil {
			v.Host("cannot start flow: %v", err)
		}
	}
	v.draw()

	for {
		switch ev := screen.PollEvent().(type) {
		case nil, *tcell.EventInterrupt:
			return 0
		case *tcell.EventResize:
			screen.Sync()
			v.draw()
		case *tcell.EventKey:
			if isQuit(ev) {
				return 0
			}
			k, ok := convertKey(ev)
			if !ok {
				continue
			}
			if application.HandleKeyEvent(k) {
				h.defaultAction(k)
			}
		}
	}
}

func parseFlags() options {
	var opts options

	flag.StringVar(&opts.configPath, "config", os.Getenv(config.EnvConfigPath), "Path to configuration file")
	flag.StringVar(&opts.docPath, "doc", "", "YAML accessibility tree to navigate (default: built-in sample)")
	flag.StringVar(&opts.flow, "flow", "", "Guided flow to start")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	flag.StringVar(&opts.commands, "commands", "", "List commands matching a query and their keys, then exit")
	flag.BoolVar(&opts.showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "voxnav - screen reader navigation demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: voxnav [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  voxnav                            Navigate the sample page\n")
		fmt.Fprintf(os.Stderr, "  voxnav -doc page.yaml             Navigate a custom tree\n")
		fmt.Fprintf(os.Stderr, "  voxnav -config voxnav.toml -flow basics\n")
		fmt.Fprintf(os.Stderr, "  voxnav -commands heading            Find heading commands\n")
	}

	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "commands" {
			opts.listCmds = true
		}
	})

	switch opts.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}
	return opts
}

// listCommands prints the commands matching query with the keys bound to
// them under the configuration at path. An empty query lists everything.
func listCommands(w io.Writer, path, query string) error {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	reg := keymap.NewRegistry()
	if err := reg.Register(keymap.Default()); err != nil {
		return err
	}
	if err := reg.Register(cfg.UserKeymap()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range palette.New(reg).Search(query, 0) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Entry.Command, r.Entry.Title, strings.Join(r.Entry.Keys, ", "))
	}
	return tw.Flush()
}

func loadDocument(path string) (*mt.Document, error) {
	if path == "" {
		return mt.LoadYAML(bytes.NewReader(sampleDocument))
	}
	return mt.LoadYAMLFile(path)
}

// host is the demo's stand-in for a browser: it handles keys the screen
// reader passes through.
type host struct {
	doc  *mt.Document
	app  *app.Application
	view *view
}

var errNoFocusable = errors.New("nothing focusable")

func (h *host) defaultAction(ev key.Event) {
	switch {
	case ev.Key == key.KeyTab:
		dir := tree.Forward
		if ev.Modifiers.HasShift() {
			dir = tree.Backward
		}
		if err := h.moveFocus(dir); err != nil {
			h.view.Host("%v", err)
		}
	case ev.Key == key.KeyEnter:
		if n := h.doc.Focus(); n != nil {
			h.doc.DoDefault(n)
			h.view.Host("activate %s", n.Name())
		}
	default:
		h.doc.SendKeyPress(ev)
		h.view.Host("key %s", ev)
	}
}

// moveFocus moves host focus to the next focusable node, wrapping at the
// ends, and reports the change to the screen reader.
func (h *host) moveFocus(dir tree.Dir) error {
	focusable := func(n tree.Node) bool { return n.State().Has(tree.StateFocusable) }

	var next tree.Node
	if cur := h.doc.Focus(); cur != nil {
		next = tree.FindNext(cur, dir, focusable, tree.FindOptions{})
	}
	if next == nil {
		start := h.doc.Desktop()
		if dir == tree.Backward {
			start = tree.LastDescendant(start)
		}
		next = tree.FindNext(start, dir, focusable, tree.FindOptions{Inclusive: true})
	}
	n, ok := next.(*mt.Node)
	if !ok || n == nil {
		return errNoFocusable
	}
	h.doc.SetFocus(n)
	h.app.HandleFocusChange(n)
	return nil
}
