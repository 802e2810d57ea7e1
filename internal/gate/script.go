package gate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/voxnav/internal/command"
	"github.com/dshills/voxnav/internal/input/key"
)

// Script is a guided flow as written in YAML:
//
//	name: basics
//	description: Moving by object
//	actions:
//	  - type: key_sequence
//	    value: Search+Right
//	    before: Press Search and the right arrow.
//	    after: Well done.
//	    command: nextObject
//	    propagate: false
//	  - type: gesture
//	    value: swipeUp1
type Script struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Actions     []ActionDef `yaml:"actions"`

	path string
}

// ActionDef is the YAML form of an ExpectedAction.
type ActionDef struct {
	Type      string `yaml:"type"`
	Value     string `yaml:"value"`
	Before    string `yaml:"before"`
	After     string `yaml:"after"`
	Command   string `yaml:"command"`
	Propagate bool   `yaml:"propagate"`
}

// Spec converts the definition to a Spec, parsing key sequences and command
// names.
func (d ActionDef) Spec() (Spec, error) {
	typ, err := ParseActionType(d.Type)
	if err != nil {
		return Spec{}, err
	}
	spec := Spec{
		Type:            typ,
		Value:           d.Value,
		ShouldPropagate: d.Propagate,
		BeforeMessage:   d.Before,
		AfterMessage:    d.After,
	}
	if typ == KeySequence {
		seq, err := key.ParseSequence(d.Value)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %v", ErrPayloadType, err)
		}
		spec.Value = seq
	}
	if d.Command != "" {
		cmd, ok := command.Parse(d.Command)
		if !ok {
			return Spec{}, fmt.Errorf("unknown command %q", d.Command)
		}
		spec.AfterCommand = cmd
	}
	return spec, nil
}

// ExpectedActions validates every action of s.
func (s *Script) ExpectedActions() ([]ExpectedAction, error) {
	if len(s.Actions) == 0 {
		return nil, &ScriptError{Path: s.path, Action: -1, Err: ErrEmptyQueue}
	}
	out := make([]ExpectedAction, 0, len(s.Actions))
	for i, def := range s.Actions {
		spec, err := def.Spec()
		if err != nil {
			return nil, &ScriptError{Path: s.path, Action: i, Err: err}
		}
		a, err := NewExpectedAction(spec)
		if err != nil {
			return nil, &ScriptError{Path: s.path, Action: i, Err: err}
		}
		out = append(out, a)
	}
	return out, nil
}

// ParseScript decodes and validates a script. path is used in errors and as
// the default name.
func ParseScript(r io.Reader, path string) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ScriptError{Path: path, Action: -1, Err: ErrEmptyQueue}
		}
		return nil, &ScriptError{Path: path, Action: -1, Err: err}
	}
	s.path = path
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if _, err := s.ExpectedActions(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(bytes.NewReader(data), path)
}

// LoadDir reads every .yaml and .yml script in dir, keyed by script name.
func LoadDir(dir string) (map[string]*Script, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	scripts := make(map[string]*Script)
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		s, err := LoadScript(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if prev, ok := scripts[s.Name]; ok {
			return nil, &ScriptError{Path: s.path, Action: -1, Err: fmt.Errorf("duplicate flow name %q (also in %s)", s.Name, prev.path)}
		}
		scripts[s.Name] = s
	}
	return scripts, nil
}

// Names returns the sorted flow names of scripts.
func Names(scripts map[string]*Script) []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
