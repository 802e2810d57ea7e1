package memtree

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/voxnav/internal/tree"
)

// nodeSpec is the YAML form of a node.
type nodeSpec struct {
	ID       string     `yaml:"id"`
	Role     string     `yaml:"role"`
	Name     string     `yaml:"name"`
	Value    string     `yaml:"value"`
	States   []string   `yaml:"states"`
	Level    int        `yaml:"level"`
	URL      string     `yaml:"url"`
	Lang     string     `yaml:"lang"`
	Cell     []int      `yaml:"cell"`
	Caret    []int      `yaml:"caret"`
	Rect     []int      `yaml:"rect"`
	Focused  bool       `yaml:"focused"`
	Children []nodeSpec `yaml:"children"`
}

// documentSpec is the YAML form of a document.
type documentSpec struct {
	Windows []nodeSpec `yaml:"windows"`
}

// LoadYAML builds a document from YAML. The top level holds a "windows" list
// of nodes placed under the desktop; a node marked focused receives host
// focus.
func LoadYAML(r io.Reader) (*Document, error) {
	var spec documentSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("memtree: decoding document: %w", err)
	}
	if len(spec.Windows) == 0 {
		return nil, fmt.Errorf("memtree: document has no windows")
	}

	var focused *Node
	top := make([]*Node, 0, len(spec.Windows))
	for i := range spec.Windows {
		n, err := build(&spec.Windows[i], &focused)
		if err != nil {
			return nil, err
		}
		top = append(top, n)
	}

	doc := NewDocument(top...)
	if focused != nil {
		doc.SetFocus(focused)
	}
	return doc, nil
}

// LoadYAMLFile reads a YAML document from path.
func LoadYAMLFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("memtree: %w", err)
	}
	defer f.Close()
	return LoadYAML(f)
}

func build(s *nodeSpec, focused **Node) (*Node, error) {
	if s.Role == "" {
		return nil, fmt.Errorf("memtree: node %q has no role", s.Name)
	}

	opts := []Option{ID(s.ID), Value(s.Value), Level(s.Level), URL(s.URL), Lang(s.Lang)}
	for _, name := range s.States {
		st := tree.StateFromName(name)
		if st == 0 {
			return nil, fmt.Errorf("memtree: node %q: unknown state %q", s.Name, name)
		}
		opts = append(opts, States(st))
	}
	if len(s.Cell) > 0 {
		if len(s.Cell) != 2 {
			return nil, fmt.Errorf("memtree: node %q: cell needs [row, col]", s.Name)
		}
		opts = append(opts, Cell(s.Cell[0], s.Cell[1]))
	}
	if len(s.Caret) > 0 {
		if len(s.Caret) != 2 {
			return nil, fmt.Errorf("memtree: node %q: caret needs [anchor, focus]", s.Name)
		}
		opts = append(opts, Caret(s.Caret[0], s.Caret[1]))
	}
	if len(s.Rect) > 0 {
		if len(s.Rect) != 4 {
			return nil, fmt.Errorf("memtree: node %q: rect needs [left, top, width, height]", s.Name)
		}
		opts = append(opts, At(tree.Rect{Left: s.Rect[0], Top: s.Rect[1], Width: s.Rect[2], Height: s.Rect[3]}))
	}

	children := make([]*Node, 0, len(s.Children))
	for i := range s.Children {
		c, err := build(&s.Children[i], focused)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	opts = append(opts, Kids(children...))

	n := N(tree.Role(s.Role), s.Name, opts...)
	if s.Focused {
		*focused = n
	}
	return n, nil
}
