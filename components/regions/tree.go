package regions

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/regions.yaml
var dataFS embed.FS

const defaultTreePath = "data/regions.yaml"

var (
	defaultOnce sync.Once
	defaultTree *Tree
	defaultErr  error
)

// Region is one node of the tree. Children are not serialized in option
// responses; clients fetch them by id.
type Region struct {
	ID       string   `yaml:"id" json:"id"`
	NameCN   string   `yaml:"name_cn" json:"name_cn"`
	NameEN   string   `yaml:"name_en,omitempty" json:"name_en,omitempty"`
	Children []Region `yaml:"children,omitempty" json:"-"`
}

// Tree indexes regions by parent id.
type Tree struct {
	roots    []Region
	children map[string][]Region
}

type treeDocument struct {
	Regions []Region `yaml:"regions"`
}

// DefaultTree returns the embedded region tree.
func DefaultTree() (*Tree, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultTreePath)
		if err != nil {
			defaultErr = err
			return
		}
		defer f.Close()
		defaultTree, defaultErr = LoadTree(f)
	})
	return defaultTree, defaultErr
}

// LoadTree parses a YAML document with a top-level "regions" list.
func LoadTree(r io.Reader) (*Tree, error) {
	if r == nil {
		return nil, fmt.Errorf("regions: missing reader")
	}
	var doc treeDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("regions: decode tree: %w", err)
	}
	return NewTree(doc.Regions)
}

// NewTree indexes roots. Ids must be non-empty and unique across the tree.
func NewTree(roots []Region) (*Tree, error) {
	t := &Tree{children: make(map[string][]Region)}
	seen := make(map[string]struct{})

	var walk func(nodes []Region) ([]Region, error)
	walk = func(nodes []Region) ([]Region, error) {
		out := make([]Region, 0, len(nodes))
		for _, node := range nodes {
			node.ID = strings.TrimSpace(node.ID)
			if node.ID == "" {
				return nil, fmt.Errorf("regions: region %q has an empty id", node.NameCN)
			}
			if _, dup := seen[node.ID]; dup {
				return nil, fmt.Errorf("regions: duplicate id %q", node.ID)
			}
			seen[node.ID] = struct{}{}

			kids, err := walk(node.Children)
			if err != nil {
				return nil, err
			}
			if len(kids) > 0 {
				t.children[node.ID] = kids
			}
			node.Children = nil
			out = append(out, node)
		}
		return out, nil
	}

	roots, err := walk(roots)
	if err != nil {
		return nil, err
	}
	t.roots = roots
	return t, nil
}

// Children returns the top-level regions for an empty parent, the children of
// a known parent, and nil otherwise. The returned slice is a copy.
func (t *Tree) Children(parent string) []Region {
	if t == nil {
		return nil
	}
	parent = strings.TrimSpace(parent)
	if parent == "" {
		return append([]Region{}, t.roots...)
	}
	kids, ok := t.children[parent]
	if !ok {
		return nil
	}
	return append([]Region{}, kids...)
}
