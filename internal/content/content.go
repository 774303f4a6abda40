// Package content loads the portfolio document that populates the scene.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var embedded []byte

// Section is a corner platform with an info hologram, a curiosity hologram
// and a highlight ring.
type Section struct {
	Name        string     `yaml:"name"`
	Position    [2]float64 `yaml:"position"` // ground X, Z
	Color       uint32     `yaml:"color"`
	Info        []string   `yaml:"info"`
	Curiosities []string   `yaml:"curiosities"`
}

// Project is a spot on the central ring.
type Project struct {
	Name    string   `yaml:"name"`
	Color   uint32   `yaml:"color"`
	Info    []string `yaml:"info"`
	Details []string `yaml:"details"`
}

type Center struct {
	Title string   `yaml:"title"`
	Color uint32   `yaml:"color"`
	Lines []string `yaml:"lines"`
}

type Portfolio struct {
	Owner         string    `yaml:"owner"`
	Sections      []Section `yaml:"sections"`
	ProjectRadius float64   `yaml:"projectRadius"`
	Projects      []Project `yaml:"projects"`
	Center        Center    `yaml:"center"`
}

var ErrEmpty = errors.New("content: document is empty")

type duplicateNameError struct {
	kind, name string
}

func (e *duplicateNameError) Error() string {
	return fmt.Sprintf("content: duplicate %s name %q", e.kind, e.name)
}

// Default returns the portfolio shipped with the binary.
func Default() (*Portfolio, error) {
	return Parse(bytes.NewReader(embedded))
}

// Load reads a portfolio from path, or the embedded one when path is empty.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a single YAML document. Unknown keys are
// rejected so typos do not silently drop content.
func Parse(r io.Reader) (*Portfolio, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Portfolio
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// CenterName is the panel name of the central hologram.
const CenterName = "center"

// Validate checks names and ring geometry. Section and project names share
// one namespace, since each becomes the stem of its panel names.
func (p *Portfolio) Validate() error {
	seen := map[string]struct{}{CenterName: {}}
	check := func(kind string, i int, raw string) error {
		name := strings.TrimSpace(raw)
		if name == "" {
			return fmt.Errorf("content: %s %d has no name", kind, i)
		}
		if strings.Contains(name, "/") {
			return fmt.Errorf("content: %s name %q must not contain '/'", kind, name)
		}
		if _, dup := seen[name]; dup {
			return &duplicateNameError{kind: kind, name: name}
		}
		seen[name] = struct{}{}
		return nil
	}
	for i, s := range p.Sections {
		if err := check("section", i, s.Name); err != nil {
			return err
		}
	}
	for i, pr := range p.Projects {
		if err := check("project", i, pr.Name); err != nil {
			return err
		}
	}
	if len(p.Projects) > 0 && p.ProjectRadius <= 0 {
		return fmt.Errorf("content: projectRadius must be positive, got %g", p.ProjectRadius)
	}
	return nil
}
