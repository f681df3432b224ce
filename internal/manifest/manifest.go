// Package manifest reads batch render manifests.
//
//	table: runs/tRNA.dp.txt
//	out_dir: plots
//	windows:
//	  - label: full
//	    start: 1
//	    end: 76
//	  - label: acceptor
//	    start: 1
//	    end: 7
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/arcplot/pkg/arcplot"
)

// ErrInvalid is returned for manifests that cannot be rendered.
var ErrInvalid = errors.New("invalid manifest")

// Window is one requested nucleotide range.
type Window struct {
	Label string `yaml:"label"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
}

// Request converts the window to a render request.
func (w Window) Request() arcplot.Request {
	return arcplot.Request{Start: w.Start, End: w.End, Label: w.Label}
}

// Manifest lists the windows to render from one table.
type Manifest struct {
	Table   string   `yaml:"table"`
	OutDir  string   `yaml:"out_dir"`
	Windows []Window `yaml:"windows"`
}

// Load reads and validates a manifest. Relative table and output paths
// are resolved against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	if m.Table != "" && !filepath.IsAbs(m.Table) {
		m.Table = filepath.Join(base, m.Table)
	}
	if m.OutDir != "" && !filepath.IsAbs(m.OutDir) {
		m.OutDir = filepath.Join(base, m.OutDir)
	}
	return m, nil
}

// Parse decodes and validates manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that every window has a non-empty label and that no two
// labels map to the same output file, so concurrent renders never share a
// path.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Table) == "" {
		return fmt.Errorf("%w: no table", ErrInvalid)
	}
	if len(m.Windows) == 0 {
		return fmt.Errorf("%w: no windows", ErrInvalid)
	}

	seen := make(map[string]int, len(m.Windows))
	for n, w := range m.Windows {
		label := strings.TrimSpace(w.Label)
		if label == "" {
			return fmt.Errorf("%w: window %d has no label", ErrInvalid, n+1)
		}
		base := arcplot.FileBase(label)
		if prev, ok := seen[base]; ok {
			return fmt.Errorf("%w: windows %d and %d both write %q", ErrInvalid, prev+1, n+1, base)
		}
		seen[base] = n
	}
	return nil
}
