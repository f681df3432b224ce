package arcplot

import (
	"io"
	"path/filepath"

	"github.com/ha1tch/arcplot/pkg/dotplot"
)

// Result describes a finished render.
type Result struct {
	Layout Layout
	Files  []string // written paths, in Options.Formats order
}

// Render filters t to the request window, lays out the arcs and writes one
// file per requested format to opts.OutDir, named after req.Label.
// Nothing is written when any step fails.
func Render(t *dotplot.Table, req Request, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	arcs, err := Arcs(t, req)
	if err != nil {
		return nil, err
	}
	layout := NewLayout(arcs, req)
	return Publish(layout, req.Label, opts)
}

// Publish writes an already computed layout.
func Publish(layout Layout, label string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	base := FileBase(label)

	arts := make([]Artifact, 0, len(opts.Formats))
	res := &Result{Layout: layout}
	for _, raw := range opts.Formats {
		format, err := ParseFormat(string(raw))
		if err != nil {
			return nil, err
		}
		path := filepath.Join(opts.OutDir, base+"."+string(format))
		switch format {
		case FormatPNG:
			arts = append(arts, Artifact{Path: path, Write: func(w io.Writer) error {
				return WritePNG(w, layout, opts)
			}})
		case FormatSVG:
			arts = append(arts, Artifact{Path: path, Write: func(w io.Writer) error {
				return WriteSVG(w, layout, opts)
			}})
		}
		res.Files = append(res.Files, path)
	}

	if err := WriteFiles(opts.OutDir, arts...); err != nil {
		return nil, err
	}
	return res, nil
}
