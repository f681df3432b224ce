package arcplot

import (
	"fmt"
	"math"
	"strings"
)

// Format is an output encoding.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat accepts "svg" or "png", case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want svg or png)", s)
}

// Options controls rendering. A zero numeric field takes its value from
// DefaultOptions, so an Opacity of 0 means the default 0.7, not invisible
// arcs. Negative values and an Opacity above 1 are rejected by Validate.
type Options struct {
	OutDir      string   // destination directory ("" = current directory)
	DPI         float64  // pixels per canvas unit
	StrokeWidth float64  // arc stroke in points
	Opacity     float64  // arc stroke opacity, 0..1
	FontSize    float64  // tick label size in points
	Margin      float64  // top, left and right padding in canvas units
	AxisMargin  float64  // space under the axis for tick labels, in canvas units
	Formats     []Format // outputs to write; empty means both
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		DPI:         100,
		StrokeWidth: 4,
		Opacity:     0.7,
		FontSize:    6,
		Margin:      0.25,
		AxisMargin:  0.6,
		Formats:     []Format{FormatPNG, FormatSVG},
	}
}

// Validate rejects values that cannot be rendered.
func (o Options) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"DPI", o.DPI},
		{"stroke width", o.StrokeWidth},
		{"opacity", o.Opacity},
		{"font size", o.FontSize},
		{"margin", o.Margin},
		{"axis margin", o.AxisMargin},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be a non-negative number, got %v", f.name, f.value)
		}
	}
	if o.Opacity > 1 {
		return fmt.Errorf("opacity must be at most 1, got %v", o.Opacity)
	}
	for _, f := range o.Formats {
		if _, err := ParseFormat(string(f)); err != nil {
			return err
		}
	}
	return nil
}

// withDefaults fills zero fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.StrokeWidth <= 0 {
		o.StrokeWidth = d.StrokeWidth
	}
	if o.Opacity <= 0 {
		o.Opacity = d.Opacity
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	if o.Margin <= 0 {
		o.Margin = d.Margin
	}
	if o.AxisMargin <= 0 {
		o.AxisMargin = d.AxisMargin
	}
	if len(o.Formats) == 0 {
		o.Formats = d.Formats
	}
	return o
}

// strokePixels converts the stroke width from points to pixels.
func (o Options) strokePixels() float64 {
	return o.StrokeWidth * o.DPI / 72
}
