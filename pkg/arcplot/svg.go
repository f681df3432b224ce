package arcplot

import (
	"fmt"
	"io"
	"strings"
)

// tickLength is the tick mark length in points.
const tickLength = 3.5

// GenerateSVG renders the layout to an SVG document without external
// dependencies.
func GenerateSVG(l Layout, opts Options) string {
	opts = opts.withDefaults()
	f := newFrame(l, opts)
	fontPx := opts.FontSize * opts.DPI / 72

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<style>
  .axis { fill: none; stroke: #000; stroke-width: %s; }
  .tick-label { font-family: sans-serif; font-size: %spx; fill: #000; text-anchor: end; dominant-baseline: central; }
  .arc { fill: none; stroke-width: %s; stroke-opacity: %s; stroke-linecap: butt; }
</style>
<rect width="%.0f" height="%.0f" fill="white"/>
`, f.width, f.height, f.width, f.height,
		num(opts.DPI/72), num(fontPx), num(opts.strokePixels()), num(opts.Opacity),
		f.width, f.height))

	paint(&svgSurface{sb: &sb, opts: opts}, l, opts)

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes the SVG rendering of l to w.
func WriteSVG(w io.Writer, l Layout, opts Options) error {
	_, err := io.WriteString(w, GenerateSVG(l, opts))
	return err
}

type svgSurface struct {
	sb   *strings.Builder
	opts Options
}

func (s *svgSurface) axis(f frame, l Layout) {
	y := f.baseline()
	s.sb.WriteString(fmt.Sprintf(`<line class="axis" x1="%s" y1="%s" x2="%s" y2="%s"/>
`, num(f.x(l.XMin, l)), num(y), num(f.x(l.XMax, l)), num(y)))
}

func (s *svgSurface) tick(f frame, l Layout, pos int) {
	x := f.x(float64(pos), l)
	y := f.baseline()
	tl := tickLength * s.opts.DPI / 72
	s.sb.WriteString(fmt.Sprintf(`<line class="axis" x1="%s" y1="%s" x2="%s" y2="%s"/>
`, num(x), num(y), num(x), num(y+tl)))

	// Labels run vertically so dense windows stay legible.
	ly := y + tl*2
	s.sb.WriteString(fmt.Sprintf(`<text class="tick-label" x="%s" y="%s" transform="rotate(-90 %s %s)">%d</text>
`, num(x), num(ly), num(x), num(ly), pos))
}

func (s *svgSurface) arc(f frame, l Layout, a Arc) {
	rx, ry := f.radii(a)
	y := f.y(0, l)
	x1 := f.x(a.Center, l) - rx
	x2 := f.x(a.Center, l) + rx

	// Sweep flag 1 goes from the left end over the top to the right end.
	s.sb.WriteString(fmt.Sprintf(`<path class="arc" stroke="%s" data-i="%d" data-j="%d" data-band="%s" d="M %s %s A %s %s 0 0 1 %s %s"/>
`, a.Band.Hex(), a.I, a.J, a.Band, num(x1), num(y), num(rx), num(ry), num(x2), num(y)))
}

// num formats a coordinate with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
