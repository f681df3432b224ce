// Canvas geometry for arc diagrams.
// Data coordinates are nucleotide positions on X and arc height on Y;
// frame maps them to pixels for both encoders.

package arcplot

import "math"

// unitsPerNucleotide scales window width and arc height into canvas units.
const unitsPerNucleotide = 4.0

// Layout is the geometry of one arc diagram in data coordinates.
type Layout struct {
	Start, End  int
	WidthUnits  float64 // (End - Start) / 4
	HeightUnits float64 // MaxHalfSpan / 4
	MaxHalfSpan float64 // tallest arc inside the window, 0 if none

	XMin, XMax float64 // Start-0.5 .. End+0.5
	YMin, YMax float64 // 0 .. MaxHalfSpan+0.5

	Arcs []Arc // draw order
}

// NewLayout sizes the canvas for arcs drawn over the request window.
// Only arcs with both ends inside the window count towards the height.
func NewLayout(arcs []Arc, req Request) Layout {
	maxHalf := 0.0
	for _, a := range arcs {
		if !req.Contains(a.I) || !req.Contains(a.J) {
			continue
		}
		maxHalf = math.Max(maxHalf, a.HalfSpan())
	}

	return Layout{
		Start:       req.Start,
		End:         req.End,
		WidthUnits:  float64(req.End-req.Start) / unitsPerNucleotide,
		HeightUnits: maxHalf / unitsPerNucleotide,
		MaxHalfSpan: maxHalf,
		XMin:        float64(req.Start) - 0.5,
		XMax:        float64(req.End) + 0.5,
		YMin:        0,
		YMax:        maxHalf + 0.5,
		Arcs:        arcs,
	}
}

// Ticks returns every nucleotide position in the window.
func (l Layout) Ticks() []int {
	if l.End < l.Start {
		return nil
	}
	ticks := make([]int, 0, l.End-l.Start+1)
	for n := l.Start; n <= l.End; n++ {
		ticks = append(ticks, n)
	}
	return ticks
}

// frame is a Layout placed on a pixel canvas.
type frame struct {
	width, height float64 // whole canvas
	left, top     float64 // plot origin
	plotW, plotH  float64
	sx, sy        float64 // pixels per data unit
}

func newFrame(l Layout, opts Options) frame {
	px := opts.DPI
	f := frame{
		plotW: l.WidthUnits * px,
		plotH: l.HeightUnits * px,
		left:  opts.Margin * px,
		top:   opts.Margin * px,
	}
	bottom := opts.AxisMargin * px
	f.width = math.Ceil(f.left*2 + f.plotW)
	f.height = math.Ceil(f.top + f.plotH + bottom)
	f.sx = f.plotW / (l.XMax - l.XMin)
	f.sy = f.plotH / (l.YMax - l.YMin)
	return f
}

// x maps a nucleotide coordinate to a pixel column.
func (f frame) x(v float64, l Layout) float64 {
	return f.left + (v-l.XMin)*f.sx
}

// y maps an arc height to a pixel row (Y grows downward).
func (f frame) y(v float64, l Layout) float64 {
	return f.top + f.plotH - (v-l.YMin)*f.sy
}

// baseline is the pixel row of the horizontal axis.
func (f frame) baseline() float64 {
	return f.top + f.plotH
}

// radii returns the pixel radii of an arc. They differ when the two axes
// are not scaled alike.
func (f frame) radii(a Arc) (rx, ry float64) {
	r := a.HalfSpan()
	return r * f.sx, r * f.sy
}
