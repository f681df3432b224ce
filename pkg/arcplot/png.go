// Native PNG rendering for arc diagrams.
// Mirrors the SVG renderer output at a fixed DPI.

package arcplot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

var (
	colorWhite = color.RGBA{255, 255, 255, 255}
	colorBlack = color.RGBA{0, 0, 0, 255}
)

// RenderPNG renders the layout to an image context at opts.DPI.
func RenderPNG(l Layout, opts Options) (*gg.Context, error) {
	opts = opts.withDefaults()
	f := newFrame(l, opts)

	face, err := labelFace(opts)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	dc := gg.NewContext(int(f.width), int(f.height))
	dc.SetColor(colorWhite)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetLineCapButt()

	paint(&pngSurface{dc: dc, opts: opts}, l, opts)
	return dc, nil
}

// WritePNG writes the PNG rendering of l to w. The file records opts.DPI
// in a pHYs chunk so it prints at the intended size.
func WritePNG(w io.Writer, l Layout, opts Options) error {
	opts = opts.withDefaults()
	dc, err := RenderPNG(l, opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return err
	}
	data, err := withResolution(buf.Bytes(), opts.DPI)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

const (
	pngHeader     = "\x89PNG\r\n\x1a\n"
	ihdrLength    = 8 + 13 + 4 // length, type, data, CRC
	metersPerInch = 0.0254
)

// withResolution inserts a pHYs chunk right after IHDR, where the PNG
// format requires it to precede the image data.
func withResolution(data []byte, dpi float64) ([]byte, error) {
	end := len(pngHeader) + ihdrLength
	if len(data) < end || string(data[:len(pngHeader)]) != pngHeader || string(data[12:16]) != "IHDR" {
		return nil, errors.New("png: unexpected encoder output")
	}

	ppm := uint32(math.Round(dpi / metersPerInch))
	chunk := make([]byte, 4+4+9+4)
	binary.BigEndian.PutUint32(chunk[0:], 9)
	copy(chunk[4:], "pHYs")
	binary.BigEndian.PutUint32(chunk[8:], ppm)
	binary.BigEndian.PutUint32(chunk[12:], ppm)
	chunk[16] = 1 // unit: meter
	binary.BigEndian.PutUint32(chunk[17:], crc32.ChecksumIEEE(chunk[4:17]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:end]...)
	out = append(out, chunk...)
	return append(out, data[end:]...), nil
}

// labelFace loads Go Regular at the tick label size.
func labelFace(opts Options) (font.Face, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    opts.FontSize,
		DPI:     opts.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return face, nil
}

type pngSurface struct {
	dc   *gg.Context
	opts Options
}

func (s *pngSurface) axis(f frame, l Layout) {
	s.dc.SetColor(colorBlack)
	s.dc.SetLineWidth(s.opts.DPI / 72)
	y := f.baseline()
	s.dc.DrawLine(f.x(l.XMin, l), y, f.x(l.XMax, l), y)
	s.dc.Stroke()
}

func (s *pngSurface) tick(f frame, l Layout, pos int) {
	x := f.x(float64(pos), l)
	y := f.baseline()
	tl := tickLength * s.opts.DPI / 72

	s.dc.SetColor(colorBlack)
	s.dc.SetLineWidth(s.opts.DPI / 72)
	s.dc.DrawLine(x, y, x, y+tl)
	s.dc.Stroke()

	ly := y + tl*2
	s.dc.Push()
	s.dc.RotateAbout(gg.Radians(-90), x, ly)
	s.dc.DrawStringAnchored(fmt.Sprint(pos), x, ly, 1, 0.5)
	s.dc.Pop()
}

func (s *pngSurface) arc(f frame, l Layout, a Arc) {
	rx, ry := f.radii(a)
	c := a.Band.Color()
	c.A = uint8(math.Round(s.opts.Opacity * 255))

	s.dc.SetColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	s.dc.SetLineWidth(s.opts.strokePixels())
	s.dc.NewSubPath()
	// Y grows downward, so pi..2pi is the upper half.
	s.dc.DrawEllipticalArc(f.x(a.Center, l), f.y(0, l), rx, ry, math.Pi, 2*math.Pi)
	s.dc.Stroke()
}
