package arcplot

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ha1tch/arcplot/pkg/dotplot"
)

var (
	// ErrInvalidRange is returned when the window is empty or starts before 1.
	ErrInvalidRange = errors.New("invalid nucleotide range")
	// ErrRangeExceedsSequence is returned when the window ends past the sequence.
	ErrRangeExceedsSequence = errors.New("range exceeds sequence length")
)

// Request selects the inclusive, 1-based nucleotide window to draw.
// Label names the output files.
type Request struct {
	Start int
	End   int
	Label string
}

// Validate checks the window against a sequence of the given length.
func (r Request) Validate(length int) error {
	if r.End > length {
		return fmt.Errorf("%w: end %d > length %d", ErrRangeExceedsSequence, r.End, length)
	}
	if r.Start > r.End {
		return fmt.Errorf("%w: start %d > end %d", ErrInvalidRange, r.Start, r.End)
	}
	if r.Start < 1 {
		return fmt.Errorf("%w: start %d < 1", ErrInvalidRange, r.Start)
	}
	return nil
}

// Contains reports whether position n lies inside the window.
func (r Request) Contains(n int) bool {
	return n >= r.Start && n <= r.End
}

// Arc is one retained pair ready to draw.
type Arc struct {
	I, J     int
	Score    float64 // -log10(probability)
	Center   float64 // midpoint of I and J
	Span     float64 // |J - I|, the arc diameter
	Band     Band
	Priority int
}

// NewArc builds the arc for a pair in band b.
func NewArc(p dotplot.Pair, b Band) Arc {
	return Arc{
		I:        p.I,
		J:        p.J,
		Score:    p.NegLog10P,
		Center:   float64(p.I+p.J) / 2,
		Span:     math.Abs(float64(p.J - p.I)),
		Band:     b,
		Priority: b.Priority(),
	}
}

// HalfSpan returns the arc radius, which is also its height.
func (a Arc) HalfSpan() float64 { return a.Span / 2 }

// Arcs filters t to the request window and returns the arcs in draw order:
// ascending priority, ties in table order.
func Arcs(t *dotplot.Table, req Request) ([]Arc, error) {
	if err := req.Validate(t.Length); err != nil {
		return nil, err
	}

	arcs := make([]Arc, 0)
	for _, p := range t.Pairs {
		b, ok := BandFor(p.NegLog10P)
		if !ok {
			continue
		}
		if !req.Contains(p.I) || !req.Contains(p.J) {
			continue
		}
		arcs = append(arcs, NewArc(p, b))
	}

	sort.SliceStable(arcs, func(x, y int) bool {
		return arcs[x].Priority < arcs[y].Priority
	})
	return arcs, nil
}

// CountByBand tallies arcs per band.
func CountByBand(arcs []Arc) map[Band]int {
	counts := make(map[Band]int, len(Bands))
	for _, a := range arcs {
		counts[a.Band]++
	}
	return counts
}
