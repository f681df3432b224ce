// Package arcplot turns a base-pair probability table into an arc diagram.
//
// Pairs are filtered by a fixed probability cutoff, binned into confidence
// bands and drawn as upper half circles over a nucleotide axis. Arcs are
// painted in ascending band order so that likely pairs are never hidden
// under unlikely ones.
package arcplot

import (
	"fmt"
	"image/color"
)

// Band is a confidence tier. Its numeric value is the draw priority:
// higher bands are painted later and end up on top.
type Band int

const (
	BandLow        Band = iota // probability below 0.10
	BandMedium                 // probability >= 0.10
	BandMediumHigh             // probability >= 0.30
	BandHigh                   // probability >= 0.80
)

// Score thresholds on -log10(probability). Each bound is inclusive.
const (
	HighMax       = 0.09691 // ~ -log10(0.80)
	MediumHighMax = 0.52288 // ~ -log10(0.30)
	MediumMax     = 1.0     // -log10(0.10)

	// Cutoff drops every pair at or above it (probability below 1%).
	Cutoff = 2.0
)

// Bands lists every band in draw order.
var Bands = []Band{BandLow, BandMedium, BandMediumHigh, BandHigh}

var bandColors = map[Band]color.RGBA{
	BandLow:        {0xD3, 0xD3, 0xD3, 0xFF}, // light grey
	BandMedium:     {0xF7, 0xCE, 0x12, 0xFF}, // yellow
	BandMediumHigh: {0x1C, 0x73, 0xBE, 0xFF}, // blue
	BandHigh:       {0x00, 0x80, 0x00, 0xFF}, // green
}

// BandFor bins a -log10(probability) score. ok is false when the score is
// at or above Cutoff and the pair should not be drawn at all.
func BandFor(score float64) (b Band, ok bool) {
	switch {
	case score >= Cutoff:
		return BandLow, false
	case score <= HighMax:
		return BandHigh, true
	case score <= MediumHighMax:
		return BandMediumHigh, true
	case score <= MediumMax:
		return BandMedium, true
	default:
		return BandLow, true
	}
}

// Priority returns the z-order rank of the band.
func (b Band) Priority() int { return int(b) }

// Color returns the opaque stroke color of the band.
func (b Band) Color() color.RGBA {
	return bandColors[b]
}

// Hex returns the band color as #RRGGBB.
func (b Band) Hex() string {
	c := b.Color()
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (b Band) String() string {
	switch b {
	case BandLow:
		return "LOW"
	case BandMedium:
		return "MEDIUM"
	case BandMediumHigh:
		return "MEDIUM_HIGH"
	case BandHigh:
		return "HIGH"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}
