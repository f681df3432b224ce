// Package dotplot provides the base-pair probability table ("dot plot")
// produced by RNAstructure's ProbabilityPlot in text mode.
package dotplot

import (
	"errors"
	"fmt"
	"math"
)

// Column names of the text dot plot. Matched exactly.
const (
	ColumnI     = "i"
	ColumnJ     = "j"
	ColumnScore = "-log10(Probability)"
)

var (
	// ErrMalformedHeader is returned when the sequence length line is
	// missing, empty or not a positive integer.
	ErrMalformedHeader = errors.New("malformed dot plot header")
	// ErrMalformedTable is returned when the column header row is missing
	// or lacks a required column.
	ErrMalformedTable = errors.New("malformed dot plot table")
	// ErrMalformedRow is returned for a data row with non-numeric or
	// out-of-range fields.
	ErrMalformedRow = errors.New("malformed dot plot row")
)

// Pair is one reported base-pair probability.
// I and J are 1-based and not necessarily ordered.
type Pair struct {
	I         int
	J         int
	NegLog10P float64 // -log10(probability); smaller is more likely
}

// Probability returns the pairing probability in [0, 1].
func (p Pair) Probability() float64 {
	return math.Pow(10, -p.NegLog10P)
}

// Table is a parsed dot plot.
type Table struct {
	Length int    // total nucleotide count
	Pairs  []Pair // file order
}

// New creates an empty table for a sequence of the given length.
func New(length int) *Table {
	return &Table{
		Length: length,
		Pairs:  make([]Pair, 0),
	}
}

// Add appends a pair to the table.
func (t *Table) Add(i, j int, negLog10P float64) {
	t.Pairs = append(t.Pairs, Pair{I: i, J: j, NegLog10P: negLog10P})
}

// Validate checks the table invariants.
func (t *Table) Validate() error {
	if t.Length < 1 {
		return fmt.Errorf("%w: sequence length %d", ErrMalformedHeader, t.Length)
	}
	for n, p := range t.Pairs {
		if err := t.checkPair(p); err != nil {
			return fmt.Errorf("pair %d: %w", n, err)
		}
	}
	return nil
}

func (t *Table) checkPair(p Pair) error {
	if p.I < 1 || p.I > t.Length {
		return fmt.Errorf("%w: i=%d outside 1..%d", ErrMalformedRow, p.I, t.Length)
	}
	if p.J < 1 || p.J > t.Length {
		return fmt.Errorf("%w: j=%d outside 1..%d", ErrMalformedRow, p.J, t.Length)
	}
	if math.IsNaN(p.NegLog10P) || math.IsInf(p.NegLog10P, 0) || p.NegLog10P < 0 {
		return fmt.Errorf("%w: score %v is not a non-negative number", ErrMalformedRow, p.NegLog10P)
	}
	return nil
}
