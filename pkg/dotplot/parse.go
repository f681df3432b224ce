package dotplot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a text dot plot:
//
//	<sequence length>
//	i<TAB>j<TAB>-log10(Probability)[<TAB>...]
//	<i><TAB><j><TAB><score>[<TAB>...]
//
// Extra columns are ignored. A table with no data rows is valid.
func Parse(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimRight(sc.Text(), "\r"), true
	}

	// Sequence length
	line, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read dot plot: %w", err)
		}
		return nil, fmt.Errorf("%w: empty input", ErrMalformedHeader)
	}
	length, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, fmt.Errorf("%w: line 1: %q is not an integer", ErrMalformedHeader, line)
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: line 1: sequence length %d", ErrMalformedHeader, length)
	}

	// Column header
	line, ok = next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read dot plot: %w", err)
		}
		return nil, fmt.Errorf("%w: missing column header", ErrMalformedTable)
	}
	cols, err := columnIndex(strings.Split(line, "\t"))
	if err != nil {
		return nil, err
	}

	t := New(length)
	for {
		line, ok = next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		p, err := cols.parseRow(strings.Split(line, "\t"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := t.checkPair(p); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		t.Pairs = append(t.Pairs, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dot plot: %w", err)
	}
	return t, nil
}

// ReadFile parses the dot plot at path.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// columns maps the required fields to their positions in a row.
type columns struct {
	i, j, score int
	width       int // minimum number of fields a row must have
}

func columnIndex(header []string) (columns, error) {
	c := columns{i: -1, j: -1, score: -1}
	for n, name := range header {
		switch name {
		case ColumnI:
			if c.i < 0 {
				c.i = n
			}
		case ColumnJ:
			if c.j < 0 {
				c.j = n
			}
		case ColumnScore:
			if c.score < 0 {
				c.score = n
			}
		}
	}

	var missing []string
	if c.i < 0 {
		missing = append(missing, ColumnI)
	}
	if c.j < 0 {
		missing = append(missing, ColumnJ)
	}
	if c.score < 0 {
		missing = append(missing, ColumnScore)
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("%w: missing column(s) %q", ErrMalformedTable, missing)
	}

	c.width = max(c.i, c.j, c.score) + 1
	return c, nil
}

func (c columns) parseRow(fields []string) (Pair, error) {
	if len(fields) < c.width {
		return Pair{}, fmt.Errorf("%w: %d field(s), want at least %d", ErrMalformedRow, len(fields), c.width)
	}
	i, err := strconv.Atoi(strings.TrimSpace(fields[c.i]))
	if err != nil {
		return Pair{}, fmt.Errorf("%w: i %q is not an integer", ErrMalformedRow, fields[c.i])
	}
	j, err := strconv.Atoi(strings.TrimSpace(fields[c.j]))
	if err != nil {
		return Pair{}, fmt.Errorf("%w: j %q is not an integer", ErrMalformedRow, fields[c.j])
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(fields[c.score]), 64)
	if err != nil {
		return Pair{}, fmt.Errorf("%w: score %q is not a number", ErrMalformedRow, fields[c.score])
	}
	return Pair{I: i, J: j, NegLog10P: score}, nil
}

// Write emits t in the text dot plot format accepted by Parse.
func Write(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", t.Length)
	fmt.Fprintf(bw, "%s\t%s\t%s\n", ColumnI, ColumnJ, ColumnScore)
	for _, p := range t.Pairs {
		fmt.Fprintf(bw, "%d\t%d\t%s\n", p.I, p.J, strconv.FormatFloat(p.NegLog10P, 'g', -1, 64))
	}
	return bw.Flush()
}
