package oracle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidSequence is returned for empty sequences or unknown letters.
var ErrInvalidSequence = errors.New("invalid sequence")

// ReadSequence reads the first record of a FASTA stream, or a bare sequence
// when there is no '>' header. Line breaks and blanks are dropped.
func ReadSequence(r io.Reader) (name, seq string, err error) {
	br := bufio.NewReader(r)
	var sb strings.Builder
	seenHeader := false

	for {
		line, rerr := br.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if strings.HasPrefix(line, ">") {
			if seenHeader || sb.Len() > 0 {
				break // next record
			}
			seenHeader = true
			name = strings.TrimSpace(line[1:])
			if fields := strings.Fields(name); len(fields) > 0 {
				name = fields[0]
			}
		} else if !strings.HasPrefix(line, ";") {
			sb.WriteString(strings.Join(strings.Fields(line), ""))
		}

		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return "", "", rerr
		}
	}

	seq, err = NormalizeSequence(sb.String())
	if err != nil {
		return "", "", err
	}
	return name, seq, nil
}

// NormalizeSequence upper-cases seq, maps T to U, and rejects anything that
// is not A, C, G, U or N.
func NormalizeSequence(seq string) (string, error) {
	seq = strings.ToUpper(strings.Join(strings.Fields(seq), ""))
	if seq == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidSequence)
	}

	out := []byte(seq)
	for i, c := range out {
		switch c {
		case 'A', 'C', 'G', 'U', 'N':
		case 'T':
			out[i] = 'U'
		default:
			return "", fmt.Errorf("%w: %q at position %d", ErrInvalidSequence, c, i+1)
		}
	}
	return string(out), nil
}

// writeSeqFile writes seq in RNAstructure's .seq format: comment lines,
// a title line, then the sequence terminated by "1".
func writeSeqFile(w io.Writer, name, seq string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, ";")
	if name == "" {
		name = "sequence"
	}
	fmt.Fprintln(bw, name)
	for i := 0; i < len(seq); i += 60 {
		end := min(i+60, len(seq))
		fmt.Fprintln(bw, seq[i:end])
	}
	fmt.Fprintln(bw, "1")
	return bw.Flush()
}
