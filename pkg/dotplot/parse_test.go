package dotplot

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "20\n" +
	"i\tj\t-log10(Probability)\n" +
	"5\t15\t0.05\n" +
	"6\t14\t0.3\n" +
	"7\t13\t0.9\n" +
	"8\t12\t1.5\n" +
	"9\t11\t2.5\n"

func TestParse(t *testing.T) {
	tbl, err := Parse(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, 20, tbl.Length)
	require.Len(t, tbl.Pairs, 5)
	assert.Equal(t, Pair{I: 5, J: 15, NegLog10P: 0.05}, tbl.Pairs[0])
	assert.Equal(t, Pair{I: 9, J: 11, NegLog10P: 2.5}, tbl.Pairs[4])
}

func TestParseColumnOrderAndExtras(t *testing.T) {
	in := "10\n" +
		"-log10(Probability)\tnote\tj\ti\n" +
		"0.5\tx\t8\t2\n"
	tbl, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl.Pairs, 1)
	assert.Equal(t, Pair{I: 2, J: 8, NegLog10P: 0.5}, tbl.Pairs[0])
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	in := "10\r\ni\tj\t-log10(Probability)\r\n\r\n1\t10\t0.1\r\n\n"
	tbl, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, tbl.Pairs, 1)
	assert.Equal(t, 10, tbl.Pairs[0].J)
}

func TestParseEmptyTableIsValid(t *testing.T) {
	tbl, err := Parse(strings.NewReader("42\ni\tj\t-log10(Probability)\n"))
	require.NoError(t, err)
	assert.Equal(t, 42, tbl.Length)
	assert.Empty(t, tbl.Pairs)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty input", "", ErrMalformedHeader},
		{"blank header", "\n", ErrMalformedHeader},
		{"non-numeric header", "twenty\n", ErrMalformedHeader},
		{"float header", "20.5\n", ErrMalformedHeader},
		{"zero length", "0\ni\tj\t-log10(Probability)\n", ErrMalformedHeader},
		{"missing column row", "20\n", ErrMalformedTable},
		{"missing score column", "20\ni\tj\tp\n", ErrMalformedTable},
		{"case sensitive", "20\nI\tJ\t-log10(Probability)\n", ErrMalformedTable},
		{"space delimited header", "20\ni j -log10(Probability)\n", ErrMalformedTable},
		{"non-numeric i", "20\ni\tj\t-log10(Probability)\na\t3\t0.1\n", ErrMalformedRow},
		{"non-numeric score", "20\ni\tj\t-log10(Probability)\n1\t3\tx\n", ErrMalformedRow},
		{"empty score", "20\ni\tj\t-log10(Probability)\n1\t3\t\n", ErrMalformedRow},
		{"short row", "20\ni\tj\t-log10(Probability)\n1\t3\n", ErrMalformedRow},
		{"j past length", "20\ni\tj\t-log10(Probability)\n1\t21\t0.1\n", ErrMalformedRow},
		{"i below one", "20\ni\tj\t-log10(Probability)\n0\t5\t0.1\n", ErrMalformedRow},
		{"negative score", "20\ni\tj\t-log10(Probability)\n1\t5\t-0.1\n", ErrMalformedRow},
		{"nan score", "20\ni\tj\t-log10(Probability)\n1\t5\tNaN\n", ErrMalformedRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseRowErrorCarriesLine(t *testing.T) {
	in := "20\ni\tj\t-log10(Probability)\n1\t5\t0.1\n2\tx\t0.1\n"
	_, err := Parse(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}

func TestWriteRoundTrip(t *testing.T) {
	tbl := New(30)
	tbl.Add(3, 27, 0.0123)
	tbl.Add(28, 4, 1.75)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl))

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl, got)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plot.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	tbl, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, tbl.Pairs, 5)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tbl := New(10)
	tbl.Add(1, 10, 0.2)
	assert.NoError(t, tbl.Validate())

	tbl.Add(1, 11, 0.2)
	assert.ErrorIs(t, tbl.Validate(), ErrMalformedRow)

	assert.ErrorIs(t, New(0).Validate(), ErrMalformedHeader)
}

func TestProbability(t *testing.T) {
	assert.InDelta(t, 1.0, Pair{NegLog10P: 0}.Probability(), 1e-12)
	assert.InDelta(t, 0.1, Pair{NegLog10P: 1}.Probability(), 1e-12)
	assert.InDelta(t, 0.8, Pair{NegLog10P: -math.Log10(0.8)}.Probability(), 1e-12)
}
