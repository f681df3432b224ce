package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/arcplot/pkg/arcplot"
)

const doc = `
table: plot.txt
out_dir: out
windows:
  - label: full
    start: 1
    end: 20
  - label: core
    start: 5
    end: 15
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "plot.txt", m.Table)
	require.Len(t, m.Windows, 2)
	assert.Equal(t, arcplot.Request{Start: 5, End: 15, Label: "core"}, m.Windows[1].Request())
}

func TestLoadResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "plot.txt"), m.Table)
	assert.Equal(t, filepath.Join(dir, "out"), m.OutDir)
}

func TestParseInvalid(t *testing.T) {
	tests := map[string]string{
		"not yaml":        "table: [",
		"no table":        "windows:\n  - {label: a, start: 1, end: 2}\n",
		"no windows":      "table: x.txt\n",
		"missing label":   "table: x.txt\nwindows:\n  - {start: 1, end: 2}\n",
		"duplicate label": "table: x.txt\nwindows:\n  - {label: a, start: 1, end: 2}\n  - {label: a, start: 3, end: 4}\n",
		"same file name":  "table: x.txt\nwindows:\n  - {label: a/b, start: 1, end: 2}\n  - {label: a_b, start: 3, end: 4}\n",
		"padded label":    "table: x.txt\nwindows:\n  - {label: a, start: 1, end: 2}\n  - {label: ' a ', start: 3, end: 4}\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(in))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseDistinctFileNames(t *testing.T) {
	in := "table: x.txt\nwindows:\n  - {label: a/b, start: 1, end: 2}\n  - {label: a-b, start: 3, end: 4}\n"
	m, err := Parse([]byte(in))
	require.NoError(t, err)
	assert.Len(t, m.Windows, 2)
}
