package arcplot

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/arcplot/pkg/dotplot"
)

func TestRenderWritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutDir = dir

	res, err := Render(scenarioTable(), Request{Start: 1, End: 20, Label: "hairpin"}, opts)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "hairpin.png"),
		filepath.Join(dir, "hairpin.svg"),
	}, res.Files)
	assert.Len(t, res.Layout.Arcs, 4)

	for _, p := range res.Files {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temporary files left behind")
}

func TestRenderSingleFormat(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutDir = dir
	opts.Formats = []Format{FormatSVG}

	res, err := Render(scenarioTable(), Request{Start: 1, End: 20, Label: "only-svg"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "only-svg.svg")}, res.Files)
}

func TestRenderRejectsBadRangeWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutDir = dir

	_, err := Render(dotplot.New(50), Request{Start: 10, End: 60, Label: "x"}, opts)
	assert.ErrorIs(t, err, ErrRangeExceedsSequence)

	_, err = Render(dotplot.New(50), Request{Start: 30, End: 10, Label: "x"}, opts)
	assert.ErrorIs(t, err, ErrInvalidRange)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderEmptyWindowIsNotAnError(t *testing.T) {
	opts := DefaultOptions()
	opts.OutDir = t.TempDir()

	res, err := Render(scenarioTable(), Request{Start: 16, End: 20, Label: "empty"}, opts)
	require.NoError(t, err)
	assert.Empty(t, res.Layout.Arcs)
	assert.Equal(t, 0.0, res.Layout.HeightUnits)
}

func TestRenderUnwritableDestination(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	opts := DefaultOptions()
	opts.OutDir = filepath.Join(blocker, "out")

	_, err := Render(scenarioTable(), Request{Start: 1, End: 20, Label: "x"}, opts)
	assert.ErrorIs(t, err, ErrRenderIO)
}

func TestRenderUnknownFormat(t *testing.T) {
	opts := DefaultOptions()
	opts.OutDir = t.TempDir()
	opts.Formats = []Format{"eps"}

	_, err := Render(scenarioTable(), Request{Start: 1, End: 20, Label: "x"}, opts)
	assert.Error(t, err)
}

func TestRenderRejectsInvalidOptions(t *testing.T) {
	tests := map[string]func(*Options){
		"negative DPI":     func(o *Options) { o.DPI = -1 },
		"opacity above 1":  func(o *Options) { o.Opacity = 1.5 },
		"negative opacity": func(o *Options) { o.Opacity = -0.2 },
		"NaN stroke":       func(o *Options) { o.StrokeWidth = math.NaN() },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.OutDir = t.TempDir()
			mutate(&opts)

			_, err := Render(scenarioTable(), Request{Start: 1, End: 20, Label: "x"}, opts)
			require.Error(t, err)

			entries, err := os.ReadDir(opts.OutDir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestOptionsZeroMeansDefault(t *testing.T) {
	got := Options{}.withDefaults()
	want := DefaultOptions()
	assert.Equal(t, want.Opacity, got.Opacity)
	assert.Equal(t, want.DPI, got.DPI)
	assert.Equal(t, want.Formats, got.Formats)
	assert.NoError(t, Options{}.Validate())

	opts := DefaultOptions()
	opts.Opacity = 1
	assert.Equal(t, 1.0, opts.withDefaults().Opacity)
}

func TestWriteFilesLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("disk full")

	err := WriteFiles(dir,
		Artifact{Path: filepath.Join(dir, "a.svg"), Write: func(w io.Writer) error {
			_, err := io.WriteString(w, "<svg/>")
			return err
		}},
		Artifact{Path: filepath.Join(dir, "a.png"), Write: func(io.Writer) error { return boom }},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderIO)
	assert.Contains(t, err.Error(), "disk full")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFilesReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.svg")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	err := WriteFiles(dir, Artifact{Path: path, Write: func(w io.Writer) error {
		_, err := io.WriteString(w, "new")
		return err
	}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileBase(t *testing.T) {
	assert.Equal(t, "arcplot", FileBase(""))
	assert.Equal(t, "arcplot", FileBase("  "))
	assert.Equal(t, "tRNA_1-76", FileBase("tRNA/1-76"))
	assert.Equal(t, "a_b", FileBase(`a\b`))
	assert.Equal(t, FileBase("a_b"), FileBase("a:b"))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SVG ")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}
