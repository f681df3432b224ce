package arcplot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrRenderIO is returned when an output file cannot be written.
var ErrRenderIO = errors.New("render output")

// Artifact is one output file and the function that produces its bytes.
type Artifact struct {
	Path  string
	Write func(io.Writer) error
}

// WriteFiles writes every artifact to a temporary file in dir and renames
// them into place only once all of them were written. On failure nothing
// new is left behind and the error wraps ErrRenderIO.
func WriteFiles(dir string, arts ...Artifact) (err error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderIO, err)
	}

	temps := make([]string, 0, len(arts))
	var done []string
	defer func() {
		if err == nil {
			return
		}
		for _, p := range temps {
			os.Remove(p)
		}
		for _, p := range done {
			os.Remove(p)
		}
	}()

	for _, a := range arts {
		tmp, err := writeTemp(dir, a)
		if tmp != "" {
			temps = append(temps, tmp)
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRenderIO, a.Path, err)
		}
	}

	for n, a := range arts {
		if err := os.Rename(temps[n], a.Path); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrRenderIO, a.Path, err)
		}
		done = append(done, a.Path)
	}
	return nil
}

func writeTemp(dir string, a Artifact) (string, error) {
	f, err := os.CreateTemp(dir, "."+filepath.Base(a.Path)+".*.tmp")
	if err != nil {
		return "", err
	}
	if err := a.Write(f); err != nil {
		f.Close()
		return f.Name(), err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return f.Name(), err
	}
	if err := f.Close(); err != nil {
		return f.Name(), err
	}
	// CreateTemp makes 0600 files; outputs should be world-readable.
	return f.Name(), os.Chmod(f.Name(), 0o644)
}

// FileBase turns a label into the file name stem used for its outputs.
// Distinct labels can share a stem, so callers rendering concurrently
// should compare stems, not labels.
func FileBase(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "arcplot"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, label)
}
