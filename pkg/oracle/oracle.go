// Package oracle drives the RNAstructure command line tools to predict a
// secondary structure and its base-pair probability table for a sequence.
//
// All configuration is explicit: the executable directory and the
// thermodynamic data tables are passed in Config and handed to each child
// process. Nothing is read from the calling process environment.
package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ha1tch/arcplot/pkg/dotplot"
)

// RNAstructure executables used by the adapter.
const (
	ToolFold            = "Fold"
	ToolPartition       = "partition"
	ToolProbabilityPlot = "ProbabilityPlot"
)

var (
	// ErrExecutableNotFound is returned by New when a tool is missing.
	ErrExecutableNotFound = errors.New("executable not found")
	// ErrToolFailed is returned when a tool exits unsuccessfully or
	// produces unusable output.
	ErrToolFailed = errors.New("tool failed")
)

// Config holds the explicit settings for the adapter.
type Config struct {
	BinDir      string   // directory holding the RNAstructure executables
	DataPath    string   // thermodynamic parameter tables, passed as DATAPATH
	WorkDir     string   // parent for scratch directories ("" = system temp)
	Temperature float64  // Kelvin; 0 keeps the tool default (310.15)
	Env         []string // extra KEY=VALUE pairs for the child processes
	KeepWork    bool     // keep the scratch directory after Predict
}

// Command is one tool invocation.
type Command struct {
	Path string
	Args []string
	Env  []string
	Dir  string
}

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands with os/exec. The child sees only cmd.Env.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Env = c.Env
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = &stderr // RNAstructure reports errors on stdout

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return err
		}
		return fmt.Errorf("%v: %s", err, msg)
	}
	return nil
}

// Option customises an Adapter.
type Option func(*Adapter)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(a *Adapter) { a.runner = r }
}

// Adapter runs the prediction pipeline.
type Adapter struct {
	cfg    Config
	runner Runner
	tools  map[string]string // tool name -> absolute path
}

// New resolves the executables in cfg.BinDir.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	if cfg.BinDir == "" {
		return nil, fmt.Errorf("%w: no RNAstructure bin directory configured", ErrExecutableNotFound)
	}

	a := &Adapter{
		cfg:    cfg,
		runner: ExecRunner{},
		tools:  make(map[string]string),
	}
	for _, o := range opts {
		o(a)
	}

	for _, name := range []string{ToolFold, ToolPartition, ToolProbabilityPlot} {
		path, err := findExecutable(cfg.BinDir, name)
		if err != nil {
			return nil, err
		}
		a.tools[name] = path
	}
	return a, nil
}

func findExecutable(dir, name string) (string, error) {
	for _, candidate := range []string{name, name + ".exe"} {
		path, err := filepath.Abs(filepath.Join(dir, candidate))
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if info.Mode()&0o111 == 0 && filepath.Ext(path) != ".exe" {
			continue
		}
		return path, nil
	}
	return "", fmt.Errorf("%w: %s in %s", ErrExecutableNotFound, name, dir)
}

// Prediction is the result of one pipeline run.
type Prediction struct {
	Name        string
	Sequence    string
	Table       *dotplot.Table
	StructureCT []byte // minimum free energy structure, CT format
}

// Predict folds seq and computes its pair probabilities. The dot plot is
// parsed in memory; the CT structure is returned as opaque bytes.
func (a *Adapter) Predict(ctx context.Context, name, seq string) (*Prediction, error) {
	seq, err := NormalizeSequence(seq)
	if err != nil {
		return nil, err
	}

	work, err := os.MkdirTemp(a.cfg.WorkDir, "arcplot-oracle-*")
	if err != nil {
		return nil, fmt.Errorf("scratch directory: %w", err)
	}
	if !a.cfg.KeepWork {
		defer os.RemoveAll(work)
	}

	var (
		seqPath  = filepath.Join(work, "input.seq")
		ctPath   = filepath.Join(work, "mfe.ct")
		pfsPath  = filepath.Join(work, "partition.pfs")
		plotPath = filepath.Join(work, "dotplot.txt")
	)

	f, err := os.Create(seqPath)
	if err != nil {
		return nil, fmt.Errorf("write sequence: %w", err)
	}
	if err := writeSeqFile(f, name, seq); err != nil {
		f.Close()
		return nil, fmt.Errorf("write sequence: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write sequence: %w", err)
	}

	steps := []struct {
		tool string
		args []string
	}{
		{ToolFold, a.withTemperature(seqPath, ctPath)},
		{ToolPartition, a.withTemperature(seqPath, pfsPath)},
		{ToolProbabilityPlot, []string{pfsPath, plotPath, "-t"}},
	}
	for _, s := range steps {
		if err := a.run(ctx, work, s.tool, s.args); err != nil {
			return nil, err
		}
	}

	table, err := dotplot.ReadFile(plotPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s output: %v", ErrToolFailed, ToolProbabilityPlot, err)
	}
	if table.Length != len(seq) {
		return nil, fmt.Errorf("%w: %s reported length %d for a %d nt sequence",
			ErrToolFailed, ToolProbabilityPlot, table.Length, len(seq))
	}

	ct, err := os.ReadFile(ctPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s output: %v", ErrToolFailed, ToolFold, err)
	}

	return &Prediction{
		Name:        name,
		Sequence:    seq,
		Table:       table,
		StructureCT: ct,
	}, nil
}

func (a *Adapter) withTemperature(args ...string) []string {
	if a.cfg.Temperature > 0 {
		args = append(args, "-T", strconv.FormatFloat(a.cfg.Temperature, 'f', -1, 64))
	}
	return args
}

func (a *Adapter) run(ctx context.Context, dir, tool string, args []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := Command{
		Path: a.tools[tool],
		Args: args,
		Env:  a.env(),
		Dir:  dir,
	}
	if err := a.runner.Run(ctx, cmd); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return fmt.Errorf("%w: %s: %v", ErrToolFailed, tool, err)
	}
	return nil
}

// env is the complete child environment.
func (a *Adapter) env() []string {
	env := make([]string, 0, len(a.cfg.Env)+1)
	if a.cfg.DataPath != "" {
		env = append(env, "DATAPATH="+a.cfg.DataPath)
	}
	return append(env, a.cfg.Env...)
}
