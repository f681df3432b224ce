// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/ha1tch/arcplot/pkg/arcplot"
	"github.com/ha1tch/arcplot/pkg/oracle"
)

// Prefix is the environment variable prefix, e.g. ARCPLOT_DPI.
const Prefix = "ARCPLOT"

// LogFormat selects the log encoding.
type LogFormat string

const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// Config holds all environment-based configuration.
type Config struct {
	// OutDir is where rendered diagrams are written.
	// Env: ARCPLOT_OUT_DIR (default: .)
	OutDir string `envconfig:"OUT_DIR" default:"."`

	// DPI is the raster resolution in pixels per canvas unit.
	// Env: ARCPLOT_DPI (default: 100)
	DPI float64 `envconfig:"DPI" default:"100"`

	// StrokeWidth is the arc stroke in points.
	// Env: ARCPLOT_STROKE_WIDTH (default: 4)
	StrokeWidth float64 `envconfig:"STROKE_WIDTH" default:"4"`

	// Opacity is the arc stroke opacity.
	// Env: ARCPLOT_OPACITY (default: 0.7)
	Opacity float64 `envconfig:"OPACITY" default:"0.7"`

	// FontSize is the tick label size in points.
	// Env: ARCPLOT_FONT_SIZE (default: 6)
	FontSize float64 `envconfig:"FONT_SIZE" default:"6"`

	// Formats is a comma-separated list of outputs.
	// Env: ARCPLOT_FORMATS (default: png,svg)
	Formats []string `envconfig:"FORMATS" default:"png,svg"`

	// LogLevel is the log verbosity level.
	// Env: ARCPLOT_LOG_LEVEL (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is the log output format (pretty or json).
	// Env: ARCPLOT_LOG_FORMAT (default: pretty)
	LogFormat LogFormat `envconfig:"LOG_FORMAT" default:"pretty"`

	// Workers bounds concurrent renders in batch mode.
	// Env: ARCPLOT_WORKERS (default: 4)
	Workers int `envconfig:"WORKERS" default:"4"`

	// RNAstructure configures the structure prediction tools.
	RNAstructure RNAstructure `envconfig:"RNASTRUCTURE"`
}

// RNAstructure holds the oracle settings.
type RNAstructure struct {
	// BinDir holds Fold, partition and ProbabilityPlot.
	// Env: ARCPLOT_RNASTRUCTURE_BIN_DIR
	BinDir string `envconfig:"BIN_DIR"`

	// DataPath is the thermodynamic data_tables directory.
	// Env: ARCPLOT_RNASTRUCTURE_DATAPATH
	DataPath string `envconfig:"DATAPATH"`

	// Temperature in Kelvin; 0 keeps the tool default.
	// Env: ARCPLOT_RNASTRUCTURE_TEMPERATURE (default: 0)
	Temperature float64 `envconfig:"TEMPERATURE" default:"0"`

	// WorkDir is the parent of scratch directories.
	// Env: ARCPLOT_RNASTRUCTURE_WORK_DIR
	WorkDir string `envconfig:"WORK_DIR"`
}

// Load reads an optional .env file and then the environment.
// A missing .env file is not an error. Variables already set in the
// environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.DPI <= 0 {
		return fmt.Errorf("DPI must be positive, got %v", c.DPI)
	}
	if c.Opacity <= 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity must be in (0, 1], got %v", c.Opacity)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.LogFormat {
	case LogFormatPretty, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if _, err := c.ParsedFormats(); err != nil {
		return err
	}
	return nil
}

// ParsedFormats converts Formats to renderer formats.
func (c Config) ParsedFormats() ([]arcplot.Format, error) {
	out := make([]arcplot.Format, 0, len(c.Formats))
	for _, s := range c.Formats {
		if strings.TrimSpace(s) == "" {
			continue
		}
		f, err := arcplot.ParseFormat(s)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// RenderOptions builds renderer options from the configuration.
func (c Config) RenderOptions() arcplot.Options {
	formats, _ := c.ParsedFormats()
	return arcplot.Options{
		OutDir:      c.OutDir,
		DPI:         c.DPI,
		StrokeWidth: c.StrokeWidth,
		Opacity:     c.Opacity,
		FontSize:    c.FontSize,
		Formats:     formats,
	}
}

// OracleConfig builds the explicit oracle configuration.
func (c Config) OracleConfig() oracle.Config {
	return oracle.Config{
		BinDir:      c.RNAstructure.BinDir,
		DataPath:    c.RNAstructure.DataPath,
		WorkDir:     c.RNAstructure.WorkDir,
		Temperature: c.RNAstructure.Temperature,
	}
}
