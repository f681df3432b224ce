package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/arcplot/pkg/arcplot"
	"github.com/ha1tch/arcplot/pkg/dotplot"
)

// windowFlags selects the nucleotide range.
type windowFlags struct {
	start, end int
	label      string
}

func (w *windowFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&w.start, "start", 1, "first nucleotide of the window (1-based)")
	cmd.Flags().IntVar(&w.end, "end", 0, "last nucleotide of the window (0 = sequence end)")
	cmd.Flags().StringVarP(&w.label, "label", "l", "", "output file name stem")
}

// request builds the render request; end 0 means the whole sequence.
func (w *windowFlags) request(length int, defaultLabel string) arcplot.Request {
	end := w.end
	if end == 0 {
		end = length
	}
	label := w.label
	if label == "" {
		label = defaultLabel
	}
	return arcplot.Request{Start: w.start, End: end, Label: label}
}

// outputFlags override the configured render options.
type outputFlags struct {
	outDir  string
	dpi     float64
	formats []string
}

func (o *outputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.outDir, "out-dir", "o", "", "output directory (default from ARCPLOT_OUT_DIR)")
	cmd.Flags().Float64Var(&o.dpi, "dpi", 0, "raster resolution (default from ARCPLOT_DPI)")
	cmd.Flags().StringSliceVarP(&o.formats, "format", "f", nil, "output formats: png, svg")
}

func (o *outputFlags) options(a *app) (arcplot.Options, error) {
	opts := a.cfg.RenderOptions()
	if o.outDir != "" {
		opts.OutDir = o.outDir
	}
	if o.dpi > 0 {
		opts.DPI = o.dpi
	}
	if len(o.formats) > 0 {
		opts.Formats = opts.Formats[:0:0]
		for _, s := range o.formats {
			f, err := arcplot.ParseFormat(s)
			if err != nil {
				return opts, err
			}
			opts.Formats = append(opts.Formats, f)
		}
	}
	return opts, nil
}

func renderCmd(a *app) *cobra.Command {
	var (
		win windowFlags
		out outputFlags
	)
	cmd := &cobra.Command{
		Use:   "render <dotplot.txt>",
		Short: "Render an arc diagram from a dot plot table",
		Example: `  arcplot render tRNA.dp.txt
  arcplot render tRNA.dp.txt --start 10 --end 40 -l anticodon -f svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := out.options(a)
			if err != nil {
				return err
			}
			table, err := dotplot.ReadFile(args[0])
			if err != nil {
				return err
			}
			req := win.request(table.Length, tableLabel(args[0]))
			return a.render(table, req, opts)
		},
	}
	win.bind(cmd)
	out.bind(cmd)
	return cmd
}

// render runs one render and logs its outcome.
func (a *app) render(table *dotplot.Table, req arcplot.Request, opts arcplot.Options) error {
	log := a.log.With().Str("label", req.Label).Int("start", req.Start).Int("end", req.End).Logger()

	res, err := arcplot.Render(table, req, opts)
	if err != nil {
		log.Error().Err(err).Msg("render failed")
		return fmt.Errorf("render %s: %w", req.Label, err)
	}

	counts := arcplot.CountByBand(res.Layout.Arcs)
	log.Info().
		Int("arcs", len(res.Layout.Arcs)).
		Int("high", counts[arcplot.BandHigh]).
		Int("medium_high", counts[arcplot.BandMediumHigh]).
		Int("medium", counts[arcplot.BandMedium]).
		Int("low", counts[arcplot.BandLow]).
		Strs("files", res.Files).
		Msg("rendered")
	return nil
}

// tableLabel derives a label from a table path: "runs/tRNA.dp.txt" -> "tRNA".
func tableLabel(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
