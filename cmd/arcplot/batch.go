package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ha1tch/arcplot/internal/manifest"
	"github.com/ha1tch/arcplot/pkg/dotplot"
)

func batchCmd(a *app) *cobra.Command {
	var (
		out     outputFlags
		workers int
	)
	cmd := &cobra.Command{
		Use:     "batch <manifest.yaml>",
		Short:   "Render several windows of one table concurrently",
		Example: `  arcplot batch windows.yaml --workers 8`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			opts, err := out.options(a)
			if err != nil {
				return err
			}
			if out.outDir == "" && m.OutDir != "" {
				opts.OutDir = m.OutDir
			}
			if workers < 1 {
				workers = a.cfg.Workers
			}

			table, err := dotplot.ReadFile(m.Table)
			if err != nil {
				return err
			}

			// Labels are unique, so every render owns its output paths.
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(workers)
			for _, w := range m.Windows {
				req := w.Request()
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					return a.render(table, req, opts)
				})
			}
			return g.Wait()
		},
	}
	out.bind(cmd)
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent renders (default from ARCPLOT_WORKERS)")
	return cmd
}
