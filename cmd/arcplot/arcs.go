package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ha1tch/arcplot/pkg/arcplot"
	"github.com/ha1tch/arcplot/pkg/dotplot"
)

func arcsCmd(a *app) *cobra.Command {
	var win windowFlags
	cmd := &cobra.Command{
		Use:   "arcs <dotplot.txt>",
		Short: "List the arcs a render would draw, in draw order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := dotplot.ReadFile(args[0])
			if err != nil {
				return err
			}
			req := win.request(table.Length, "")
			arcs, err := arcplot.Arcs(table, req)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "i\tj\tprobability\tband\tpriority\tcenter\tspan")
			for _, arc := range arcs {
				p := dotplot.Pair{I: arc.I, J: arc.J, NegLog10P: arc.Score}
				fmt.Fprintf(tw, "%d\t%d\t%.4f\t%s\t%d\t%g\t%g\n",
					arc.I, arc.J, p.Probability(), arc.Band, arc.Priority, arc.Center, arc.Span)
			}
			return tw.Flush()
		},
	}
	win.bind(cmd)
	return cmd
}
