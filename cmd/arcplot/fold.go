package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/arcplot/pkg/arcplot"
	"github.com/ha1tch/arcplot/pkg/dotplot"
	"github.com/ha1tch/arcplot/pkg/oracle"
)

func foldCmd(a *app) *cobra.Command {
	var (
		win       windowFlags
		out       outputFlags
		sequence  string
		binDir    string
		dataPath  string
		keepTable bool
		keepCT    bool
	)
	cmd := &cobra.Command{
		Use:   "fold [sequence.fasta]",
		Short: "Predict pair probabilities with RNAstructure and render them",
		Long: `fold runs RNAstructure's Fold, partition and ProbabilityPlot on a sequence
and renders the resulting probabilities. The sequence comes from a FASTA file,
standard input ("-"), or --sequence.`,
		Example: `  arcplot fold hairpin.fa --bin-dir /opt/RNAstructure/exe --datapath /opt/RNAstructure/data_tables
  arcplot fold --sequence GGGAAACCC -l demo --keep-table`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := out.options(a)
			if err != nil {
				return err
			}

			name, seq, err := readSequenceInput(cmd, args, sequence)
			if err != nil {
				return err
			}

			oc := a.cfg.OracleConfig()
			if binDir != "" {
				oc.BinDir = binDir
			}
			if dataPath != "" {
				oc.DataPath = dataPath
			}
			adapter, err := oracle.New(oc)
			if err != nil {
				return err
			}

			if name == "" {
				name = "sequence"
			}
			a.log.Info().Str("name", name).Int("length", len(seq)).Msg("predicting structure")
			pred, err := adapter.Predict(cmd.Context(), name, seq)
			if err != nil {
				return err
			}
			a.log.Info().Int("pairs", len(pred.Table.Pairs)).Msg("probabilities ready")

			req := win.request(pred.Table.Length, name)
			if err := a.render(pred.Table, req, opts); err != nil {
				return err
			}
			return keepArtifacts(opts.OutDir, req.Label, pred, keepTable, keepCT)
		},
	}
	win.bind(cmd)
	out.bind(cmd)
	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "sequence given inline")
	cmd.Flags().StringVar(&binDir, "bin-dir", "", "RNAstructure executables (default from ARCPLOT_RNASTRUCTURE_BIN_DIR)")
	cmd.Flags().StringVar(&dataPath, "datapath", "", "RNAstructure data_tables (default from ARCPLOT_RNASTRUCTURE_DATAPATH)")
	cmd.Flags().BoolVar(&keepTable, "keep-table", false, "also write the dot plot as <label>.dp.txt")
	cmd.Flags().BoolVar(&keepCT, "keep-ct", false, "also write the MFE structure as <label>.ct")
	return cmd
}

func readSequenceInput(cmd *cobra.Command, args []string, inline string) (name, seq string, err error) {
	switch {
	case inline != "" && len(args) > 0:
		return "", "", fmt.Errorf("give either a sequence file or --sequence, not both")
	case inline != "":
		seq, err = oracle.NormalizeSequence(inline)
		return "", seq, err
	case len(args) == 0:
		return "", "", fmt.Errorf("no sequence: pass a FASTA file, \"-\" or --sequence")
	}

	var r io.Reader
	if args[0] == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(args[0])
		if err != nil {
			return "", "", err
		}
		defer f.Close()
		r = f
	}
	name, seq, err = oracle.ReadSequence(r)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", args[0], err)
	}
	if name == "" && args[0] != "-" {
		name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}
	return name, seq, nil
}

// keepArtifacts publishes the requested oracle outputs next to the images,
// under the same file name stem.
func keepArtifacts(dir, label string, pred *oracle.Prediction, table, ct bool) error {
	base := filepath.Join(dir, arcplot.FileBase(label))
	var arts []arcplot.Artifact
	if table {
		arts = append(arts, arcplot.Artifact{Path: base + ".dp.txt", Write: func(w io.Writer) error {
			return dotplot.Write(w, pred.Table)
		}})
	}
	if ct {
		arts = append(arts, arcplot.Artifact{Path: base + ".ct", Write: func(w io.Writer) error {
			_, err := w.Write(pred.StructureCT)
			return err
		}})
	}
	if len(arts) == 0 {
		return nil
	}
	return arcplot.WriteFiles(dir, arts...)
}
