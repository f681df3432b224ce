// Command arcplot draws RNA base-pair probability arc diagrams.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ha1tch/arcplot/internal/config"
	"github.com/ha1tch/arcplot/internal/logging"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app carries the state shared by subcommands.
type app struct {
	envFile string
	cfg     config.Config
	log     zerolog.Logger
}

func rootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "arcplot",
		Short: "RNA base-pair probability arc diagrams",
		Long: `arcplot renders base-pair probabilities from an RNAstructure dot plot as an
arc diagram. Each pair with probability of at least 1% becomes a half circle,
colored by confidence, with the most likely pairs drawn on top.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional .env file with ARCPLOT_* settings")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error, quiet)")

	cmd.AddCommand(renderCmd(a))
	cmd.AddCommand(arcsCmd(a))
	cmd.AddCommand(foldCmd(a))
	cmd.AddCommand(batchCmd(a))
	cmd.AddCommand(versionCmd())

	return cmd
}

// load reads configuration once; flags override it later per command.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	a.cfg = cfg
	a.log = logging.New(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "arcplot version %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
