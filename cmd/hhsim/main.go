package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "hhsim",
		Short: "Hodgkin-Huxley membrane simulations",
		Long: `hhsim integrates the Hodgkin-Huxley membrane model and runs the experiments built on it.

Configuration is read from hh.toml in the --config directory (or $HH_CONFIG),
falling back on the squid axon defaults. Results are written to stdout.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "directory of hh.toml, or a configuration file (default $HH_CONFIG)")
	rootCmd.PersistentFlags().String("format", "csv", "output format: csv or yaml")
	rootCmd.PersistentFlags().Bool("verbose", false, "log progress to stderr")
	rootCmd.PersistentFlags().String("otlp-endpoint", "", "export metrics to this OTLP gRPC endpoint")
	rootCmd.PersistentFlags().Bool("otlp-insecure", false, "disable TLS for the OTLP exporter")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSimulateCmd(),
		newTemperatureCmd(),
		newValidateCmd(),
	)

	// Interrupting a sweep stops it between two runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hhsim version %s\n", version)
		},
	}
}
