package main

import (
	"fmt"
	"os"

	"github.com/raykavin/sweepkit"
	"github.com/raykavin/sweepkit/pkg/logger"
	"github.com/spf13/cobra"
)

// Command line flags shared by every command
var (
	configPath string
	logLevel   string
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	// Create root command
	rootCmd := &cobra.Command{
		Use:               "sweepkit",
		Short:             "Build XAU EA backtest grids and analyse their results",
		Version:           sweepkit.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: applyLogLevel,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Sweep definition file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	// Add commands
	rootCmd.AddCommand(buildGenerateCmd())
	rootCmd.AddCommand(buildAnalyzeCmd())
	rootCmd.AddCommand(buildConfigCmd())

	return rootCmd
}

func applyLogLevel(_ *cobra.Command, _ []string) error {
	if logLevel == "" {
		return nil
	}

	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	sweepkit.DefaultLog.SetLevel(level)
	return nil
}
