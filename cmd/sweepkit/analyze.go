package main

import (
	"os"

	"github.com/raykavin/sweepkit"
	"github.com/raykavin/sweepkit/pkg/analysis"
	"github.com/raykavin/sweepkit/pkg/config"
	"github.com/raykavin/sweepkit/pkg/sweep"
	"github.com/spf13/cobra"
)

// Analyze command flags
var (
	resultsFile   string
	saveFile      string
	topN          int
	bootstrap     int
	phaseFamilies bool
	progress      bool
)

func buildAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarise backtest results by preset family",
		RunE:  runAnalyze,
	}

	analyzeCmd.Flags().StringVarP(&resultsFile, "results", "r", "", "Backtest results CSV (e.g. ./OptimizationResults.csv)")
	analyzeCmd.Flags().StringVarP(&saveFile, "save", "o", "", "Write the top performers to this CSV")
	analyzeCmd.Flags().IntVarP(&topN, "top", "t", 10, "Number of top performers")
	analyzeCmd.Flags().IntVarP(&bootstrap, "bootstrap", "b", 1000, "Bootstrap resamples per family (0 disables)")
	analyzeCmd.Flags().BoolVar(&phaseFamilies, "phase-families", false, "Group results by the generation phase ranges")
	analyzeCmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar while bootstrapping")

	analyzeCmd.MarkFlagRequired("results")

	return analyzeCmd
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	options := cfg.AnalysisOptions()
	options.Log = sweepkit.DefaultLog
	if cmd.Flags().Changed("top") {
		options.TopN = topN
	}
	if cmd.Flags().Changed("bootstrap") {
		options.BootstrapSamples = bootstrap
	}
	if progress {
		options.Progress = os.Stderr
	}

	families := cfg.Analysis.Families
	if phaseFamilies {
		result, err := sweep.NewBuilder(cfg.Plan()).Build()
		if err != nil {
			return err
		}
		families = result.Families()
	}

	results, err := analysis.LoadResults(resultsFile)
	if err != nil {
		return err
	}
	sweepkit.DefaultLog.Infof("loaded %d test results from %s", len(results.Rows), resultsFile)

	report, err := analysis.Analyze(results, families, options)
	if err != nil {
		return err
	}

	if err := report.Render(cmd.OutOrStdout()); err != nil {
		return err
	}

	if saveFile != "" {
		if err := report.SaveTop(saveFile); err != nil {
			return err
		}
		sweepkit.DefaultLog.WithField("path", saveFile).Info("top performers saved")
	}

	return nil
}
