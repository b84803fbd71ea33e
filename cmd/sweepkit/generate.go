package main

import (
	"github.com/raykavin/sweepkit"
	"github.com/raykavin/sweepkit/pkg/config"
	"github.com/raykavin/sweepkit/pkg/sweep"
	"github.com/spf13/cobra"
)

// Generate command flags
var (
	gridFile   string
	sampleFile string
	maxCases   int
	strict     bool
)

func buildGenerateCmd() *cobra.Command {
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the use case grid and the sample preset",
		RunE:  runGenerate,
	}

	generateCmd.Flags().StringVarP(&gridFile, "output", "o", "", "Grid file (default "+sweep.DefaultGridFile+")")
	generateCmd.Flags().StringVarP(&sampleFile, "sample", "s", "", "Sample preset file (default "+sweep.DefaultSampleFile+")")
	generateCmd.Flags().IntVarP(&maxCases, "max-cases", "n", sweep.DefaultMaxCases, "Maximum number of cases")
	generateCmd.Flags().BoolVar(&strict, "strict", false, "Fail on empty or repeated domain values")

	return generateCmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("max-cases") {
		cfg.MaxCases = maxCases
	}
	if gridFile != "" {
		cfg.Output.Grid = gridFile
	}
	if sampleFile != "" {
		cfg.Output.Sample = sampleFile
	}

	options := []sweep.Option{sweep.WithLogger(sweepkit.DefaultLog)}
	if strict {
		options = append(options, sweep.WithStrictDomains())
	}

	result, err := sweep.NewBuilder(cfg.Plan(), options...).Build()
	if err != nil {
		return err
	}

	for _, phase := range result.Phases {
		sweepkit.DefaultLog.WithFields(map[string]any{
			"budget":  phase.Budget,
			"emitted": phase.Emitted,
			"first":   phase.FirstID,
			"last":    phase.LastID,
		}).Infof("phase %s", phase.Name)
	}
	if len(result.Cases) < cfg.MaxCases {
		sweepkit.DefaultLog.Warnf("grid has %d cases, fewer than the %d allowed", len(result.Cases), cfg.MaxCases)
	}

	if err := sweep.SaveCases(cfg.Output.Grid, sweep.Header, result.Cases); err != nil {
		return err
	}
	if err := sweep.SaveCases(cfg.Output.Sample, sweep.Header, sweep.SamplePreset()); err != nil {
		return err
	}

	sweepkit.DefaultLog.WithFields(map[string]any{
		"grid":   cfg.Output.Grid,
		"sample": cfg.Output.Sample,
	}).Infof("generated %d use cases (%s)", len(result.Cases), result.Summary())

	return nil
}
