package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/sweepkit"
	"github.com/raykavin/sweepkit/pkg/config"
	"github.com/raykavin/sweepkit/pkg/sweep"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// Config command flags
var (
	initOutput string
	initForce  bool
)

func buildConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the sweep definition",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default sweep definition",
		RunE:  runConfigInit,
	}
	initCmd.Flags().StringVarP(&initOutput, "output", "o", config.DefaultConfigPath, "Destination file")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective grid plan",
		RunE:  runConfigShow,
	}

	configCmd.AddCommand(initCmd, showCmd)
	return configCmd
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(initOutput); err == nil && !initForce {
		return fmt.Errorf("%s already exists, use --force to overwrite", initOutput)
	}

	if err := config.Default().Save(initOutput); err != nil {
		return err
	}

	sweepkit.DefaultLog.WithField("path", initOutput).Info("default configuration file created")
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	result, err := sweep.NewBuilder(cfg.Plan()).Build()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Phase", "Budget", "Emitted", "Cases"})
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)
	for _, phase := range result.Phases {
		cases := "-"
		if phase.Emitted > 0 {
			cases = fmt.Sprintf("%d-%d", phase.FirstID, phase.LastID)
		}
		table.Append([]string{string(phase.Name), fmt.Sprint(phase.Budget), fmt.Sprint(phase.Emitted), cases})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprint(cfg.MaxCases), fmt.Sprint(len(result.Cases)), ""})
	table.Render()

	table = tablewriter.NewWriter(out)
	table.SetHeader([]string{"Parameter", "Values"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
	for _, domain := range cfg.Sweep.Domains {
		values := lo.Map(domain.Values, func(v any, _ int) string { return sweep.FormatValue(v) })
		table.Append([]string{domain.Name, strings.Join(values, ", ")})
	}
	table.Render()

	table = tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "K_swing", "N_bos", "TP2_R"})
	for i, triple := range cfg.Sweep.BestConfigs {
		table.Append([]string{
			fmt.Sprint(i + 1),
			fmt.Sprint(triple.KSwing),
			fmt.Sprint(triple.NBos),
			sweep.FormatValue(triple.TP2R),
		})
	}
	table.Render()

	fmt.Fprintf(out, "grid: %s, sample: %s\n", cfg.Output.Grid, cfg.Output.Sample)
	return nil
}
