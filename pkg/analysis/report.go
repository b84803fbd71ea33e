package analysis

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/sweepkit/pkg/logger"
	"github.com/raykavin/sweepkit/pkg/metric"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
)

// Options tune an analysis run.
type Options struct {
	TopN      int
	MinTrades int
	// BootstrapSamples is the number of resamples per family; zero skips
	// the confidence intervals.
	BootstrapSamples int
	Confidence       float64
	// Progress receives a progress bar for the bootstrap when set.
	Progress io.Writer
	Log      logger.Logger
}

func DefaultOptions() Options {
	return Options{
		TopN:             10,
		MinTrades:        10,
		BootstrapSamples: 1000,
		Confidence:       0.95,
	}
}

// Report gathers every view over one results file.
type Report struct {
	Results   *Results
	Families  []Family
	Stats     []Group
	Top       []Row
	POI       POIComparison
	HasPOI    bool
	HTF       HTFImpact
	HasHTF    bool
	Summary   Summary
	Intervals map[string]metric.BootstrapInterval
	options   Options
}

// Analyze classifies the rows into families and computes the report.
func Analyze(results *Results, families []Family, options Options) (*Report, error) {
	if len(results.Rows) == 0 {
		return nil, ErrNoResults
	}

	results.Classify(families)
	report := &Report{
		Results:   results,
		Families:  families,
		Stats:     FamilyStats(results.Rows, families),
		Top:       TopPerformers(results.Rows, options.TopN, options.MinTrades),
		Intervals: make(map[string]metric.BootstrapInterval),
		options:   options,
	}
	report.POI, report.HasPOI = ComparePOI(results)
	report.HTF, report.HasHTF = HTFFilterImpact(results)

	summary, err := Summarize(results, report.Stats)
	if err != nil {
		return nil, err
	}
	report.Summary = summary

	report.bootstrap()

	report.infof("analyzed %d results in %d families, %d top performers",
		len(results.Rows), len(report.Stats), len(report.Top))
	if unknown := lo.CountBy(results.Rows, func(r Row) bool { return r.Family == UnknownFamily }); unknown > 0 {
		report.warnf("%d results fall outside every family", unknown)
	}

	return report, nil
}

func (r *Report) bootstrap() {
	samples := r.options.BootstrapSamples
	if samples <= 0 {
		return
	}

	var onSample func()
	if r.options.Progress != nil {
		bar := progressbar.NewOptions(samples*len(r.Stats),
			progressbar.OptionSetWriter(r.options.Progress),
			progressbar.OptionSetDescription("bootstrap"),
		)
		defer bar.Close()

		onSample = func() {
			if err := bar.Add(1); err != nil {
				r.warnf("update progressbar fail: %v", err)
			}
		}
	}

	byFamily := lo.GroupBy(r.Results.Rows, func(row Row) string { return row.Family })
	for _, stat := range r.Stats {
		profitFactors := lo.Map(byFamily[stat.Label], func(row Row, _ int) float64 { return row.ProfitFactor })
		r.Intervals[stat.Label] = metric.Bootstrap(profitFactors, metric.Mean, samples, r.options.Confidence, onSample)
	}
}

func (r *Report) infof(format string, args ...any) {
	if r.options.Log != nil {
		r.options.Log.Infof(format, args...)
	}
}

func (r *Report) warnf(format string, args ...any) {
	if r.options.Log != nil {
		r.options.Log.Warnf(format, args...)
	}
}

// Render prints the report as tables.
func (r *Report) Render(w io.Writer) error {
	buffer := bytes.NewBuffer(nil)

	fmt.Fprintln(buffer, "------ FAMILY PERFORMANCE -------")
	table := tablewriter.NewWriter(buffer)
	table.SetHeader([]string{"Family", "Count", "Avg PF", "Avg WR", "Avg Net", "Avg DD", "Avg Sharpe", "Avg Trades", "Best PF", "Best UC"})
	for _, stat := range r.Stats {
		table.Append([]string{
			stat.Label,
			strconv.Itoa(stat.Count),
			fmt.Sprintf("%.2f", stat.AvgProfitFactor),
			fmt.Sprintf("%.1f %%", stat.AvgWinRate),
			fmt.Sprintf("%.2f", stat.AvgNetProfit),
			fmt.Sprintf("%.1f %%", stat.AvgMaxDrawdown),
			fmt.Sprintf("%.2f", stat.AvgSharpeRatio),
			fmt.Sprintf("%.0f", stat.AvgTotalTrades),
			fmt.Sprintf("%.2f", stat.BestProfitFactor),
			fmt.Sprintf("#%d", stat.BestPresetID),
		})
	}
	table.Render()

	fmt.Fprintf(buffer, "\n------ TOP %d PERFORMERS (PROFIT FACTOR) -------\n", r.options.TopN)
	table = tablewriter.NewWriter(buffer)
	table.SetHeader([]string{"UC", "Family", "PF", "WR", "Net", "DD", "Sharpe", "Trades", "POI", "K/N/TP2", "HTF"})
	for _, row := range r.Top {
		table.Append([]string{
			fmt.Sprintf("#%d", row.PresetID),
			row.Family,
			fmt.Sprintf("%.2f", row.ProfitFactor),
			fmt.Sprintf("%.1f %%", row.WinRate),
			fmt.Sprintf("%.2f", row.NetProfit),
			fmt.Sprintf("%.1f %%", row.MaxDrawdownPercent),
			fmt.Sprintf("%.2f", row.SharpeRatio),
			fmt.Sprintf("%.0f", row.TotalTrades),
			poiLabel(row),
			structureLabel(row),
			htfLabel(row),
		})
	}
	table.Render()

	fmt.Fprintln(buffer, "\n------ ORDER BLOCK vs FVG -------")
	if r.HasPOI {
		table = tablewriter.NewWriter(buffer)
		table.SetHeader([]string{"Metric", LabelOrderBlock, LabelFVG})
		table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
		table.AppendBulk(compareRows(r.POI.OrderBlock, r.POI.FVG))
		table.Render()

		best, other := r.POI.OrderBlock.AvgProfitFactor, r.POI.FVG.AvgProfitFactor
		if r.POI.Winner == LabelFVG {
			best, other = other, best
		}
		fmt.Fprintf(buffer, "Winner: %s (Avg PF: %.2f vs %.2f)\n", r.POI.Winner, best, other)
	} else {
		fmt.Fprintln(buffer, "Insufficient data for POI comparison")
	}

	fmt.Fprintln(buffer, "\n------ HTF FILTER IMPACT -------")
	if r.HasHTF {
		for _, group := range []Group{r.HTF.On, r.HTF.Off} {
			fmt.Fprintf(buffer, "HTF Filter %-3s - Count: %d, Avg PF: %.2f, Avg WR: %.1f%%, Avg Trades: %.0f\n",
				group.Label, group.Count, group.AvgProfitFactor, group.AvgWinRate, group.AvgTotalTrades)
		}
		fmt.Fprintf(buffer, "Trade Reduction: %.1f%%\n", r.HTF.TradeReductionPct)
	} else {
		fmt.Fprintln(buffer, "Insufficient data for HTF filter comparison")
	}

	fmt.Fprintln(buffer, "\n------ PROFIT FACTOR -------")
	profitFactors := metric.Finite(lo.Map(r.Results.Rows, func(row Row, _ int) float64 { return row.ProfitFactor }))
	if len(profitFactors) == 0 {
		fmt.Fprintln(buffer, "no finite values")
	} else if err := histogram.Fprint(buffer, histogram.Hist(15, profitFactors), histogram.Linear(10)); err != nil {
		return err
	}

	if len(r.Intervals) > 0 {
		fmt.Fprintf(buffer, "\n------ CONFIDENCE INTERVAL (%.0f%%) -------\n", r.options.Confidence*100)
		for _, stat := range r.Stats {
			interval := r.Intervals[stat.Label]
			fmt.Fprintf(buffer, "%-24s PROF.FACTOR: %.2f (%.2f ~ %.2f)\n",
				stat.Label, interval.Mean, interval.Lower, interval.Upper)
		}
	}

	r.renderSummary(buffer)

	_, err := w.Write(buffer.Bytes())
	return err
}

func (r *Report) renderSummary(buffer *bytes.Buffer) {
	summary := r.Summary

	fmt.Fprintln(buffer, "\n------ SUMMARY -------")
	fmt.Fprintf(buffer, "Total Configurations Tested: %d\n", summary.Total)
	fmt.Fprintf(buffer, "Profitable Configurations: %d (%.1f%%)\n", summary.Profitable, summary.ProfitablePct)
	fmt.Fprintf(buffer, "Average Profit Factor: %.2f\n", summary.AvgProfitFactor)
	fmt.Fprintf(buffer, "Average Win Rate: %.1f%%\n", summary.AvgWinRate)

	best := summary.Best
	fmt.Fprintf(buffer, "\nBest overall: #%d (%s) PF %.2f, WR %.1f%%, Net %.2f, DD %.1f%%\n",
		best.PresetID, best.Family, best.ProfitFactor, best.WinRate, best.NetProfit, best.MaxDrawdownPercent)

	fmt.Fprintln(buffer, "\nFamily ranking (Avg PF):")
	for i, group := range summary.Ranking {
		fmt.Fprintf(buffer, "  %d. %s: %.2f\n", i+1, group.Label, group.AvgProfitFactor)
	}

	fmt.Fprintln(buffer, "\nRecommendations:")
	for i, recommendation := range summary.Recommendations() {
		fmt.Fprintf(buffer, "  %d. %s\n", i+1, recommendation)
	}
}

// Recommendations lists the conclusions the summary supports.
func (s Summary) Recommendations() []string {
	var recommendations []string
	if s.BestFamily != "" {
		recommendations = append(recommendations, fmt.Sprintf("Focus on %s configurations", s.BestFamily))
	}
	if s.BestPOI != "" {
		recommendations = append(recommendations, fmt.Sprintf("Use %s as primary POI type", s.BestPOI))
	}
	if s.HasRisk {
		recommendations = append(recommendations,
			fmt.Sprintf("Optimal risk per trade: %s%%", strconv.FormatFloat(s.BestRisk, 'f', -1, 64)))
	}
	return append(recommendations,
		"Consider combining best elements from top 5 configurations",
		"Test top configurations on different timeframes",
	)
}

func compareRows(left, right Group) [][]string {
	return [][]string{
		{"Count", strconv.Itoa(left.Count), strconv.Itoa(right.Count)},
		{"Avg Profit Factor", fmt.Sprintf("%.2f", left.AvgProfitFactor), fmt.Sprintf("%.2f", right.AvgProfitFactor)},
		{"Avg Win Rate", fmt.Sprintf("%.1f %%", left.AvgWinRate), fmt.Sprintf("%.1f %%", right.AvgWinRate)},
		{"Avg Net Profit", fmt.Sprintf("%.2f", left.AvgNetProfit), fmt.Sprintf("%.2f", right.AvgNetProfit)},
		{"Avg Max DD", fmt.Sprintf("%.1f %%", left.AvgMaxDrawdown), fmt.Sprintf("%.1f %%", right.AvgMaxDrawdown)},
		{"Avg Trades", fmt.Sprintf("%.0f", left.AvgTotalTrades), fmt.Sprintf("%.0f", right.AvgTotalTrades)},
		{"Best Profit Factor", fmt.Sprintf("%.2f", left.BestProfitFactor), fmt.Sprintf("%.2f", right.BestProfitFactor)},
	}
}

func poiLabel(row Row) string {
	poi, ok := row.Float(ColumnPOIType)
	switch {
	case !ok:
		return "-"
	case poi == POIOrderBlock:
		return LabelOrderBlock
	default:
		return LabelFVG
	}
}

func structureLabel(row Row) string {
	values := lo.Map([]string{ColumnKSwing, ColumnNBos, ColumnTP2R}, func(column string, _ int) string {
		value, ok := row.Value(column)
		if !ok {
			return "-"
		}
		return value
	})
	return strings.Join(values, "/")
}

func htfLabel(row Row) string {
	on, ok := row.Bool(ColumnUseHTFFilter)
	switch {
	case !ok:
		return "-"
	case on:
		return "ON"
	default:
		return "OFF"
	}
}

// SaveTop writes the top performers with every results column plus Family.
func (r *Report) SaveTop(path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	header := r.Results.Header
	if !lo.Contains(header, ColumnFamily) {
		header = append(append([]string(nil), header...), ColumnFamily)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range r.Top {
		record := lo.Map(header, func(column string, _ int) string {
			if column == ColumnFamily {
				return row.Family
			}
			return row.Raw[column]
		})
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
