package analysis

import (
	"sort"

	"github.com/raykavin/sweepkit/pkg/metric"
	"github.com/samber/lo"
)

// POI types reported in the POIType column.
const (
	POIFairValueGap = 0
	POIOrderBlock   = 1

	LabelOrderBlock = "Order Block"
	LabelFVG        = "FVG"
)

// Group aggregates a set of rows.
type Group struct {
	Label            string
	Count            int
	AvgProfitFactor  float64
	AvgWinRate       float64
	AvgNetProfit     float64
	AvgMaxDrawdown   float64
	AvgSharpeRatio   float64
	AvgTotalTrades   float64
	BestProfitFactor float64
	BestPresetID     int
}

func aggregate(label string, rows []Row) Group {
	column := func(get func(Row) float64) []float64 {
		return lo.Map(rows, func(row Row, _ int) float64 { return get(row) })
	}

	profitFactors := column(func(r Row) float64 { return r.ProfitFactor })
	group := Group{
		Label:           label,
		Count:           len(rows),
		AvgProfitFactor: metric.Mean(profitFactors),
		AvgWinRate:      metric.Mean(column(func(r Row) float64 { return r.WinRate })),
		AvgNetProfit:    metric.Mean(column(func(r Row) float64 { return r.NetProfit })),
		AvgMaxDrawdown:  metric.Mean(column(func(r Row) float64 { return r.MaxDrawdownPercent })),
		AvgSharpeRatio:  metric.Mean(column(func(r Row) float64 { return r.SharpeRatio })),
		AvgTotalTrades:  metric.Mean(column(func(r Row) float64 { return r.TotalTrades })),
	}
	if best := metric.ArgMax(profitFactors); best >= 0 {
		group.BestProfitFactor = rows[best].ProfitFactor
		group.BestPresetID = rows[best].PresetID
	}
	return group
}

// FamilyStats aggregates classified rows per family, in family order.
// Families without rows are skipped.
func FamilyStats(rows []Row, families []Family) []Group {
	byFamily := lo.GroupBy(rows, func(row Row) string { return row.Family })

	stats := make([]Group, 0, len(families))
	for _, family := range families {
		members := byFamily[family.Name]
		if len(members) == 0 {
			continue
		}
		stats = append(stats, aggregate(family.Name, members))
	}
	return stats
}

// TopPerformers returns up to n rows with at least minTrades trades, a net
// profit and a profit factor above 1, best profit factor first. Ties keep
// file order.
func TopPerformers(rows []Row, n, minTrades int) []Row {
	if n <= 0 {
		return nil
	}

	candidates := lo.Filter(rows, func(row Row, _ int) bool {
		return row.TotalTrades >= float64(minTrades) && row.NetProfit > 0 && row.ProfitFactor > 1.0
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ProfitFactor > candidates[j].ProfitFactor
	})

	return lo.Subset(candidates, 0, uint(n))
}

// POIComparison contrasts order block and fair value gap entries.
type POIComparison struct {
	OrderBlock Group
	FVG        Group
	Winner     string
}

// ComparePOI returns false when the POIType column is absent or either side
// has no rows.
func ComparePOI(results *Results) (POIComparison, bool) {
	if !results.Has(ColumnPOIType) {
		return POIComparison{}, false
	}

	byType := func(poi float64) []Row {
		return lo.Filter(results.Rows, func(row Row, _ int) bool {
			value, ok := row.Float(ColumnPOIType)
			return ok && value == poi
		})
	}

	orderBlocks, gaps := byType(POIOrderBlock), byType(POIFairValueGap)
	if len(orderBlocks) == 0 || len(gaps) == 0 {
		return POIComparison{}, false
	}

	comparison := POIComparison{
		OrderBlock: aggregate(LabelOrderBlock, orderBlocks),
		FVG:        aggregate(LabelFVG, gaps),
		Winner:     LabelFVG,
	}
	if comparison.OrderBlock.AvgProfitFactor > comparison.FVG.AvgProfitFactor {
		comparison.Winner = LabelOrderBlock
	}
	return comparison, true
}

// HTFImpact compares runs with the higher timeframe filter on and off.
type HTFImpact struct {
	On  Group
	Off Group
	// TradeReductionPct is how many fewer trades the filter takes on average.
	TradeReductionPct float64
}

// HTFFilterImpact returns false when the UseHTFFilter column is absent or
// either side has no rows.
func HTFFilterImpact(results *Results) (HTFImpact, bool) {
	if !results.Has(ColumnUseHTFFilter) {
		return HTFImpact{}, false
	}

	byFlag := func(flag bool) []Row {
		return lo.Filter(results.Rows, func(row Row, _ int) bool {
			value, ok := row.Bool(ColumnUseHTFFilter)
			return ok && value == flag
		})
	}

	on, off := byFlag(true), byFlag(false)
	if len(on) == 0 || len(off) == 0 {
		return HTFImpact{}, false
	}

	impact := HTFImpact{On: aggregate("ON", on), Off: aggregate("OFF", off)}
	if impact.Off.AvgTotalTrades != 0 {
		impact.TradeReductionPct = (1 - impact.On.AvgTotalTrades/impact.Off.AvgTotalTrades) * 100
	}
	return impact, true
}

// Summary is the overall verdict over a results file.
type Summary struct {
	Total           int
	Profitable      int
	ProfitablePct   float64
	AvgProfitFactor float64
	AvgWinRate      float64
	Best            Row
	// Ranking orders the family stats by average profit factor.
	Ranking []Group

	BestFamily string
	BestPOI    string // empty without a POI comparison
	BestRisk   float64
	HasRisk    bool
}

// Summarize fails with ErrNoResults on an empty results file.
func Summarize(results *Results, stats []Group) (Summary, error) {
	rows := results.Rows
	if len(rows) == 0 {
		return Summary{}, ErrNoResults
	}

	profitFactors := lo.Map(rows, func(row Row, _ int) float64 { return row.ProfitFactor })
	summary := Summary{
		Total:           len(rows),
		Profitable:      lo.CountBy(rows, func(row Row) bool { return row.NetProfit > 0 }),
		AvgProfitFactor: metric.Mean(profitFactors),
		AvgWinRate:      metric.Mean(lo.Map(rows, func(row Row, _ int) float64 { return row.WinRate })),
	}
	if best := metric.ArgMax(profitFactors); best >= 0 {
		summary.Best = rows[best]
	}
	summary.ProfitablePct = float64(summary.Profitable) / float64(summary.Total) * 100

	summary.Ranking = append([]Group(nil), stats...)
	sort.SliceStable(summary.Ranking, func(i, j int) bool {
		return summary.Ranking[i].AvgProfitFactor > summary.Ranking[j].AvgProfitFactor
	})
	if len(summary.Ranking) > 0 {
		summary.BestFamily = summary.Ranking[0].Label
	}

	if comparison, ok := ComparePOI(results); ok {
		summary.BestPOI = comparison.Winner
	}

	if results.Has(ColumnRiskPerTradePct) {
		summary.BestRisk, summary.HasRisk = bestRisk(rows)
	}

	return summary, nil
}

// bestRisk returns the risk level with the highest mean profit factor; ties
// go to the lower risk.
func bestRisk(rows []Row) (float64, bool) {
	byRisk := make(map[float64][]float64)
	for _, row := range rows {
		if risk, ok := row.Float(ColumnRiskPerTradePct); ok {
			byRisk[risk] = append(byRisk[risk], row.ProfitFactor)
		}
	}
	if len(byRisk) == 0 {
		return 0, false
	}

	levels := lo.Keys(byRisk)
	sort.Float64s(levels)

	means := lo.Map(levels, func(level float64, _ int) float64 { return metric.Mean(byRisk[level]) })
	best := metric.ArgMax(means)
	if best < 0 {
		return 0, false
	}
	return levels[best], true
}
