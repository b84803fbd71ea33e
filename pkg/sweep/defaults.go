package sweep

import "github.com/samber/lo"

const (
	DefaultMaxCases   = 100
	DefaultGridFile   = "UC_100_optimized.csv"
	DefaultSampleFile = "preset_optimized_sample.csv"
)

// DefaultBase is the EA configuration every case starts from. UseHTFFilter
// stays on for the whole sweep.
func DefaultBase() BaseConfig {
	return BaseConfig{
		{Name: "Symbol", Value: "XAUUSD"},
		{Name: "M_retest", Value: 3},
		{Name: "EqTol", Value: "0.2*pip"},
		{Name: "BOSBufferPoints", Value: "2.0*pipPoints"},
		{Name: "UseKillzones", Value: true},
		{Name: "UseRoundNumber", Value: true},
		{Name: "RNDelta", Value: "0.3*pip"},
		{Name: "RiskPerTradePct", Value: 0.5},
		{Name: "SL_BufferUSD", Value: "0.6*pip"},
		{Name: "TP1_R", Value: 1.0},
		{Name: "BE_Activate_R", Value: 0.8},
		{Name: "PartialClosePct", Value: 50},
		{Name: "TimeStopMinutes", Value: 5},
		{Name: "MinProgressR", Value: 0.5},
		{Name: "MaxSpreadUSD", Value: "0.5*pip"},
		{Name: "MaxOpenPositions", Value: 1},
		{Name: "UsePendingRetest", Value: false},
		{Name: "RetestOffsetUSD", Value: "0.07*pip"},
		{Name: "PendingExpirySec", Value: 60},
		{Name: "CooldownSec", Value: 0},
		{Name: "ATRScalingPeriod", Value: 14},
		{Name: "SL_ATR_Mult", Value: 0.60},
		{Name: "Retest_ATR_Mult", Value: 0.25},
		{Name: "MaxSpread_ATR_Mult", Value: 0.15},
		{Name: "RNDelta_ATR_Mult", Value: 0.40},
		{Name: "PendingExpiryMinutes", Value: 120},
		{Name: "UseHTFFilter", Value: true},
		{Name: "HTF_EMA_Period", Value: 50},
	}
}

// DefaultDomains holds the "golden zone" ranges from the previous sweep.
// LookbackInternal is declared for reference; every phase pins it.
func DefaultDomains() Domains {
	return Domains{
		{Name: ParamKSwing, Values: []any{40, 45, 50, 55, 60, 65, 70}},
		{Name: ParamNBos, Values: []any{5, 6, 7, 8, 9}},
		{Name: ParamLookbackInternal, Values: []any{10, 12, 14, 16}},
		{Name: ParamTP2R, Values: []any{2.2, 2.5, 3.0, 3.5, 4.0, 4.5}},
		{Name: ParamEntryOffsetPips, Values: []any{0.0, 0.1, 0.2, 0.3, 0.4, 0.5}},
		{Name: ParamHTFEMAPeriod, Values: []any{20, 50, 100}},
		{Name: ParamRiskPerTradePct, Values: []any{0.3, 0.5, 0.8}},
	}
}

// DefaultBestConfigs are the structure triples picked for offset tuning,
// best first.
func DefaultBestConfigs() []Triple {
	return []Triple{
		{KSwing: 50, NBos: 6, TP2R: 2.5},
		{KSwing: 55, NBos: 7, TP2R: 3.0},
		{KSwing: 45, NBos: 6, TP2R: 2.2},
		{KSwing: 60, NBos: 8, TP2R: 3.5},
		{KSwing: 65, NBos: 7, TP2R: 4.0},
	}
}

// DefaultPlan returns the 60/85/100 sweep.
func DefaultPlan() Plan {
	return Plan{
		MaxCases:    DefaultMaxCases,
		Base:        DefaultBase(),
		Domains:     DefaultDomains(),
		BestConfigs: DefaultBestConfigs(),
		Core: CorePhase{
			Budget:           60,
			TP2Prefix:        3,
			LookbackInternal: 12,
			EntryOffsetPips:  0.0,
			HTFEMAPeriod:     50,
			RiskPerTradePct:  0.5,
		},
		EntryOffset: EntryOffsetPhase{
			Budget:           85,
			LookbackInternal: 12,
			HTFEMAPeriod:     50,
			RiskPerTradePct:  0.5,
		},
		HTFRisk: HTFRiskPhase{
			Budget:           100,
			Anchor:           Triple{KSwing: 50, NBos: 6, TP2R: 2.5},
			LookbackInternal: 12,
			EntryOffsetPips:  0.2,
		},
	}
}

// SamplePreset returns the two fixed rows used to smoke-test the EA's
// preset loader. They do not depend on any plan.
func SamplePreset() []Case {
	base := DefaultBase().ParameterSet()
	rows := []ParameterSet{
		{ParamKSwing: 50, ParamNBos: 6, ParamLookbackInternal: 12, ParamTP2R: 2.5, ParamEntryOffsetPips: 0.0},
		{ParamKSwing: 55, ParamNBos: 7, ParamLookbackInternal: 14, ParamTP2R: 3.0, ParamEntryOffsetPips: 0.2},
	}

	cases := make([]Case, len(rows))
	for i, row := range rows {
		cases[i] = Case{ID: i + 1, Params: lo.Assign(base, row)}
	}
	return cases
}
