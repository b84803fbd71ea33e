package sweep

import (
	"fmt"
	"iter"

	"github.com/samber/lo"
)

// PhaseName identifies the sweep that produced a case.
type PhaseName string

const (
	PhaseCoreStructure PhaseName = "core_structure"
	PhaseEntryOffset   PhaseName = "entry_offset"
	PhaseHTFRisk       PhaseName = "htf_risk"
)

// Triple is a (K_swing, N_bos, TP2_R) structure configuration.
type Triple struct {
	KSwing int     `mapstructure:"k_swing" yaml:"k_swing"`
	NBos   int     `mapstructure:"n_bos" yaml:"n_bos"`
	TP2R   float64 `mapstructure:"tp2_r" yaml:"tp2_r"`
}

// Params returns the triple as grid columns.
func (t Triple) Params() ParameterSet {
	return ParameterSet{
		ParamKSwing: t.KSwing,
		ParamNBos:   t.NBos,
		ParamTP2R:   t.TP2R,
	}
}

// CorePhase sweeps K_swing x N_bos x the first TP2Prefix TP2_R values.
type CorePhase struct {
	Budget           int     `mapstructure:"budget" yaml:"budget"`
	TP2Prefix        int     `mapstructure:"tp2_prefix" yaml:"tp2_prefix"`
	LookbackInternal int     `mapstructure:"lookback_internal" yaml:"lookback_internal"`
	EntryOffsetPips  float64 `mapstructure:"entry_offset_pips" yaml:"entry_offset_pips"`
	HTFEMAPeriod     int     `mapstructure:"htf_ema_period" yaml:"htf_ema_period"`
	RiskPerTradePct  float64 `mapstructure:"risk_per_trade_pct" yaml:"risk_per_trade_pct"`
}

// EntryOffsetPhase sweeps every best triple against the EntryOffsetPips domain.
type EntryOffsetPhase struct {
	Budget           int     `mapstructure:"budget" yaml:"budget"`
	LookbackInternal int     `mapstructure:"lookback_internal" yaml:"lookback_internal"`
	HTFEMAPeriod     int     `mapstructure:"htf_ema_period" yaml:"htf_ema_period"`
	RiskPerTradePct  float64 `mapstructure:"risk_per_trade_pct" yaml:"risk_per_trade_pct"`
}

// HTFRiskPhase sweeps HTF_EMA_Period x RiskPerTradePct around one anchor triple.
type HTFRiskPhase struct {
	Budget           int     `mapstructure:"budget" yaml:"budget"`
	Anchor           Triple  `mapstructure:"anchor" yaml:"anchor"`
	LookbackInternal int     `mapstructure:"lookback_internal" yaml:"lookback_internal"`
	EntryOffsetPips  float64 `mapstructure:"entry_offset_pips" yaml:"entry_offset_pips"`
}

// Plan is the full description of one grid. Budgets are cumulative: a phase
// stops once the running total across all phases reaches its budget.
type Plan struct {
	MaxCases    int
	Base        BaseConfig
	Domains     Domains
	BestConfigs []Triple
	Core        CorePhase
	EntryOffset EntryOffsetPhase
	HTFRisk     HTFRiskPhase
}

// Phase is one lazily generated sweep and its cumulative budget.
type Phase struct {
	Name   PhaseName
	Budget int
	Cases  iter.Seq[ParameterSet]
}

// Phases returns the sweeps in priority order.
func (p Plan) Phases() []Phase {
	return []Phase{
		{Name: PhaseCoreStructure, Budget: p.Core.Budget, Cases: p.coreStructure()},
		{Name: PhaseEntryOffset, Budget: p.EntryOffset.Budget, Cases: p.entryOffset()},
		{Name: PhaseHTFRisk, Budget: p.HTFRisk.Budget, Cases: p.htfRisk()},
	}
}

func (p Plan) coreStructure() iter.Seq[ParameterSet] {
	tp2 := p.Domains.Get(ParamTP2R)
	tp2.Values = lo.Subset(tp2.Values, 0, uint(max(p.Core.TP2Prefix, 0)))

	return Pin(
		Product(p.Domains.Get(ParamKSwing), p.Domains.Get(ParamNBos), tp2),
		ParameterSet{
			ParamLookbackInternal: p.Core.LookbackInternal,
			ParamEntryOffsetPips:  p.Core.EntryOffsetPips,
			ParamHTFEMAPeriod:     p.Core.HTFEMAPeriod,
			ParamRiskPerTradePct:  p.Core.RiskPerTradePct,
		},
	)
}

func (p Plan) entryOffset() iter.Seq[ParameterSet] {
	offsets := p.Domains.Get(ParamEntryOffsetPips)
	pins := ParameterSet{
		ParamLookbackInternal: p.EntryOffset.LookbackInternal,
		ParamHTFEMAPeriod:     p.EntryOffset.HTFEMAPeriod,
		ParamRiskPerTradePct:  p.EntryOffset.RiskPerTradePct,
	}

	return func(yield func(ParameterSet) bool) {
		for _, triple := range p.BestConfigs {
			for set := range Pin(Product(offsets), lo.Assign(triple.Params(), pins)) {
				if !yield(set) {
					return
				}
			}
		}
	}
}

func (p Plan) htfRisk() iter.Seq[ParameterSet] {
	pins := lo.Assign(p.HTFRisk.Anchor.Params(), ParameterSet{
		ParamLookbackInternal: p.HTFRisk.LookbackInternal,
		ParamEntryOffsetPips:  p.HTFRisk.EntryOffsetPips,
	})

	return Pin(
		Product(p.Domains.Get(ParamHTFEMAPeriod), p.Domains.Get(ParamRiskPerTradePct)),
		pins,
	)
}

// Validate checks the structure of the plan. Empty domains are accepted and
// simply yield nothing; see ValidateDomains for the strict check.
func (p Plan) Validate() error {
	if p.MaxCases <= 0 {
		return fmt.Errorf("%w: max cases must be positive, got %d", ErrInvalidBudget, p.MaxCases)
	}

	previous := 0
	for _, phase := range p.Phases() {
		if phase.Budget <= 0 {
			return fmt.Errorf("%w: %s budget must be positive, got %d", ErrInvalidBudget, phase.Name, phase.Budget)
		}
		if phase.Budget < previous {
			return fmt.Errorf("%w: %s budget %d is below the previous phase total %d",
				ErrInvalidBudget, phase.Name, phase.Budget, previous)
		}
		previous = phase.Budget
	}

	if p.Core.TP2Prefix < 0 {
		return fmt.Errorf("%w: tp2 prefix must not be negative", ErrInvalidBudget)
	}

	return p.Domains.validate()
}

// ValidateDomains fails on any empty or repeated domain a phase sweeps over.
func (p Plan) ValidateDomains() error {
	return p.Domains.validateValues(
		ParamKSwing,
		ParamNBos,
		ParamTP2R,
		ParamEntryOffsetPips,
		ParamHTFEMAPeriod,
		ParamRiskPerTradePct,
	)
}
