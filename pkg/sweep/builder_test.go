package sweep

import (
	"testing"

	"github.com/raykavin/sweepkit/pkg/analysis"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDefault(t *testing.T) *Result {
	t.Helper()
	result, err := NewBuilder(DefaultPlan()).Build()
	require.NoError(t, err)
	return result
}

func requireSequentialIDs(t *testing.T, cases []Case) {
	t.Helper()
	for i, c := range cases {
		require.Equal(t, i+1, c.ID, "case at position %d", i)
	}
}

func TestBuild_DefaultPlanCounts(t *testing.T) {
	result := buildDefault(t)

	// 60 core + 25 entry offset + 9 htf/risk: the htf/risk phase has only
	// 3x3 combinations, so the grid stops short of MaxCases.
	require.Len(t, result.Cases, 94)
	requireSequentialIDs(t, result.Cases)

	require.Equal(t, []PhaseSummary{
		{Name: PhaseCoreStructure, Budget: 60, Emitted: 60, FirstID: 1, LastID: 60},
		{Name: PhaseEntryOffset, Budget: 85, Emitted: 25, FirstID: 61, LastID: 85},
		{Name: PhaseHTFRisk, Budget: 100, Emitted: 9, FirstID: 86, LastID: 94},
	}, result.Phases)
}

func TestResult_SummaryAndFamilies(t *testing.T) {
	result := buildDefault(t)

	assert.Equal(t, "core_structure=60 entry_offset=25 htf_risk=9 total=94", result.Summary())
	assert.Equal(t, []analysis.Family{
		{Name: "core_structure", Start: 1, End: 60},
		{Name: "entry_offset", Start: 61, End: 85},
		{Name: "htf_risk", Start: 86, End: 94},
	}, result.Families())

	plan := DefaultPlan()
	plan.MaxCases = 50
	truncated, err := NewBuilder(plan).Build()
	require.NoError(t, err)
	assert.Equal(t, []analysis.Family{{Name: "core_structure", Start: 1, End: 50}}, truncated.Families())
}

func TestBuild_FirstCase(t *testing.T) {
	first := buildDefault(t).Cases[0]

	expected := lo.Assign(DefaultBase().ParameterSet(), ParameterSet{
		ParamKSwing:           40,
		ParamNBos:             5,
		ParamLookbackInternal: 12,
		ParamTP2R:             2.2,
		ParamEntryOffsetPips:  0.0,
		ParamHTFEMAPeriod:     50,
		ParamRiskPerTradePct:  0.5,
	})

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, PhaseCoreStructure, first.Phase)
	assert.Equal(t, expected, first.Params)
}

func TestBuild_CoreStructureIsRowMajorPrefix(t *testing.T) {
	core := buildDefault(t).Phase(PhaseCoreStructure)
	require.Len(t, core, 60)

	kSwing := []int{40, 45, 50, 55}
	nBos := []int{5, 6, 7, 8, 9}
	tp2 := []float64{2.2, 2.5, 3.0}

	i := 0
	for _, k := range kSwing {
		for _, n := range nBos {
			for _, tp := range tp2 {
				params := core[i].Params
				assert.Equal(t, k, params[ParamKSwing], "case %d", core[i].ID)
				assert.Equal(t, n, params[ParamNBos], "case %d", core[i].ID)
				assert.Equal(t, tp, params[ParamTP2R], "case %d", core[i].ID)
				assert.Equal(t, 12, params[ParamLookbackInternal])
				assert.Equal(t, 0.0, params[ParamEntryOffsetPips])
				assert.Equal(t, 50, params[ParamHTFEMAPeriod])
				assert.Equal(t, 0.5, params[ParamRiskPerTradePct])
				i++
			}
		}
	}

	// K_swing 60..70 lie inside the domain but are never reached.
	for _, c := range core {
		assert.Less(t, c.Params[ParamKSwing], 60)
	}
}

func TestBuild_EntryOffsetPhase(t *testing.T) {
	result := buildDefault(t)
	entry := result.Phase(PhaseEntryOffset)
	require.Len(t, entry, 25)

	first := result.Cases[60]
	assert.Equal(t, 61, first.ID)
	assert.Equal(t, 50, first.Params[ParamKSwing])
	assert.Equal(t, 6, first.Params[ParamNBos])
	assert.Equal(t, 2.5, first.Params[ParamTP2R])
	assert.Equal(t, 0.0, first.Params[ParamEntryOffsetPips])

	offsets := []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5}
	for i, c := range entry {
		triple := DefaultBestConfigs()[i/len(offsets)]
		assert.Equal(t, triple.KSwing, c.Params[ParamKSwing], "case %d", c.ID)
		assert.Equal(t, triple.NBos, c.Params[ParamNBos], "case %d", c.ID)
		assert.Equal(t, triple.TP2R, c.Params[ParamTP2R], "case %d", c.ID)
		assert.Equal(t, offsets[i%len(offsets)], c.Params[ParamEntryOffsetPips], "case %d", c.ID)
		assert.Equal(t, 12, c.Params[ParamLookbackInternal])
		assert.Equal(t, 50, c.Params[ParamHTFEMAPeriod])
		assert.Equal(t, 0.5, c.Params[ParamRiskPerTradePct])
	}
}

// The running-total cutoff leaves the last best triple with a single offset
// while the other four get all six. This looks unintended but is the current
// behaviour of the grid and downstream PresetIDs depend on it.
func TestBuild_EntryOffsetLastTripleTruncated(t *testing.T) {
	entry := buildDefault(t).Phase(PhaseEntryOffset)

	perTriple := lo.CountValuesBy(entry, func(c Case) int { return c.Params[ParamKSwing].(int) })
	assert.Equal(t, map[int]int{50: 6, 55: 6, 45: 6, 60: 6, 65: 1}, perTriple)

	last := entry[len(entry)-1]
	assert.Equal(t, 85, last.ID)
	assert.Equal(t, 65, last.Params[ParamKSwing])
	assert.Equal(t, 7, last.Params[ParamNBos])
	assert.Equal(t, 4.0, last.Params[ParamTP2R])
	assert.Equal(t, 0.0, last.Params[ParamEntryOffsetPips])
}

func TestBuild_HTFRiskPhase(t *testing.T) {
	htf := buildDefault(t).Phase(PhaseHTFRisk)
	require.Len(t, htf, 9)

	combos := lo.Map(htf, func(c Case, _ int) [2]any {
		return [2]any{c.Params[ParamHTFEMAPeriod], c.Params[ParamRiskPerTradePct]}
	})
	assert.Equal(t, [][2]any{
		{20, 0.3}, {20, 0.5}, {20, 0.8},
		{50, 0.3}, {50, 0.5}, {50, 0.8},
		{100, 0.3}, {100, 0.5}, {100, 0.8},
	}, combos)

	for _, c := range htf {
		assert.Equal(t, 50, c.Params[ParamKSwing])
		assert.Equal(t, 6, c.Params[ParamNBos])
		assert.Equal(t, 2.5, c.Params[ParamTP2R])
		assert.Equal(t, 0.2, c.Params[ParamEntryOffsetPips])
		assert.Equal(t, 12, c.Params[ParamLookbackInternal])
	}

	assert.Equal(t, 86, htf[0].ID)
	last := htf[len(htf)-1]
	assert.Equal(t, 94, last.ID)
	assert.Equal(t, 100, last.Params[ParamHTFEMAPeriod])
	assert.Equal(t, 0.8, last.Params[ParamRiskPerTradePct])
}

func TestBuild_BaseIsClonedPerCase(t *testing.T) {
	plan := DefaultPlan()
	result, err := NewBuilder(plan).Build()
	require.NoError(t, err)

	result.Cases[0].Params["Symbol"] = "EURUSD"
	assert.Equal(t, "XAUUSD", result.Cases[1].Params["Symbol"])

	symbol, ok := plan.Base.Get("Symbol")
	require.True(t, ok)
	assert.Equal(t, "XAUUSD", symbol)
}

func TestBuild_MaxCasesTruncates(t *testing.T) {
	plan := DefaultPlan()
	plan.MaxCases = 50

	result, err := NewBuilder(plan).Build()
	require.NoError(t, err)

	require.Len(t, result.Cases, 50)
	requireSequentialIDs(t, result.Cases)
	assert.Equal(t, 50, result.Phases[0].Emitted)
	assert.Zero(t, result.Phases[1].Emitted)
	assert.Zero(t, result.Phases[1].FirstID)
}

func TestBuild_NeverExceedsMaxCases(t *testing.T) {
	plan := DefaultPlan()
	plan.Core.Budget = 200
	plan.Core.TP2Prefix = 6
	plan.EntryOffset.Budget = 300
	plan.HTFRisk.Budget = 400

	result, err := NewBuilder(plan).Build()
	require.NoError(t, err)

	require.Len(t, result.Cases, 100)
	requireSequentialIDs(t, result.Cases)
	assert.Len(t, result.Phase(PhaseCoreStructure), 100)
}

func TestBuild_EmptyDomainContributesNothing(t *testing.T) {
	plan := DefaultPlan()
	plan.Domains = plan.Domains.Merge(Domains{{Name: ParamEntryOffsetPips, Values: []any{}}})

	result, err := NewBuilder(plan).Build()
	require.NoError(t, err)

	// The empty offset domain silently drops the entry offset phase; the
	// htf/risk phase then starts right after the core phase.
	require.Len(t, result.Cases, 69)
	requireSequentialIDs(t, result.Cases)
	assert.Empty(t, result.Phase(PhaseEntryOffset))
	assert.Equal(t, PhaseHTFRisk, result.Cases[60].Phase)
}

func TestBuild_MissingCoreDomainShiftsBudget(t *testing.T) {
	plan := DefaultPlan()
	plan.Domains = lo.Filter(plan.Domains, func(d Domain, _ int) bool { return d.Name != ParamKSwing })

	result, err := NewBuilder(plan).Build()
	require.NoError(t, err)

	assert.Empty(t, result.Phase(PhaseCoreStructure))
	assert.Len(t, result.Phase(PhaseEntryOffset), 30)
	assert.Len(t, result.Phase(PhaseHTFRisk), 9)
	requireSequentialIDs(t, result.Cases)
}

func TestBuild_StrictDomains(t *testing.T) {
	plan := DefaultPlan()
	plan.Domains = plan.Domains.Merge(Domains{{Name: ParamRiskPerTradePct, Values: nil}})

	_, err := NewBuilder(plan, WithStrictDomains()).Build()
	require.ErrorIs(t, err, ErrEmptyDomain)

	plan.Domains = plan.Domains.Merge(Domains{{Name: ParamRiskPerTradePct, Values: []any{0.3, 0.3}}})
	_, err = NewBuilder(plan, WithStrictDomains()).Build()
	require.ErrorIs(t, err, ErrDuplicateValue)

	_, err = NewBuilder(DefaultPlan(), WithStrictDomains()).Build()
	require.NoError(t, err)
}

func TestPlan_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Plan)
		err    error
	}{
		{"default", func(*Plan) {}, nil},
		{"zero max cases", func(p *Plan) { p.MaxCases = 0 }, ErrInvalidBudget},
		{"zero budget", func(p *Plan) { p.EntryOffset.Budget = 0 }, ErrInvalidBudget},
		{"decreasing budget", func(p *Plan) { p.HTFRisk.Budget = 70 }, ErrInvalidBudget},
		{"negative tp2 prefix", func(p *Plan) { p.Core.TP2Prefix = -1 }, ErrInvalidBudget},
		{"unknown domain", func(p *Plan) {
			p.Domains = append(p.Domains, Domain{Name: "TP3_R", Values: []any{1.0}})
		}, ErrUnknownDomain},
		{"duplicate domain", func(p *Plan) {
			p.Domains = append(p.Domains, Domain{Name: ParamNBos, Values: []any{5}})
		}, ErrDuplicateDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := DefaultPlan()
			tt.mutate(&plan)

			err := plan.Validate()
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBaseConfig_Merge(t *testing.T) {
	base := BaseConfig{{Name: "Symbol", Value: "XAUUSD"}, {Name: "M_retest", Value: 3}}
	merged := base.Merge(BaseConfig{{Name: "M_retest", Value: 4}, {Name: "Extra", Value: true}})

	assert.Equal(t, BaseConfig{
		{Name: "Symbol", Value: "XAUUSD"},
		{Name: "M_retest", Value: 4},
		{Name: "Extra", Value: true},
	}, merged)
	assert.Equal(t, 3, base[1].Value)
}
