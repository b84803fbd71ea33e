package sweep

import (
	"fmt"
	"strings"

	"github.com/raykavin/sweepkit/pkg/analysis"
	"github.com/raykavin/sweepkit/pkg/logger"
	"github.com/samber/lo"
)

// Case is one generated parameter combination. ID is the "Case" column the
// backtest runner reports back as PresetID.
type Case struct {
	ID     int
	Phase  PhaseName
	Params ParameterSet
}

// Record renders the case as a CSV row following header.
func (c Case) Record(header []string) []string {
	return lo.Map(header, func(column string, _ int) string {
		if column == ColumnCase {
			return FormatValue(c.ID)
		}
		return FormatValue(c.Params[column])
	})
}

// PhaseSummary describes what a phase contributed to the final grid.
type PhaseSummary struct {
	Name    PhaseName
	Budget  int
	Emitted int
	FirstID int // zero when the phase emitted nothing
	LastID  int
}

// Result is a generated grid.
type Result struct {
	Cases  []Case
	Phases []PhaseSummary
}

// Phase returns the cases produced by the named phase.
func (r Result) Phase(name PhaseName) []Case {
	return lo.Filter(r.Cases, func(c Case, _ int) bool { return c.Phase == name })
}

// Summary reports the per-phase counts, for example
// "core_structure=60 entry_offset=25 htf_risk=9 total=94".
func (r Result) Summary() string {
	parts := lo.Map(r.Phases, func(p PhaseSummary, _ int) string {
		return fmt.Sprintf("%s=%d", p.Name, p.Emitted)
	})
	return strings.Join(append(parts, fmt.Sprintf("total=%d", len(r.Cases))), " ")
}

// Families maps every phase that emitted cases to the Case ID range it
// occupies, so results can be grouped by the sweep that produced them.
func (r Result) Families() []analysis.Family {
	emitted := lo.Filter(r.Phases, func(p PhaseSummary, _ int) bool { return p.Emitted > 0 })
	return lo.Map(emitted, func(p PhaseSummary, _ int) analysis.Family {
		return analysis.Family{Name: string(p.Name), Start: p.FirstID, End: p.LastID}
	})
}

// Builder turns a Plan into a numbered grid.
type Builder struct {
	plan   Plan
	strict bool
	log    logger.Logger
}

type Option func(*Builder)

// WithStrictDomains makes Build fail on empty or repeated domain values
// instead of letting the affected phase contribute nothing.
func WithStrictDomains() Option {
	return func(b *Builder) {
		b.strict = true
	}
}

func WithLogger(log logger.Logger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

func NewBuilder(plan Plan, options ...Option) *Builder {
	builder := &Builder{plan: plan}
	for _, option := range options {
		option(builder)
	}
	return builder
}

// Build runs the phases in order. Each phase draws from its sequence until
// the running total reaches the phase budget; the result is cut to MaxCases
// and numbered from 1.
func (b *Builder) Build() (*Result, error) {
	if err := b.plan.Validate(); err != nil {
		return nil, err
	}
	if b.strict {
		if err := b.plan.ValidateDomains(); err != nil {
			return nil, err
		}
	}

	base := b.plan.Base.ParameterSet()
	phases := b.plan.Phases()

	var cases []Case
	for _, phase := range phases {
		before := len(cases)
		for set := range Take(phase.Cases, phase.Budget-len(cases)) {
			cases = append(cases, Case{Phase: phase.Name, Params: lo.Assign(base, set)})
		}

		b.debugf("phase %s emitted %d cases (running total %d, budget %d)",
			phase.Name, len(cases)-before, len(cases), phase.Budget)
	}

	if len(cases) > b.plan.MaxCases {
		b.debugf("truncating grid from %d to %d cases", len(cases), b.plan.MaxCases)
		cases = cases[:b.plan.MaxCases]
	}

	for i := range cases {
		cases[i].ID = i + 1
	}

	return &Result{Cases: cases, Phases: summarize(phases, cases)}, nil
}

func (b *Builder) debugf(format string, args ...any) {
	if b.log != nil {
		b.log.Debugf(format, args...)
	}
}

func summarize(phases []Phase, cases []Case) []PhaseSummary {
	return lo.Map(phases, func(phase Phase, _ int) PhaseSummary {
		summary := PhaseSummary{Name: phase.Name, Budget: phase.Budget}
		for _, c := range cases {
			if c.Phase != phase.Name {
				continue
			}
			if summary.FirstID == 0 {
				summary.FirstID = c.ID
			}
			summary.LastID = c.ID
			summary.Emitted++
		}
		return summary
	})
}
