// Package sweep builds the prioritized "use case" grid for the XAU EA
// backtest runner: a bounded prefix of three hand-tuned parameter sweeps,
// numbered consecutively and written as CSV.
package sweep

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Tunable parameter names, as they appear in the grid header.
const (
	ParamKSwing           = "K_swing"
	ParamNBos             = "N_bos"
	ParamLookbackInternal = "LookbackInternal"
	ParamTP2R             = "TP2_R"
	ParamEntryOffsetPips  = "EntryOffsetPips"
	ParamHTFEMAPeriod     = "HTF_EMA_Period"
	ParamRiskPerTradePct  = "RiskPerTradePct"
)

// TunableParams lists every parameter a Domain may be declared for.
var TunableParams = []string{
	ParamKSwing,
	ParamNBos,
	ParamLookbackInternal,
	ParamTP2R,
	ParamEntryOffsetPips,
	ParamHTFEMAPeriod,
	ParamRiskPerTradePct,
}

var (
	ErrEmptyDomain     = errors.New("empty parameter domain")
	ErrUnknownDomain   = errors.New("unknown parameter domain")
	ErrDuplicateDomain = errors.New("parameter domain declared twice")
	ErrDuplicateValue  = errors.New("duplicate value in parameter domain")
	ErrInvalidBudget   = errors.New("invalid phase budget")
)

// ParameterSet maps a column name to its value. Values are int, float64,
// bool or string; strings such as "0.2*pip" are opaque to this package.
type ParameterSet map[string]any

// Field is one entry of an ordered BaseConfig.
type Field struct {
	Name  string `mapstructure:"name"`
	Value any    `mapstructure:"value"`
}

// BaseConfig holds the default value of every non-swept column, in
// declaration order.
type BaseConfig []Field

// ParameterSet returns a fresh map with the base values.
func (b BaseConfig) ParameterSet() ParameterSet {
	return lo.Associate(b, func(f Field) (string, any) {
		return f.Name, f.Value
	})
}

// Get returns the default value declared for name.
func (b BaseConfig) Get(name string) (any, bool) {
	field, ok := lo.Find(b, func(f Field) bool { return f.Name == name })
	return field.Value, ok
}

// Merge returns a copy of b where fields named in overrides take the
// override value. Unknown names are appended in override order.
func (b BaseConfig) Merge(overrides BaseConfig) BaseConfig {
	merged := append(BaseConfig(nil), b...)
	for _, o := range overrides {
		_, idx, found := lo.FindIndexOf(merged, func(f Field) bool { return f.Name == o.Name })
		if found {
			merged[idx].Value = o.Value
			continue
		}
		merged = append(merged, o)
	}
	return merged
}

// Domain is the ordered list of candidate values swept for one parameter.
type Domain struct {
	Name   string `mapstructure:"name"`
	Values []any  `mapstructure:"values"`
}

// Domains is the set of declared parameter domains.
type Domains []Domain

// Get returns the domain for name. A missing domain comes back empty so
// that it contributes no cases.
func (d Domains) Get(name string) Domain {
	domain, ok := lo.Find(d, func(dom Domain) bool { return dom.Name == name })
	if !ok {
		return Domain{Name: name}
	}
	return domain
}

// Merge replaces domains by name with those in overrides and keeps the rest.
func (d Domains) Merge(overrides Domains) Domains {
	merged := append(Domains(nil), d...)
	for _, o := range overrides {
		_, idx, found := lo.FindIndexOf(merged, func(dom Domain) bool { return dom.Name == o.Name })
		if found {
			merged[idx] = o
			continue
		}
		merged = append(merged, o)
	}
	return merged
}

func (d Domains) validate() error {
	names := lo.Map(d, func(dom Domain, _ int) string { return dom.Name })
	if unknown, _ := lo.Difference(names, TunableParams); len(unknown) > 0 {
		return fmt.Errorf("%w: %v", ErrUnknownDomain, unknown)
	}
	if dup := lo.FindDuplicates(names); len(dup) > 0 {
		return fmt.Errorf("%w: %v", ErrDuplicateDomain, dup)
	}
	return nil
}

// validateValues rejects empty domains and repeated candidate values.
func (d Domains) validateValues(names ...string) error {
	for _, name := range names {
		domain := d.Get(name)
		if len(domain.Values) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyDomain, name)
		}
		if dup := lo.FindDuplicates(domain.Values); len(dup) > 0 {
			return fmt.Errorf("%w: %s %v", ErrDuplicateValue, name, dup)
		}
	}
	return nil
}
