package analysis

import (
	"github.com/raykavin/sweepkit/pkg/metric"
	"github.com/samber/lo"
)

// UnknownFamily holds rows whose PresetID falls outside every family.
const UnknownFamily = "Unknown"

// Family is a named, inclusive PresetID range.
type Family struct {
	Name  string `mapstructure:"name" yaml:"name"`
	Start int    `mapstructure:"start" yaml:"start"`
	End   int    `mapstructure:"end" yaml:"end"`
}

func (f Family) Contains(presetID int) bool {
	return metric.Between(presetID, f.Start, f.End)
}

// DefaultFamilies are the preset families of the 500 use case sweep.
func DefaultFamilies() []Family {
	return []Family{
		{Name: "Family 1 (OB)", Start: 1, End: 100},
		{Name: "Family 2 (FVG)", Start: 101, End: 200},
		{Name: "Family 3 (Imbalance)", Start: 201, End: 275},
		{Name: "Family 4 (HTF Filter)", Start: 276, End: 350},
		{Name: "Family 5 (Risk/Entry)", Start: 351, End: 500},
	}
}

// FamilyOf returns the name of the first family containing presetID.
func FamilyOf(families []Family, presetID int) string {
	family, ok := lo.Find(families, func(f Family) bool { return f.Contains(presetID) })
	if !ok {
		return UnknownFamily
	}
	return family.Name
}
