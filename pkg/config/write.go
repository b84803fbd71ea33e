package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/raykavin/sweepkit/pkg/analysis"
	"github.com/raykavin/sweepkit/pkg/sweep"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// document is the YAML layout of a Config.
type document struct {
	MaxCases int           `yaml:"max_cases"`
	Output   Output        `yaml:"output"`
	Sweep    sweepDocument `yaml:"sweep"`
	Analysis Analysis      `yaml:"analysis"`
}

type sweepDocument struct {
	Base        []field                `yaml:"base"`
	Domains     []domain               `yaml:"domains"`
	BestConfigs []sweep.Triple         `yaml:"best_configs,flow"`
	Core        sweep.CorePhase        `yaml:"core"`
	EntryOffset sweep.EntryOffsetPhase `yaml:"entry_offset"`
	HTFRisk     sweep.HTFRiskPhase     `yaml:"htf_risk"`
}

type field struct {
	Name  string `yaml:"name"`
	Value scalar `yaml:"value"`
}

type domain struct {
	Name   string   `yaml:"name"`
	Values []scalar `yaml:"values,flow"`
}

// scalar keeps the type of a base or domain value in YAML, so 1.0 is
// written as a float rather than the integer 1.
type scalar struct {
	value any
}

func (s scalar) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: sweep.FormatValue(s.value)}
	switch s.value.(type) {
	case bool:
		node.Tag = "!!bool"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		node.Tag = "!!int"
	case float32, float64:
		node.Tag = "!!float"
	default:
		node.Tag = "!!str"
	}
	return node, nil
}

func toScalars(values []any) []scalar {
	return lo.Map(values, func(value any, _ int) scalar { return scalar{value: value} })
}

// Write encodes c as YAML.
func (c *Config) Write(w io.Writer) error {
	doc := document{
		MaxCases: c.MaxCases,
		Output:   c.Output,
		Sweep: sweepDocument{
			Base: lo.Map(c.Sweep.Base, func(f sweep.Field, _ int) field {
				return field{Name: f.Name, Value: scalar{value: f.Value}}
			}),
			Domains: lo.Map(c.Sweep.Domains, func(d sweep.Domain, _ int) domain {
				return domain{Name: d.Name, Values: toScalars(d.Values)}
			}),
			BestConfigs: c.Sweep.BestConfigs,
			Core:        c.Sweep.Core,
			EntryOffset: c.Sweep.EntryOffset,
			HTFRisk:     c.Sweep.HTFRisk,
		},
		Analysis: c.Analysis,
	}
	if doc.Analysis.Families == nil {
		doc.Analysis.Families = []analysis.Family{}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return err
	}
	return encoder.Close()
}

// Save writes c to path, creating the parent directory when needed.
func (c *Config) Save(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("could not create configuration directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	return c.Write(file)
}
