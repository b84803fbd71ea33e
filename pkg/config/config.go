// Package config loads the sweep definition and analysis settings using Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/raykavin/sweepkit/pkg/analysis"
	"github.com/raykavin/sweepkit/pkg/sweep"
	"github.com/spf13/viper"
)

// Constants for configuration
const (
	EnvPrefix         = "SWEEPKIT"
	DefaultConfigPath = "./sweepkit.yaml"
)

// Config holds everything a generate or analyze run reads.
type Config struct {
	MaxCases int      `mapstructure:"max_cases"`
	Output   Output   `mapstructure:"output"`
	Sweep    Sweep    `mapstructure:"sweep"`
	Analysis Analysis `mapstructure:"analysis"`
}

// Output names the generated files.
type Output struct {
	Grid   string `mapstructure:"grid" yaml:"grid"`
	Sample string `mapstructure:"sample" yaml:"sample"`
}

// Sweep is the grid definition. Base fields and domains given in the file
// replace the defaults by name; best configs replace the whole table.
type Sweep struct {
	Base        sweep.BaseConfig       `mapstructure:"base"`
	Domains     sweep.Domains          `mapstructure:"domains"`
	BestConfigs []sweep.Triple         `mapstructure:"best_configs"`
	Core        sweep.CorePhase        `mapstructure:"core"`
	EntryOffset sweep.EntryOffsetPhase `mapstructure:"entry_offset"`
	HTFRisk     sweep.HTFRiskPhase     `mapstructure:"htf_risk"`
}

// Analysis holds the results analysis settings.
type Analysis struct {
	Families         []analysis.Family `mapstructure:"families" yaml:"families"`
	TopN             int               `mapstructure:"top_n" yaml:"top_n"`
	MinTrades        int               `mapstructure:"min_trades" yaml:"min_trades"`
	BootstrapSamples int               `mapstructure:"bootstrap_samples" yaml:"bootstrap_samples"`
	Confidence       float64           `mapstructure:"confidence" yaml:"confidence"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	plan := sweep.DefaultPlan()
	options := analysis.DefaultOptions()

	return &Config{
		MaxCases: plan.MaxCases,
		Output: Output{
			Grid:   sweep.DefaultGridFile,
			Sample: sweep.DefaultSampleFile,
		},
		Sweep: Sweep{
			Base:        plan.Base,
			Domains:     plan.Domains,
			BestConfigs: plan.BestConfigs,
			Core:        plan.Core,
			EntryOffset: plan.EntryOffset,
			HTFRisk:     plan.HTFRisk,
		},
		Analysis: Analysis{
			Families:         analysis.DefaultFamilies(),
			TopN:             options.TopN,
			MinTrades:        options.MinTrades,
			BootstrapSamples: options.BootstrapSamples,
			Confidence:       options.Confidence,
		},
	}
}

// Load reads the YAML file at path, when given, over the defaults.
// SWEEPKIT_* environment variables override scalar keys, for example
// SWEEPKIT_MAX_CASES or SWEEPKIT_OUTPUT_GRID.
func Load(path string) (*Config, error) {
	defaults := Default()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_cases", defaults.MaxCases)
	v.SetDefault("output.grid", defaults.Output.Grid)
	v.SetDefault("output.sample", defaults.Output.Sample)
	v.SetDefault("analysis.top_n", defaults.Analysis.TopN)
	v.SetDefault("analysis.min_trades", defaults.Analysis.MinTrades)
	v.SetDefault("analysis.bootstrap_samples", defaults.Analysis.BootstrapSamples)
	v.SetDefault("analysis.confidence", defaults.Analysis.Confidence)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// Slices decode into nil targets and are merged afterwards; phase
	// blocks decode over their defaults so partial blocks keep the rest.
	config := &Config{
		Sweep: Sweep{
			Core:        defaults.Sweep.Core,
			EntryOffset: defaults.Sweep.EntryOffset,
			HTFRisk:     defaults.Sweep.HTFRisk,
		},
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	config.Sweep.Base = defaults.Sweep.Base.Merge(config.Sweep.Base)
	config.Sweep.Domains = defaults.Sweep.Domains.Merge(config.Sweep.Domains)
	if config.Sweep.BestConfigs == nil {
		config.Sweep.BestConfigs = defaults.Sweep.BestConfigs
	}
	if config.Analysis.Families == nil {
		config.Analysis.Families = defaults.Analysis.Families
	}

	return config, nil
}

// Plan returns the grid plan described by the configuration.
func (c *Config) Plan() sweep.Plan {
	return sweep.Plan{
		MaxCases:    c.MaxCases,
		Base:        c.Sweep.Base,
		Domains:     c.Sweep.Domains,
		BestConfigs: c.Sweep.BestConfigs,
		Core:        c.Sweep.Core,
		EntryOffset: c.Sweep.EntryOffset,
		HTFRisk:     c.Sweep.HTFRisk,
	}
}

// AnalysisOptions returns the analysis settings as run options.
func (c *Config) AnalysisOptions() analysis.Options {
	options := analysis.DefaultOptions()
	options.TopN = c.Analysis.TopN
	options.MinTrades = c.Analysis.MinTrades
	options.BootstrapSamples = c.Analysis.BootstrapSamples
	options.Confidence = c.Analysis.Confidence
	return options
}
