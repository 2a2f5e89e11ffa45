package neat

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// NeatConfig holds the run-level knobs for one evolution: population
// shape, generation budget, and the speciation top-p share.
type NeatConfig struct {
	PopulationSize   int     `ini:"population_size"`
	Sensory          int     `ini:"sensory"`
	Action           int     `ini:"action"`
	GenerationCap    int     `ini:"generation_cap"`
	FitnessThreshold float64 `ini:"fitness_threshold"`
	TopP             float64 `ini:"top_p"`
	Seed             int64   `ini:"seed"`
}

// ProbabilitiesConfig mirrors the [Probabilities] section. Each knob is an
// integer percent-of-10000 (i.e. hundredths of a percent), matching the
// teacher's integer-knob INI convention; LoadConfig converts each to a
// float64 in [0,1] before handing it to a Probabilities table.
type ProbabilitiesConfig struct {
	MutateWeight     int `ini:"mutate_weight"`
	MutateConnection int `ini:"mutate_connection"`
	MutateBisection  int `ini:"mutate_bisection"`
	PickLEQ          int `ini:"pick_leq"`
	KeepDisabled     int `ini:"keep_disabled"`
	NewDisabled      int `ini:"new_disabled"`
}

// Config is the full set of run parameters loaded from an INI file.
type Config struct {
	Neat          NeatConfig
	Probabilities ProbabilitiesConfig
}

// defaultConfig mirrors DefaultProbabilities, expressed as the INI
// section's integer-percent-of-10000 units (so 0.8 -> 8000).
func defaultConfig() *Config {
	return &Config{
		Neat: NeatConfig{
			PopulationSize:   150,
			Sensory:          2,
			Action:           1,
			GenerationCap:    200,
			FitnessThreshold: 0.95,
			TopP:             0.2,
			Seed:             1,
		},
		Probabilities: ProbabilitiesConfig{
			MutateWeight:     8000,
			MutateConnection: 500,
			MutateBisection:  300,
			PickLEQ:          5000,
			KeepDisabled:     7500,
			NewDisabled:      100,
		},
	}
}

// LoadConfig reads an INI file shaped like:
//
//	[Neat]
//	population_size = 150
//	sensory = 2
//	action = 1
//	generation_cap = 200
//	fitness_threshold = 0.95
//	top_p = 0.2
//	seed = 1
//
//	[Probabilities]
//	mutate_weight = 8000
//	mutate_connection = 500
//	mutate_bisection = 300
//	pick_leq = 5000
//	keep_disabled = 7500
//	new_disabled = 100
//
// Any section or key that is absent keeps the corresponding default.
func LoadConfig(filePath string) (*Config, error) {
	cfg := defaultConfig()

	src, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("neat: load config %q: %w", filePath, err)
	}

	if sec, err := src.GetSection("Neat"); err == nil {
		if err := sec.MapTo(&cfg.Neat); err != nil {
			return nil, fmt.Errorf("neat: parse [Neat] section: %w", err)
		}
	}
	if sec, err := src.GetSection("Probabilities"); err == nil {
		if err := sec.MapTo(&cfg.Probabilities); err != nil {
			return nil, fmt.Errorf("neat: parse [Probabilities] section: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []string
	if c.Neat.PopulationSize <= 0 {
		errs = append(errs, "population_size must be positive")
	}
	if c.Neat.Sensory < 0 || c.Neat.Action <= 0 {
		errs = append(errs, "sensory must be non-negative and action must be positive")
	}
	if c.Neat.TopP <= 0 || c.Neat.TopP > 1 {
		errs = append(errs, "top_p must be in range (0,1]")
	}
	for name, v := range map[string]int{
		"mutate_weight":     c.Probabilities.MutateWeight,
		"mutate_connection": c.Probabilities.MutateConnection,
		"mutate_bisection":  c.Probabilities.MutateBisection,
		"pick_leq":          c.Probabilities.PickLEQ,
		"keep_disabled":     c.Probabilities.KeepDisabled,
		"new_disabled":      c.Probabilities.NewDisabled,
	} {
		if v < 0 || v > 10000 {
			errs = append(errs, fmt.Sprintf("%s must be in range [0,10000]", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("neat: invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// NewProbabilitiesFromConfig builds a Probabilities table seeded and
// parameterized from cfg.
func NewProbabilitiesFromConfig(cfg *Config) *Probabilities {
	p := NewProbabilities(cfg.Neat.Seed)
	p.Update(MutateWeight, float64(cfg.Probabilities.MutateWeight)/10000)
	p.Update(MutateConnection, float64(cfg.Probabilities.MutateConnection)/10000)
	p.Update(MutateBisection, float64(cfg.Probabilities.MutateBisection)/10000)
	p.Update(PickLEQ, float64(cfg.Probabilities.PickLEQ)/10000)
	p.Update(KeepDisabled, float64(cfg.Probabilities.KeepDisabled)/10000)
	p.Update(NewDisabled, float64(cfg.Probabilities.NewDisabled)/10000)
	return p
}
