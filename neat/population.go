package neat

import (
	"fmt"
	"math"

	"github.com/baldhumanity/neat-ctrnn/ctrnn"
)

// Scenario is the fitness-evaluation contract a caller implements. IO
// reports the sensory/action layout the population is built around; Eval
// is called exactly once per genome per generation.
type Scenario interface {
	IO() (sensory, action int)
	Eval(g *Genome, sigma ctrnn.ActivationFunc) float64
}

// HookResult tells the driver whether to keep evolving.
type HookResult int

const (
	Continue HookResult = iota
	Break
)

// Hook observes each generation's Stats and may adjust the driver's
// probability table before deciding whether evolution should continue.
type Hook func(*Stats) HookResult

// Stats is handed to each Hook after one generation's fitness evaluation.
type Stats struct {
	Generation int
	population []Member
	rng        *Probabilities
}

// Population iterates the (genome, fitness) pairs evaluated this
// generation.
func (s *Stats) Population() []Member { return s.population }

// Fittest returns the highest-fitness member of the generation.
func (s *Stats) Fittest() (*Genome, float64, bool) {
	if len(s.population) == 0 {
		return nil, 0, false
	}
	best := s.population[0]
	for _, m := range s.population[1:] {
		if m.Fitness > best.Fitness {
			best = m
		}
	}
	return best.Genome, best.Fitness, true
}

// AnyFitterThan reports whether any genome this generation exceeded
// threshold.
func (s *Stats) AnyFitterThan(threshold float64) bool {
	for _, m := range s.population {
		if m.Fitness > threshold {
			return true
		}
	}
	return false
}

// Rng exposes the driver's probability table so a hook may call Update.
func (s *Stats) Rng() *Probabilities { return s.rng }

// Population is the evolution driver: it owns the current generation of
// genomes and advances them one generation at a time against a Scenario.
type Population struct {
	Config   *Config
	Scenario Scenario
	Sigma    ctrnn.ActivationFunc
	Hooks    []Hook
	Rng      *Probabilities

	Generation int
	Genomes    []*Genome
	innoHead   uint64
}

// NewPopulation builds an initial population sized and shaped per cfg,
// wired to scenario and sigma, with hooks dispatched after every
// generation's evaluation.
func NewPopulation(cfg *Config, scenario Scenario, sigma ctrnn.ActivationFunc, hooks ...Hook) (*Population, error) {
	sensory, action := scenario.IO()
	if sensory != cfg.Neat.Sensory || action != cfg.Neat.Action {
		return nil, fmt.Errorf("neat: scenario io (%d,%d) does not match configured (%d,%d)",
			sensory, action, cfg.Neat.Sensory, cfg.Neat.Action)
	}

	rng := NewProbabilitiesFromConfig(cfg)
	genomes, head := PopulationInit(sensory, action, cfg.Neat.PopulationSize, rng)

	return &Population{
		Config:   cfg,
		Scenario: scenario,
		Sigma:    sigma,
		Hooks:    hooks,
		Rng:      rng,
		Genomes:  genomes,
		innoHead: head,
	}, nil
}

// RunGeneration evaluates the current genomes, dispatches hooks, and
// (unless a hook breaks) produces the next generation in place. It
// returns the Stats observed this generation and whether evolution should
// stop.
func (p *Population) RunGeneration() (*Stats, bool, error) {
	population := make([]Member, len(p.Genomes))
	for i, g := range p.Genomes {
		fitness := p.Scenario.Eval(g, p.Sigma)
		if math.IsNaN(fitness) {
			return nil, true, fmt.Errorf("neat: genome produced NaN fitness at generation %d", p.Generation)
		}
		population[i] = Member{Genome: g, Fitness: fitness}
	}

	stats := &Stats{Generation: p.Generation, population: population, rng: p.Rng}

	for _, hook := range p.Hooks {
		if hook(stats) == Break {
			return stats, true, nil
		}
	}

	species := Speciate(population)
	for _, sp := range species {
		sp.ShrinkTopP(p.Config.Neat.TopP)
	}

	var maxInno uint64
	for _, m := range population {
		for _, c := range m.Genome.Connections {
			if c.Innovation > maxInno {
				maxInno = c.Innovation
			}
		}
	}
	nextHead := maxInno + 1
	if nextHead < p.innoHead {
		nextHead = p.innoHead
	}

	next, head, err := PopulationReproduce(species, p.Config.Neat.PopulationSize, p.Config.Neat.TopP, nextHead, p.Rng)
	if err != nil {
		return stats, true, fmt.Errorf("neat: reproduce at generation %d: %w", p.Generation, err)
	}

	p.Genomes = next
	p.innoHead = head
	p.Generation++

	if p.Config.Neat.GenerationCap > 0 && p.Generation >= p.Config.Neat.GenerationCap {
		return stats, true, nil
	}
	return stats, false, nil
}

// Run drives RunGeneration until a hook breaks, the generation cap is
// reached, or an error occurs, returning the final Stats observed.
func (p *Population) Run() (*Stats, error) {
	var last *Stats
	for {
		stats, done, err := p.RunGeneration()
		if err != nil {
			return last, err
		}
		last = stats
		if done {
			return last, nil
		}
	}
}
