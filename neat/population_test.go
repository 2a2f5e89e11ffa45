package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/neat-ctrnn/ctrnn"
)

// constScenario scores every genome by the summed action output after one
// network step plus its number of connections, just enough structure to
// exercise a full generation loop.
type constScenario struct{ sensory, action int }

func (s constScenario) IO() (int, int) { return s.sensory, s.action }

func (s constScenario) Eval(g *Genome, sigma ctrnn.ActivationFunc) float64 {
	network := g.Compile()
	network.Step(1, make([]float64, s.sensory), sigma)
	out := network.Output()
	var total float64
	for _, v := range out {
		total += v
	}
	return total + float64(len(g.Connections))
}

func testConfig() *Config {
	cfg := defaultConfig()
	cfg.Neat.PopulationSize = 20
	cfg.Neat.Sensory = 2
	cfg.Neat.Action = 1
	cfg.Neat.GenerationCap = 3
	cfg.Neat.TopP = 0.5
	return cfg
}

func TestNewPopulation_RejectsMismatchedIO(t *testing.T) {
	cfg := testConfig()
	_, err := NewPopulation(cfg, constScenario{sensory: 3, action: 1}, ctrnn.Identity)
	assert.Error(t, err)
}

func TestPopulation_RunGenerationAdvances(t *testing.T) {
	cfg := testConfig()
	pop, err := NewPopulation(cfg, constScenario{sensory: 2, action: 1}, ctrnn.Identity)
	require.NoError(t, err)

	stats, done, err := pop.RunGeneration()
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 0, stats.Generation)
	assert.Equal(t, 1, pop.Generation)
	assert.Len(t, pop.Genomes, cfg.Neat.PopulationSize)
	assert.False(t, done)
}

func TestPopulation_RunStopsAtGenerationCap(t *testing.T) {
	cfg := testConfig()
	pop, err := NewPopulation(cfg, constScenario{sensory: 2, action: 1}, ctrnn.Identity)
	require.NoError(t, err)

	stats, err := pop.Run()
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, cfg.Neat.GenerationCap, pop.Generation)
}

func TestPopulation_HookCanBreakEarly(t *testing.T) {
	cfg := testConfig()
	breakAt := 1
	hook := func(s *Stats) HookResult {
		if s.Generation >= breakAt {
			return Break
		}
		return Continue
	}
	pop, err := NewPopulation(cfg, constScenario{sensory: 2, action: 1}, ctrnn.Identity, hook)
	require.NoError(t, err)

	_, err = pop.Run()
	require.NoError(t, err)
	assert.Equal(t, breakAt, pop.Generation)
}
