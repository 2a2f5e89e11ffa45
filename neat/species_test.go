package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genomeWithConns(innos ...uint64) *Genome {
	g, _ := NewGenome(1, 1)
	g.Connections = conns(innos...)
	return g
}

func TestSpeciate_FirstMatchWins(t *testing.T) {
	population := []Member{
		{Genome: genomeWithConns(1, 2, 3), Fitness: 1},
		{Genome: genomeWithConns(1, 2, 3), Fitness: 2}, // identical topology: same species
		{Genome: genomeWithConns(10, 20, 30, 40, 50), Fitness: 3}, // far: new species
	}

	species := Speciate(population)
	require.Len(t, species, 2)
	assert.Len(t, species[0].Members, 2)
	assert.Len(t, species[1].Members, 1)
}

func TestSpeciate_MembersSortedByFitnessDescending(t *testing.T) {
	population := []Member{
		{Genome: genomeWithConns(1, 2), Fitness: 1},
		{Genome: genomeWithConns(1, 2), Fitness: 5},
		{Genome: genomeWithConns(1, 2), Fitness: 3},
	}
	species := Speciate(population)
	require.Len(t, species, 1)
	fitnesses := make([]float64, len(species[0].Members))
	for i, m := range species[0].Members {
		fitnesses[i] = m.Fitness
	}
	assert.Equal(t, []float64{5, 3, 1}, fitnesses)
}

func TestShrinkTopP_RetainsFittestPrefix(t *testing.T) {
	sp := &Species{Members: []Member{
		{Fitness: 5}, {Fitness: 3}, {Fitness: 1},
	}}
	sp.ShrinkTopP(1.0 / 3.0)
	require.Len(t, sp.Members, 1)
	assert.Equal(t, 5.0, sp.Members[0].Fitness)
}

func TestShrinkTopP_RejectsOutOfRange(t *testing.T) {
	sp := &Species{Members: []Member{{Fitness: 1}}}
	assert.Panics(t, func() { sp.ShrinkTopP(0) })
	assert.Panics(t, func() { sp.ShrinkTopP(1.1) })
	assert.NotPanics(t, func() { sp.ShrinkTopP(1) })
}

func TestFitAdjusted_IsMean(t *testing.T) {
	sp := &Species{Members: []Member{{Fitness: 2}, {Fitness: 4}, {Fitness: 6}}}
	assert.Equal(t, 4.0, sp.FitAdjusted())
}
