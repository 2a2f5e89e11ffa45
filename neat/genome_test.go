package neat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenome_InnovationHeadAndNodeCount(t *testing.T) {
	cases := []struct {
		sensory, action int
		wantHead         uint64
		wantNodes        int
	}{
		{3, 2, 8, 6},
		{0, 0, 0, 1},
		{3, 0, 0, 4},
		{0, 3, 3, 4},
	}
	for _, c := range cases {
		g, head := NewGenome(c.sensory, c.action)
		assert.Equal(t, c.wantHead, head)
		assert.Len(t, g.Nodes, c.wantNodes)
	}
}

func TestGenome_MutateBisection_S4(t *testing.T) {
	g := &Genome{
		Sensory: 1,
		Action:  1,
		Nodes: []Node{
			NewNode(Sensory),
			NewNode(Action),
		},
		Connections: []Connection{
			{Innovation: 0, From: 0, To: 1, Weight: 0.5, Enabled: true},
		},
	}
	registry := NewInnovationRegistry(1)
	rng := NewProbabilities(1)

	g.MutateBisection(rng, registry)

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, Internal, g.Nodes[2].Kind)

	require.Len(t, g.Connections, 3)
	assert.Equal(t, Connection{Innovation: 0, From: 0, To: 1, Weight: 0.5, Enabled: false}, g.Connections[0])
	assert.Equal(t, Connection{Innovation: 1, From: 0, To: 2, Weight: 1.0, Enabled: true}, g.Connections[1])
	assert.Equal(t, Connection{Innovation: 2, From: 2, To: 1, Weight: 0.5, Enabled: true}, g.Connections[2])
}

func TestGenome_MutateConnection_SaturationPanics(t *testing.T) {
	g := &Genome{
		Sensory: 1,
		Action:  0,
		Nodes:   []Node{NewNode(Sensory)},
		Connections: []Connection{
			{Innovation: 0, From: 0, To: 0, Weight: 1, Enabled: true},
		},
	}
	registry := NewInnovationRegistry(1)
	rng := NewProbabilities(1)

	assert.Panics(t, func() { g.MutateConnection(rng, registry) })
}

func TestGenome_Mutate_RecoversSaturation(t *testing.T) {
	g := &Genome{
		Sensory: 1,
		Action:  0,
		Nodes:   []Node{NewNode(Sensory)},
		Connections: []Connection{
			{Innovation: 0, From: 0, To: 0, Weight: 1, Enabled: true},
		},
	}
	registry := NewInnovationRegistry(1)
	rng := NewProbabilities(1)
	rng.Update(MutateConnection, 1.0)
	rng.Update(MutateWeight, 0)
	rng.Update(MutateBisection, 0)

	assert.NotPanics(t, func() { g.Mutate(rng, registry) })
}

func TestGenome_ReproduceWith_RebuildsNodes(t *testing.T) {
	parent1, _ := NewGenome(2, 1)
	parent1.Connections = []Connection{
		{Innovation: 0, From: 0, To: 2, Weight: 1, Enabled: true},
		{Innovation: 1, From: 1, To: 2, Weight: 1, Enabled: true},
	}
	parent2, _ := NewGenome(2, 1)
	parent2.Connections = []Connection{
		{Innovation: 0, From: 0, To: 2, Weight: -1, Enabled: true},
	}

	rng := NewProbabilities(3)
	child := parent1.ReproduceWith(parent2, Greater, rng)

	assert.Equal(t, 2, child.Sensory)
	assert.Equal(t, 1, child.Action)
	for i := 0; i < len(child.Connections); i++ {
		assert.True(t, child.Connections[i].From < len(child.Nodes))
		assert.True(t, child.Connections[i].To < len(child.Nodes))
	}
}
