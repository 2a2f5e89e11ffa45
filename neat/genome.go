package neat

import (
	"encoding/json"
	"fmt"

	"github.com/baldhumanity/neat-ctrnn/ctrnn"
)

// Genome owns a CTRNN topology: a fixed sensory/action layout, a Static
// bias node, and a set of innovation-tagged connections that may grow
// Internal nodes over time via bisection.
//
// Invariants: Nodes[0:Sensory] are Sensory, Nodes[Sensory:Sensory+Action]
// are Action, one Static bias node follows immediately, and any further
// nodes are Internal, appended in the order they were created. Connections
// are kept sorted by Innovation ascending with no duplicate Innovation
// values.
type Genome struct {
	Sensory     int          `json:"sensory"`
	Action      int          `json:"action"`
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
}

// NewGenome builds an unconnected genome with the given sensory/action
// counts and a trailing Static bias node. It returns the genome alongside
// the innovation head a fresh InnovationRegistry should start from: the
// size of the implied fully-connected (sensory+bias)->action wiring, so
// that IDs handed out for the genome's first real mutations never collide
// with what a fully-connected sibling genome would have reserved.
func NewGenome(sensory, action int) (*Genome, uint64) {
	nodes := make([]Node, 0, sensory+action+1)
	for i := 0; i < sensory; i++ {
		nodes = append(nodes, NewNode(Sensory))
	}
	for i := 0; i < action; i++ {
		nodes = append(nodes, NewNode(Action))
	}
	nodes = append(nodes, NewBiasNode(1.0))

	head := uint64(sensory+1) * uint64(action)
	return &Genome{Sensory: sensory, Action: action, Nodes: nodes}, head
}

// biasNodeIndex is the fixed position of the Static bias node.
func (g *Genome) biasNodeIndex() int { return g.Sensory + g.Action }

// Clone deep-copies the genome's nodes and connections.
func (g *Genome) Clone() *Genome {
	nodes := make([]Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	conns := make([]Connection, len(g.Connections))
	copy(conns, g.Connections)
	return &Genome{Sensory: g.Sensory, Action: g.Action, Nodes: nodes, Connections: conns}
}

// OpenPath picks a uniformly random (from,to) node-index pair that is not
// already connected in this genome. Self-loops are permitted. It returns
// ok=false only when every pair is already connected (the genome is fully
// saturated).
func (g *Genome) OpenPath(rng *Probabilities) (from, to int, ok bool) {
	n := len(g.Nodes)
	if n == 0 {
		return 0, 0, false
	}
	connected := make(map[edgeKey]bool, len(g.Connections))
	for _, c := range g.Connections {
		connected[edgeKey{From: c.From, To: c.To}] = true
	}

	saturated := make(map[int]bool, n)
	remaining := n
	for remaining > 0 {
		pick := rng.Rand().Intn(n)
		for saturated[pick] {
			pick = rng.Rand().Intn(n)
		}
		candidates := make([]int, 0, n)
		for to := 0; to < n; to++ {
			if !connected[edgeKey{From: pick, To: to}] {
				candidates = append(candidates, to)
			}
		}
		if len(candidates) == 0 {
			saturated[pick] = true
			remaining--
			continue
		}
		chosen := candidates[rng.Rand().Intn(len(candidates))]
		return pick, chosen, true
	}
	return 0, 0, false
}

// MutateParams applies the weight-perturbation rule to every connection:
// one in ten connections is reset to a fresh standard-normal sample, the
// rest are nudged by MutateWeightFactor*N(0,1). It also invokes the
// per-node mutation hook on every node (a no-op for this node flavor).
func (g *Genome) MutateParams(rng *Probabilities) {
	for i := range g.Connections {
		if rng.Rand().Intn(10) == 0 {
			g.Connections[i].Weight = rng.Rand().NormFloat64()
		} else {
			g.Connections[i].Weight += MutateWeightFactor * rng.Rand().NormFloat64()
		}
	}
	for i := range g.Nodes {
		g.Nodes[i].MutateParam(rng)
	}
}

// MutateConnection appends one new connection along a freshly chosen open
// path, registering its innovation ID with registry. It panics if the
// genome is fully saturated; callers that want this treated as a
// recoverable per-genome failure should call it through Mutate.
func (g *Genome) MutateConnection(rng *Probabilities, registry *InnovationRegistry) {
	from, to, ok := g.OpenPath(rng)
	if !ok {
		panic("neat: connections on genome are fully saturated")
	}
	g.Connections = append(g.Connections, Connection{
		Innovation: registry.Path(from, to),
		From:       from,
		To:         to,
		Weight:     1.0,
		Enabled:    true,
	})
}

// MutateBisection disables a uniformly random existing connection and
// replaces it with a new Internal node wired in series: the lower half
// carries weight 1.0, the upper half carries the original weight. It
// panics if the genome has no connections to bisect.
func (g *Genome) MutateBisection(rng *Probabilities, registry *InnovationRegistry) {
	if len(g.Connections) == 0 {
		panic("neat: no connections available to bisect")
	}
	idx := rng.Rand().Intn(len(g.Connections))
	picked := g.Connections[idx]
	g.Connections[idx].Disable()

	newIdx := len(g.Nodes)
	g.Nodes = append(g.Nodes, NewNode(Internal))

	lower := Connection{
		Innovation: registry.Path(picked.From, newIdx),
		From:       picked.From,
		To:         newIdx,
		Weight:     1.0,
		Enabled:    true,
	}
	upper := Connection{
		Innovation: registry.Path(newIdx, picked.To),
		From:       newIdx,
		To:         picked.To,
		Weight:     picked.Weight,
		Enabled:    true,
	}
	g.Connections = append(g.Connections, lower, upper)
}

// Mutate composes the three independent structural/parametric rolls:
// MutateParams gated by the MutateWeight event, MutateConnection gated by
// the MutateConnection event, and MutateBisection (only when connections
// exist) gated by the MutateBisection event. A saturation or empty-genome
// panic from the structural mutations is recovered and treated as "skip
// this roll" — it is not a generation-aborting error.
func (g *Genome) Mutate(rng *Probabilities, registry *InnovationRegistry) {
	if rng.Happens(MutateWeight) {
		g.MutateParams(rng)
	}
	if rng.Happens(MutateConnection) {
		g.tryMutateConnection(rng, registry)
	}
	if len(g.Connections) > 0 && rng.Happens(MutateBisection) {
		g.tryMutateBisection(rng, registry)
	}
}

func (g *Genome) tryMutateConnection(rng *Probabilities, registry *InnovationRegistry) {
	defer func() { recover() }()
	g.MutateConnection(rng, registry)
}

func (g *Genome) tryMutateBisection(rng *Probabilities, registry *InnovationRegistry) {
	defer func() { recover() }()
	g.MutateBisection(rng, registry)
}

// FitnessOrder describes how a genome's fitness compares to another's, as
// seen from the receiver's side of ReproduceWith.
type FitnessOrder int

const (
	Less FitnessOrder = iota
	Equal
	Greater
)

// ReproduceWith crosses g (treated as "self") with other under the given
// fitness ordering (g relative to other) and returns a freshly built
// child genome. The child's node list is rebuilt from scratch: Sensory,
// Action, the Static bias node, then as many Internal nodes as the
// child's highest-referenced node index demands.
func (g *Genome) ReproduceWith(other *Genome, order FitnessOrder, rng *Probabilities) *Genome {
	connections := CrossoverConnections(g.Connections, other.Connections, order, rng)

	maxIdx := g.biasNodeIndex()
	for _, c := range connections {
		if c.From > maxIdx {
			maxIdx = c.From
		}
		if c.To > maxIdx {
			maxIdx = c.To
		}
	}

	nodes := make([]Node, 0, maxIdx+1)
	for i := 0; i < g.Sensory; i++ {
		nodes = append(nodes, NewNode(Sensory))
	}
	for i := 0; i < g.Action; i++ {
		nodes = append(nodes, NewNode(Action))
	}
	nodes = append(nodes, NewBiasNode(1.0))
	for i := g.biasNodeIndex() + 1; i <= maxIdx; i++ {
		nodes = append(nodes, NewNode(Internal))
	}

	return &Genome{Sensory: g.Sensory, Action: g.Action, Nodes: nodes, Connections: connections}
}

// Compile projects the genome into a dense CTRNN network form, ready for
// an external integrator to step.
func (g *Genome) Compile() *ctrnn.Network {
	n := len(g.Nodes)
	bias := make([]float64, n)
	for i, node := range g.Nodes {
		if node.Kind == Static {
			bias[i] = node.Bias
		}
	}
	edges := make([]ctrnn.Edge, 0, len(g.Connections))
	for _, c := range g.Connections {
		if !c.Enabled {
			continue
		}
		edges = append(edges, ctrnn.Edge{From: c.From, To: c.To, Weight: c.Weight})
	}
	return ctrnn.New(n, g.Sensory, g.Action, bias, edges)
}

// ToJSON serializes the genome using the stable field names documented
// for persistence.
func (g *Genome) ToJSON() ([]byte, error) {
	return json.Marshal(g)
}

// GenomeFromJSON deserializes a genome previously written by ToJSON.
func GenomeFromJSON(data []byte) (*Genome, error) {
	var g Genome
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("neat: decode genome: %w", err)
	}
	return &g, nil
}
