package neat

import "math/rand"

// Event names a stochastic decision point in the evolutionary kernel.
// A Probabilities table carries one float64-in-[0,1] probability per
// Event and is threaded explicitly through every call that needs it —
// there is no global or thread-local RNG anywhere in this package.
type Event int

const (
	// MutateWeight gates Genome.MutateParams within Genome.Mutate.
	MutateWeight Event = iota
	// MutateConnection gates Genome.MutateConnection within Genome.Mutate.
	MutateConnection
	// MutateBisection gates Genome.MutateBisection within Genome.Mutate.
	MutateBisection
	// PickLEQ is the fair coin used by the crossover kernel to choose
	// which parent's connection wins at a matched innovation ID.
	PickLEQ
	// KeepDisabled is rolled once per matched gene that is disabled on
	// either parent; on success the child's gene stays disabled.
	KeepDisabled
	// NewDisabled is rolled once per newly produced child gene; on
	// success the gene is disabled regardless of its parents.
	NewDisabled
)

// DefaultProbabilities mirrors the teacher's INI-configured defaults,
// generalized to this package's event set.
func DefaultProbabilities() map[Event]float64 {
	return map[Event]float64{
		MutateWeight:      0.8,
		MutateConnection:  0.05,
		MutateBisection:   0.03,
		PickLEQ:           0.5,
		KeepDisabled:      0.75,
		NewDisabled:       0.01,
	}
}

// Probabilities pairs a seeded RNG with the named-event probability table.
type Probabilities struct {
	rng *rand.Rand
	p   map[Event]float64
}

// NewProbabilities builds a probability table seeded deterministically,
// starting from DefaultProbabilities.
func NewProbabilities(seed int64) *Probabilities {
	return &Probabilities{
		rng: rand.New(rand.NewSource(seed)),
		p:   DefaultProbabilities(),
	}
}

// Happens rolls the named event against its configured probability.
func (p *Probabilities) Happens(e Event) bool {
	return p.rng.Float64() < p.p[e]
}

// Update sets the probability for the named event, used by hooks that
// adjust mutation rates mid-run.
func (p *Probabilities) Update(e Event, value float64) {
	p.p[e] = value
}

// Probability returns the current probability configured for an event.
func (p *Probabilities) Probability(e Event) float64 {
	return p.p[e]
}

// Rand exposes the underlying RNG for callers (weight resampling,
// uniform draws) that need more than a yes/no event roll.
func (p *Probabilities) Rand() *rand.Rand {
	return p.rng
}
