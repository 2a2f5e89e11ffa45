package neat

import (
	"fmt"
	"math"
	"sort"
)

// PopulationAlloc splits a global population budget across species,
// weighted by each species' FitAdjusted, scaled by topP to compensate
// for species already having been shrunk to their top share. Species are
// visited fittest-first; the first species that would push the running
// total to or past population instead absorbs exactly the remainder, and
// every species after it receives 0. The result never sums past
// population.
func PopulationAlloc(species []*Species, population int, topP float64) map[*Species]int {
	alloc := make(map[*Species]int, len(species))
	if len(species) == 0 || population <= 0 {
		return alloc
	}

	ordered := make([]*Species, len(species))
	copy(ordered, species)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].FitAdjusted() > ordered[j].FitAdjusted()
	})

	var total float64
	for _, sp := range ordered {
		total += sp.FitAdjusted()
	}
	if total <= 0 {
		return alloc
	}

	scaled := float64(population) / topP
	sizeAcc := 0
	for _, sp := range ordered {
		spPop := int(math.Round(scaled * sp.FitAdjusted() / total))
		if sizeAcc+spPop < population {
			alloc[sp] = spPop
			sizeAcc += spPop
		} else {
			alloc[sp] = population - sizeAcc
			break
		}
	}
	return alloc
}

// uniq2 picks two independent, always-distinct indices into a pool of
// length n. When the two draws collide, the second is shifted by +1
// modulo n. The distribution is not uniform but the cost is O(1) and the
// pair is always distinct. n must be >= 2.
func uniq2(n int, rng *Probabilities) (int, int) {
	l := rng.Rand().Intn(n)
	r := rng.Rand().Intn(n)
	if l == r {
		r = (r + 1) % n
	}
	return l, r
}

// reproduceCopy fills size offspring slots by cloning a uniformly sampled
// member and mutating the clone.
func reproduceCopy(members []Member, size int, registry *InnovationRegistry, rng *Probabilities) ([]*Genome, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("neat: too few members to copy")
	}
	out := make([]*Genome, 0, size)
	for i := 0; i < size; i++ {
		src := members[rng.Rand().Intn(len(members))].Genome
		child := src.Clone()
		child.Mutate(rng, registry)
		out = append(out, child)
	}
	return out, nil
}

// reproduceCrossover fills size offspring slots by crossing two distinct,
// uniformly sampled members and mutating the child.
func reproduceCrossover(members []Member, size int, registry *InnovationRegistry, rng *Probabilities) ([]*Genome, error) {
	if len(members) < 2 {
		return nil, fmt.Errorf("neat: too few members to crossover")
	}
	out := make([]*Genome, 0, size)
	for i := 0; i < size; i++ {
		l, r := uniq2(len(members), rng)
		left, right := members[l], members[r]
		order := Equal
		switch {
		case left.Fitness < right.Fitness:
			order = Less
		case left.Fitness > right.Fitness:
			order = Greater
		}
		child := left.Genome.ReproduceWith(right.Genome, order, rng)
		child.Mutate(rng, registry)
		out = append(out, child)
	}
	return out, nil
}

// Reproduce synthesizes size offspring for one species: one verbatim
// elite (the single fittest member), a copy-reproduced share, and a
// crossover-reproduced share of the remainder. When the remainder would
// put fewer than one offspring in the copy share, or the species has only
// one member, the whole remainder reproduces by copying instead.
func Reproduce(sp *Species, size int, registry *InnovationRegistry, rng *Probabilities) ([]*Genome, error) {
	if size == 0 {
		return nil, nil
	}
	if len(sp.Members) == 0 {
		return nil, fmt.Errorf("neat: too few members to reproduce")
	}

	out := make([]*Genome, 0, size)
	out = append(out, sp.Members[0].Genome.Clone())
	if size == 1 {
		return out, nil
	}

	remaining := size - 1
	sizeCopy := remaining / 4
	if sizeCopy == 0 || len(sp.Members) == 1 {
		sizeCopy = remaining
	}
	sizeCrossover := remaining - sizeCopy

	copies, err := reproduceCopy(sp.Members, sizeCopy, registry, rng)
	if err != nil {
		return nil, err
	}
	out = append(out, copies...)

	if sizeCrossover > 0 {
		crossed, err := reproduceCrossover(sp.Members, sizeCrossover, registry, rng)
		if err != nil {
			return nil, err
		}
		out = append(out, crossed...)
	}
	return out, nil
}

// PopulationInit builds population freshly mutated genomes for a scenario
// with the given sensory/action layout, each given exactly one connection
// by an unconditional MutateConnection call (all sharing one innovation
// registry), and returns them alongside the innovation head
// the generation's registry has now advanced to.
func PopulationInit(sensory, action, population int, rng *Probabilities) ([]*Genome, uint64) {
	out := make([]*Genome, 0, population)
	registry := NewInnovationRegistry(0)
	for i := 0; i < population; i++ {
		g, _ := NewGenome(sensory, action)
		g.MutateConnection(rng, registry)
		out = append(out, g)
	}
	return out, registry.Head()
}

// PopulationReproduce allocates population across species and reproduces
// each, returning the next generation's genomes and the innovation head
// the fresh registry advanced to.
func PopulationReproduce(species []*Species, population int, topP float64, innoHead uint64, rng *Probabilities) ([]*Genome, uint64, error) {
	alloc := PopulationAlloc(species, population, topP)
	registry := NewInnovationRegistry(innoHead)

	var out []*Genome
	for _, sp := range species {
		size := alloc[sp]
		children, err := Reproduce(sp, size, registry, rng)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, children...)
	}
	return out, registry.Head(), nil
}
