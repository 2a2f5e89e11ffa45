package neat

import "sort"

// SpecieThreshold is the compatibility distance below which a genome is
// considered a member of a species.
const SpecieThreshold = 4.0

// Member pairs a genome with the fitness it earned this generation.
type Member struct {
	Genome  *Genome
	Fitness float64
}

// Species groups genomes assigned the same compatibility bucket during one
// generation. Representative is copied from the first genome assigned to
// the species, decoupling its lifetime from the owning genome.
type Species struct {
	Representative []Connection
	Members        []Member
}

// FitAdjusted is the mean fitness across the species' members. Despite
// the traditional "adjusted" name this is a simple average, used purely
// as the weight for population allocation (see PopulationAlloc).
func (s *Species) FitAdjusted() float64 {
	if len(s.Members) == 0 {
		return 0
	}
	var total float64
	for _, m := range s.Members {
		total += m.Fitness
	}
	return total / float64(len(s.Members))
}

// ShrinkTopP retains the top round(p*len(Members)) members by fitness,
// which after sorting descending are the species' fittest. p must be in
// (0,1]; anything else is a programmer error.
func (s *Species) ShrinkTopP(p float64) {
	if p <= 0 || p > 1 {
		panic("neat: shrink_top_p: p must be in range (0,1]")
	}
	keep := int(p*float64(len(s.Members)) + 0.5)
	if keep > len(s.Members) {
		keep = len(s.Members)
	}
	s.Members = s.Members[:keep]
}

// Speciate partitions a population into species by first-match-wins
// assignment: each genome joins the first existing species whose
// representative is within SpecieThreshold of it; otherwise it founds a
// new species. Each species' members are sorted by fitness descending
// once every genome has been assigned.
func Speciate(population []Member) []*Species {
	var species []*Species
	for _, member := range population {
		placed := false
		for _, sp := range species {
			if Delta(sp.Representative, member.Genome.Connections) < SpecieThreshold {
				sp.Members = append(sp.Members, member)
				placed = true
				break
			}
		}
		if !placed {
			repr := make([]Connection, len(member.Genome.Connections))
			copy(repr, member.Genome.Connections)
			species = append(species, &Species{
				Representative: repr,
				Members:        []Member{member},
			})
		}
	}
	for _, sp := range species {
		sort.Slice(sp.Members, func(i, j int) bool {
			return sp.Members[i].Fitness > sp.Members[j].Fitness
		})
	}
	return species
}
