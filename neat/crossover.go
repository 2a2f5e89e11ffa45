package neat

import "sort"

// DisjointExcessCount classifies the unmatched innovation IDs between two
// connection sequences sorted by Innovation ascending. "Disjoint" entries
// fall within the overlapping ID range of the two sequences; "excess"
// entries lie beyond the shorter sequence's maximum ID.
func DisjointExcessCount(l, r []Connection) (disjoint, excess int) {
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		switch {
		case l[i].Innovation == r[j].Innovation:
			i++
			j++
		case l[i].Innovation < r[j].Innovation:
			disjoint++
			i++
		default:
			disjoint++
			j++
		}
	}
	excess = (len(l) - i) + (len(r) - j)
	return disjoint, excess
}

// AvgParamDiff is the mean absolute weight difference over connections
// that share an innovation ID between l and r. It is 0 when there are no
// matches, including when either sequence is empty.
func AvgParamDiff(l, r []Connection) float64 {
	i, j := 0, 0
	var total float64
	var matches int
	for i < len(l) && j < len(r) {
		switch {
		case l[i].Innovation == r[j].Innovation:
			total += l[i].ParamDiff(r[j])
			matches++
			i++
			j++
		case l[i].Innovation < r[j].Innovation:
			i++
		default:
			j++
		}
	}
	if matches == 0 {
		return 0
	}
	return total / float64(matches)
}

// Delta computes the compatibility distance between two connection
// sequences per the coefficients declared on Connection.
func Delta(l, r []Connection) float64 {
	n := len(l)
	if len(r) > n {
		n = len(r)
	}
	norm := float64(n)
	if n < 20 {
		norm = 1
	}

	if len(l) == 0 || len(r) == 0 {
		return ExcessCoefficient * float64(n) / norm
	}

	disjoint, excess := DisjointExcessCount(l, r)
	structural := (DisjointCoefficient*float64(disjoint) + ExcessCoefficient*float64(excess)) / norm
	return structural + ParamCoefficient*AvgParamDiff(l, r)
}

// pickGene resolves a gene for the child, given a candidate connection and
// (if matched) the other parent's connection at the same innovation ID.
// If other is non-nil, the source is chosen by the PickLEQ event and the
// KeepDisabled disable-propagation rule applies when either side is
// disabled. Every gene pickGene produces, matched or not, independently
// rolls the NewDisabled event — every child gene is newly produced by
// crossover, so the roll is unconditional here rather than only on the
// disjoint/excess path.
func pickGene(l Connection, other *Connection, rng *Probabilities) Connection {
	var gene Connection
	disabledOnEitherSide := false
	if other == nil {
		gene = l.Copy()
	} else {
		if rng.Happens(PickLEQ) {
			gene = l.Copy()
		} else {
			gene = other.Copy()
		}
		disabledOnEitherSide = !l.Enabled || !other.Enabled
	}
	if disabledOnEitherSide && rng.Happens(KeepDisabled) {
		gene.Disable()
	}
	if rng.Happens(NewDisabled) {
		gene.Disable()
	}
	return gene
}

// crossoverEq produces a child whose gene set is the union of l's and r's
// innovation IDs: matched genes are resolved by pickGene with both
// parents' connections, unmatched genes are resolved by pickGene with no
// counterpart, copying from whichever side carries them.
func crossoverEq(l, r []Connection, rng *Probabilities) []Connection {
	out := make([]Connection, 0, len(l)+len(r))
	i, j := 0, 0
	for i < len(l) && j < len(r) {
		switch {
		case l[i].Innovation == r[j].Innovation:
			out = append(out, pickGene(l[i], &r[j], rng))
			i++
			j++
		case l[i].Innovation < r[j].Innovation:
			out = append(out, pickGene(l[i], nil, rng))
			i++
		default:
			out = append(out, pickGene(r[j], nil, rng))
			j++
		}
	}
	for ; i < len(l); i++ {
		out = append(out, pickGene(l[i], nil, rng))
	}
	for ; j < len(r); j++ {
		out = append(out, pickGene(r[j], nil, rng))
	}
	return out
}

// crossoverNe produces a child whose topology matches the fitter parent
// exactly: every gene the fitter parent carries appears in the child,
// with matched IDs resolved by pickGene against the weaker parent's
// connection and the fitter parent's unique genes resolved by pickGene
// with no counterpart.
func crossoverNe(fitter, weaker []Connection, rng *Probabilities) []Connection {
	out := make([]Connection, 0, len(fitter))
	j := 0
	for i := range fitter {
		for j < len(weaker) && weaker[j].Innovation < fitter[i].Innovation {
			j++
		}
		if j < len(weaker) && weaker[j].Innovation == fitter[i].Innovation {
			out = append(out, pickGene(fitter[i], &weaker[j], rng))
			j++
		} else {
			out = append(out, pickGene(fitter[i], nil, rng))
		}
	}
	return out
}

// CrossoverConnections merges two parents' connection sequences (self
// relative to other, under order) into a child's connection sequence,
// sorted by Innovation ascending.
func CrossoverConnections(self, other []Connection, order FitnessOrder, rng *Probabilities) []Connection {
	var out []Connection
	switch order {
	case Equal:
		out = crossoverEq(self, other, rng)
	case Greater:
		out = crossoverNe(self, other, rng)
	default:
		out = crossoverNe(other, self, rng)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Innovation < out[j].Innovation })
	return out
}
