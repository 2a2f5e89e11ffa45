package ctrnn

import "math"

// DecayQuadratic scores how close output came to target as
// 1 - (target-output)^2, clamped at 0 for errors beyond 1.0 in magnitude.
// It is a convenience loss a Scenario's Eval can accumulate over several
// trials before averaging.
func DecayQuadratic(target, output float64) float64 {
	diff := target - output
	score := 1 - diff*diff
	return math.Max(score, 0)
}
