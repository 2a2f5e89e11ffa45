// Package ctrnn compiles a sparse, innovation-tagged genome into a dense
// Continuous-Time Recurrent Neural Network and integrates it. It has no
// dependency on the neat package: the genome's compiler assembles the
// plain Edge/bias data this package needs, keeping the network form a
// reusable collaborator rather than part of the evolutionary kernel.
package ctrnn

import "gonum.org/v1/gonum/mat"

// ActivationFunc is a single-argument nonlinearity applied at each node.
type ActivationFunc func(float64) float64

// Edge is one compiled weighted connection, from node index From to node
// index To.
type Edge struct {
	From, To int
	Weight   float64
}

// DefaultTimeStep is the Euler step size used by Step when the network
// carries no explicit override.
const DefaultTimeStep = 0.1

// Network is the dense CTRNN form a Genome compiles into: a state vector
// Y, bias vector Theta, time-constant vector Tau, and weight matrix W,
// alongside the node-index ranges reserved for sensory input and action
// output.
type Network struct {
	y, theta, tau *mat.VecDense
	w             *mat.Dense
	sensoryFrom   int
	sensoryTo     int
	actionFrom    int
	actionTo      int
	dt            float64
}

// New builds a Network with n nodes, bias values per node, and the given
// enabled edges. Sensory nodes occupy [0,sensoryCount); action nodes
// occupy [sensoryCount,sensoryCount+actionCount).
func New(n, sensoryCount, actionCount int, bias []float64, edges []Edge) *Network {
	theta := mat.NewVecDense(n, nil)
	tau := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if i < len(bias) {
			theta.SetVec(i, bias[i])
		}
		tau.SetVec(i, 1.0)
	}

	w := mat.NewDense(n, n, nil)
	for _, e := range edges {
		w.Set(e.From, e.To, e.Weight)
	}

	return &Network{
		y:           mat.NewVecDense(n, nil),
		theta:       theta,
		tau:         tau,
		w:           w,
		sensoryFrom: 0,
		sensoryTo:   sensoryCount,
		actionFrom:  sensoryCount,
		actionTo:    sensoryCount + actionCount,
		dt:          DefaultTimeStep,
	}
}

// SetTimeStep overrides the Euler step size used by Step.
func (n *Network) SetTimeStep(dt float64) { n.dt = dt }

// Step advances the network state steps times via forward Euler
// integration of tau*dy/dt = -y + W*sigma(y+theta). Before every sub-step
// it writes input into the sensory node range of y; input enters the
// network only that way, not as a separate term of the update.
func (n *Network) Step(steps int, input []float64, sigma ActivationFunc) {
	size, _ := n.y.Dims()
	sig := mat.NewVecDense(size, nil)
	var wsig mat.VecDense

	for s := 0; s < steps; s++ {
		for i := 0; i < len(input) && n.sensoryFrom+i < n.sensoryTo; i++ {
			n.y.SetVec(n.sensoryFrom+i, input[i])
		}
		for i := 0; i < size; i++ {
			sig.SetVec(i, sigma(n.y.AtVec(i)+n.theta.AtVec(i)))
		}
		wsig.MulVec(n.w.T(), &sig)
		for i := 0; i < size; i++ {
			dy := (-n.y.AtVec(i) + wsig.AtVec(i)) / n.tau.AtVec(i)
			n.y.SetVec(i, n.y.AtVec(i)+n.dt*dy)
		}
	}
}

// Output returns a copy of the action node range of the current state.
func (n *Network) Output() []float64 {
	out := make([]float64, n.actionTo-n.actionFrom)
	for i := range out {
		out[i] = n.y.AtVec(n.actionFrom + i)
	}
	return out
}

// Flush zeroes the state vector, letting a compiled network be reused
// across independent trials without recompiling.
func (n *Network) Flush() {
	size, _ := n.y.Dims()
	for i := 0; i < size; i++ {
		n.y.SetVec(i, 0)
	}
}
