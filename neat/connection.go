package neat

import "math"

// Compatibility coefficients for this connection flavor, used by Delta.
const (
	ExcessCoefficient   = 1.0
	DisjointCoefficient = 1.0
	ParamCoefficient    = 0.4
)

// MutateWeightFactor scales the gaussian perturbation applied to a
// connection's weight by MutateParams.
const MutateWeightFactor = 0.05

// Connection is an innovation-tagged, weighted edge between two node
// indices. Connections within a genome are kept sorted by Innovation
// ascending; no two connections in one genome may share an Innovation.
type Connection struct {
	Innovation uint64  `json:"inno"`
	From       int     `json:"from"`
	To         int     `json:"to"`
	Weight     float64 `json:"weight"`
	Enabled    bool    `json:"enabled"`
}

// Enable marks the connection active.
func (c *Connection) Enable() { c.Enabled = true }

// Disable marks the connection inactive. Note: this is the correct
// enabled=false behavior; it does not reproduce a documented bug in the
// grounding implementation where the equivalent method set enabled=true.
func (c *Connection) Disable() { c.Enabled = false }

// ParamDiff is the per-connection parameter distance used by AvgParamDiff.
func (c Connection) ParamDiff(other Connection) float64 {
	return math.Abs(c.Weight - other.Weight)
}

// Copy returns a value copy of the connection.
func (c Connection) Copy() Connection {
	return c
}
