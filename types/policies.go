package types

import (
	"encoding/json"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Policy is a row-stochastic table: row s is the distribution over actions in state s.
// Rows of terminal states are kept at zero by the engines.
type Policy struct {
	table *mat.Dense
}

// NewPolicy returns an all-zero policy table
func NewPolicy(states, actions int) *Policy {
	return &Policy{
		table: mat.NewDense(states, actions, nil),
	}
}

// NewUniformPolicy returns the uniform random policy 1/|A| in every state
func NewUniformPolicy(states, actions int) *Policy {
	p := NewPolicy(states, actions)
	for s := 0; s < states; s++ {
		p.SetUniform(s)
	}
	return p
}

func (p *Policy) Dims() (states, actions int) {
	return p.table.Dims()
}

// Row returns the distribution of state s, aliasing the table
func (p *Policy) Row(s int) []float64 {
	return p.table.RawRowView(s)
}

func (p *Policy) Prob(s, a int) float64 {
	return p.table.At(s, a)
}

func (p *Policy) Set(s, a int, prob float64) {
	p.table.Set(s, a, prob)
}

// ClearRow sets every action probability of s to zero
func (p *Policy) ClearRow(s int) {
	row := p.Row(s)
	for a := range row {
		row[a] = 0
	}
}

func (p *Policy) SetUniform(s int) {
	row := p.Row(s)
	for a := range row {
		row[a] = 1 / float64(len(row))
	}
}

// SetGreedy makes s deterministic on action
func (p *Policy) SetGreedy(s, action int) {
	p.ClearRow(s)
	p.table.Set(s, action, 1)
}

// SetEpsilonSoft gives every action epsilon/|A| and the greedy action an extra 1-epsilon
func (p *Policy) SetEpsilonSoft(s, greedy int, epsilon float64) {
	row := p.Row(s)
	for a := range row {
		row[a] = epsilon / float64(len(row))
	}
	row[greedy] += 1 - epsilon
}

// Greedy returns the most probable action of s, the lowest index on ties
func (p *Policy) Greedy(s int) int {
	return ArgMax(p.Row(s))
}

// IsDeterministic reports whether s puts all its mass on action
func (p *Policy) IsDeterministic(s, action int) bool {
	return p.table.At(s, action) == 1 && floats.Sum(p.Row(s)) == 1
}

// Clone returns a deep copy of the policy
func (p *Policy) Clone() *Policy {
	return &Policy{table: mat.DenseCopyOf(p.table)}
}

// Rows returns the table as nested slices
func (p *Policy) Rows() [][]float64 {
	return DenseRows(p.table)
}

func (p *Policy) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Rows())
}
