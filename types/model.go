package types

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Model is the dense transition-reward tensor P(s, a, s') = (probability, reward)
// together with the terminal set. Row s*actions+a of the probability and
// reward matrices holds the distribution over next states s'.
type Model struct {
	states   int
	actions  int
	prob     *mat.Dense
	reward   *mat.Dense
	terminal []bool
}

// NewModel returns an empty model with no transitions and no terminal states
func NewModel(states, actions int) *Model {
	return &Model{
		states:   states,
		actions:  actions,
		prob:     mat.NewDense(states*actions, states, nil),
		reward:   mat.NewDense(states*actions, states, nil),
		terminal: make([]bool, states),
	}
}

func (m *Model) NumStates() int {
	return m.states
}

func (m *Model) NumActions() int {
	return m.actions
}

func (m *Model) row(state, action int) int {
	return state*m.actions + action
}

// SetTransition sets the probability and reward of reaching next from (state, action)
func (m *Model) SetTransition(state, action, next int, prob, reward float64) {
	m.prob.Set(m.row(state, action), next, prob)
	m.reward.Set(m.row(state, action), next, reward)
}

// SetReward only changes the reward of (state, action, next)
func (m *Model) SetReward(state, action, next int, reward float64) {
	m.reward.Set(m.row(state, action), next, reward)
}

func (m *Model) Prob(state, action, next int) float64 {
	return m.prob.At(m.row(state, action), next)
}

func (m *Model) Reward(state, action, next int) float64 {
	return m.reward.At(m.row(state, action), next)
}

// Transitions returns the next-state distribution of (state, action).
// The slice aliases the model and must not be modified.
func (m *Model) Transitions(state, action int) []float64 {
	return m.prob.RawRowView(m.row(state, action))
}

// Rewards returns the per next-state rewards of (state, action), aliasing the model
func (m *Model) Rewards(state, action int) []float64 {
	return m.reward.RawRowView(m.row(state, action))
}

// SetTerminal marks state as absorbing
func (m *Model) SetTerminal(state int) {
	m.terminal[state] = true
}

func (m *Model) IsTerminal(state int) bool {
	return m.terminal[state]
}

// Terminals lists the terminal states in index order
func (m *Model) Terminals() []int {
	result := make([]int, 0)
	for s, t := range m.terminal {
		if t {
			result = append(result, s)
		}
	}
	return result
}

// Lookahead is the one-step Bellman backup of (state, action) under the values v
func (m *Model) Lookahead(state, action int, v *mat.VecDense, gamma float64) float64 {
	probs := m.Transitions(state, action)
	rewards := m.Rewards(state, action)
	q := 0.0
	for next, p := range probs {
		if p == 0 {
			continue
		}
		q += p * (rewards[next] + gamma*v.AtVec(next))
	}
	return q
}

// Validate checks that every non-terminal (state, action) row is a
// probability distribution
func (m *Model) Validate() error {
	for s := 0; s < m.states; s++ {
		if m.terminal[s] {
			continue
		}
		for a := 0; a < m.actions; a++ {
			row := m.Transitions(s, a)
			if floats.Min(row) < 0 {
				return fmt.Errorf("%w: negative probability at state %d action %d", ErrInvalidModel, s, a)
			}
			if sum := floats.Sum(row); math.Abs(sum-1) > 1e-9 {
				return fmt.Errorf("%w: probabilities at state %d action %d sum to %v", ErrInvalidModel, s, a, sum)
			}
		}
	}
	return nil
}
