package policies

import (
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// GreedyAction is the arg-max of Q(state, ·), lowest action index on ties
func GreedyAction(q *mat.Dense, state int) int {
	return types.ArgMax(q.RawRowView(state))
}

// MaxValue is max_a Q(state, a)
func MaxValue(q *mat.Dense, state int) float64 {
	return floats.Max(q.RawRowView(state))
}

// EpsilonGreedyAction takes a uniformly random action with probability
// epsilon and the greedy action otherwise
func EpsilonGreedyAction(q *mat.Dense, state int, epsilon float64, rng *types.Rand) int {
	if rng.Float64() < epsilon {
		_, actions := q.Dims()
		return rng.Intn(actions)
	}
	return GreedyAction(q, state)
}

// Greedy builds the deterministic policy that is greedy on q.
// Terminal rows stay at zero.
func Greedy(q *mat.Dense, isTerminal types.TerminalFunc) *types.Policy {
	states, actions := q.Dims()
	p := types.NewPolicy(states, actions)
	for s := 0; s < states; s++ {
		if isTerminal(s) {
			continue
		}
		p.SetGreedy(s, GreedyAction(q, s))
	}
	return p
}

// EpsilonSoft builds the epsilon-soft policy around the greedy actions of q.
// Terminal rows stay at zero.
func EpsilonSoft(q *mat.Dense, epsilon float64, isTerminal types.TerminalFunc) *types.Policy {
	states, actions := q.Dims()
	p := types.NewPolicy(states, actions)
	for s := 0; s < states; s++ {
		if isTerminal(s) {
			continue
		}
		p.SetEpsilonSoft(s, GreedyAction(q, s), epsilon)
	}
	return p
}
