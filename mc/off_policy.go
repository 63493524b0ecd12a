package mc

import (
	"github.com/zeu5/tabular-mdp/policies"
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

// OffPolicyControl learns the greedy target policy from episodes of a
// behaviour policy with weighted importance sampling. Walking an episode
// backward, C(s, a) accumulates the weights W and Q moves by W/C(s, a)
// toward the return. W is divided by b(s, a) after each step, and the pass
// is abandoned at the first step whose action differs from the greedy target
// action, since no earlier step can contribute to the target policy.
//
// The behaviour policy is uniform random, or epsilon-greedy on Q refreshed
// before every episode when config.EpsilonGreedyBehaviour is set.
func OffPolicyControl(env types.Environment, config Config) (*mat.Dense, *types.Policy, error) {
	if err := config.validate(); err != nil {
		return nil, nil, err
	}
	rng := config.Rand.OrGlobal()
	states, actions := env.NumStates(), env.NumActions()

	q := types.RandomActionValues(states, actions, env.IsTerminal, rng)
	weights := mat.NewDense(states, actions, nil)
	target := policies.Greedy(q, env.IsTerminal)
	behaviour := types.NewUniformPolicy(states, actions)

	for episode := 0; episode < config.Episodes; episode++ {
		if config.EpsilonGreedyBehaviour {
			behaviour = policies.EpsilonSoft(q, config.Epsilon, env.IsTerminal)
		}
		start, err := config.startState(env, rng)
		if err != nil {
			return nil, nil, err
		}
		trajectory := types.GenerateTrajectory(env, start, behaviour, config.MaxSteps, rng)

		weightedUpdate(trajectory, q, weights, target, behaviour, config.Gamma)
		notify(config, episode, trajectory)
	}
	return q, target, nil
}

// weightedUpdate walks one episode backward. First visits of (s, a) move
// Q(s, a) by W/C(s, a) toward the return and re-greedify the target. The
// walk stops at the first action the target would not take, otherwise W is
// divided by the behaviour probability of the action.
func weightedUpdate(trajectory *types.Trajectory, q, weights *mat.Dense, target, behaviour *types.Policy, gamma float64) {
	visited, taken := trajectory.States(), trajectory.Actions()
	first := trajectory.FirstPairVisits()
	w := 1.0
	backwardReturns(trajectory, gamma, func(t int, g float64) bool {
		s, a := visited[t], taken[t]
		if first[t] {
			c := weights.At(s, a) + w
			weights.Set(s, a, c)
			q.Set(s, a, q.At(s, a)+(w/c)*(g-q.At(s, a)))
			target.SetGreedy(s, policies.GreedyAction(q, s))
		}
		if a != target.Greedy(s) {
			return false
		}
		w = w / behaviour.Prob(s, a)
		return true
	})
}
