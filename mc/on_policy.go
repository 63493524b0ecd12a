package mc

import (
	"github.com/zeu5/tabular-mdp/policies"
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

// OnPolicyControl is first-visit Monte Carlo control of an epsilon-soft
// policy. After every update of Q(s, a) the row of s becomes epsilon/|A| on
// every action plus 1-epsilon on the greedy one, so no exploring starts are needed.
func OnPolicyControl(env types.Environment, config Config) (*mat.Dense, *types.Policy, error) {
	if err := config.validate(); err != nil {
		return nil, nil, err
	}
	rng := config.Rand.OrGlobal()
	states, actions := env.NumStates(), env.NumActions()

	policy := types.NewUniformPolicy(states, actions)
	q := types.RandomActionValues(states, actions, env.IsTerminal, rng)
	for s := 0; s < states; s++ {
		if env.IsTerminal(s) {
			policy.ClearRow(s)
		}
	}
	returns := newReturnAccumulator(states, actions)

	for episode := 0; episode < config.Episodes; episode++ {
		start, err := config.startState(env, rng)
		if err != nil {
			return nil, nil, err
		}
		trajectory := types.GenerateTrajectory(env, start, policy, config.MaxSteps, rng)

		visited, taken := trajectory.States(), trajectory.Actions()
		first := trajectory.FirstPairVisits()
		backwardReturns(trajectory, config.Gamma, func(t int, g float64) bool {
			if !first[t] {
				return true
			}
			s, a := visited[t], taken[t]
			q.Set(s, a, returns.add(s, a, g))
			policy.SetEpsilonSoft(s, policies.GreedyAction(q, s), config.Epsilon)
			return true
		})
		notify(config, episode, trajectory)
	}
	return q, policy, nil
}
