package mc

import (
	"github.com/zeu5/tabular-mdp/policies"
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

// ExploringStartsControl forces the first (state, action) pair of every
// episode to be uniform over non-terminal states and all actions, then
// follows the current policy. Q is the mean of first-visit returns and the
// policy row of a state is made greedy right after each update of that state.
// The forced first step counts toward MaxSteps.
func ExploringStartsControl(env types.Environment, config Config) (*mat.Dense, *types.Policy, error) {
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
		s0, err := types.UniformStart(env, rng)
		if err != nil {
			return nil, nil, err
		}
		a0 := rng.Intn(actions)
		s1, r1, _ := env.Step(s0, a0)

		trajectory := types.GenerateTrajectory(env, s1, policy, config.MaxSteps-1, rng)
		trajectory.Prepend(s0, a0, s1, r1)

		visited, taken := trajectory.States(), trajectory.Actions()
		first := trajectory.FirstPairVisits()
		backwardReturns(trajectory, config.Gamma, func(t int, g float64) bool {
			if !first[t] {
				return true
			}
			s, a := visited[t], taken[t]
			q.Set(s, a, returns.add(s, a, g))
			policy.SetGreedy(s, policies.GreedyAction(q, s))
			return true
		})
		notify(config, episode, trajectory)
	}
	return q, policy, nil
}
