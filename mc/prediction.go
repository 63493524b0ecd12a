package mc

import (
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

// FirstVisitPrediction estimates V of a fixed policy as the mean of the
// first-visit returns observed for every state
func FirstVisitPrediction(env types.Environment, policy *types.Policy, config Config) (*mat.VecDense, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if err := types.CheckPolicy(policy, env.NumStates(), env.NumActions()); err != nil {
		return nil, err
	}
	rng := config.Rand.OrGlobal()
	v := types.RandomStateValues(env.NumStates(), env.IsTerminal, rng)
	returns := newReturnAccumulator(env.NumStates(), 1)

	for episode := 0; episode < config.Episodes; episode++ {
		start, err := config.startState(env, rng)
		if err != nil {
			return nil, err
		}
		trajectory := types.GenerateTrajectory(env, start, policy, config.MaxSteps, rng)
		states := trajectory.States()
		first := trajectory.FirstStateVisits()

		backwardReturns(trajectory, config.Gamma, func(t int, g float64) bool {
			if first[t] {
				v.SetVec(states[t], returns.add(states[t], 0, g))
			}
			return true
		})
		notify(config, episode, trajectory)
	}
	return v, nil
}
