package td

import (
	"github.com/zeu5/tabular-mdp/policies"
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

// Sarsa is on-policy TD control. Actions are epsilon-greedy on Q and the
// bootstrap target uses the next action that is actually selected. The
// returned policy is the epsilon-soft policy of the final Q.
func Sarsa(env types.Environment, config Config) (*mat.Dense, *types.Policy, error) {
	if err := config.validate(); err != nil {
		return nil, nil, err
	}
	rng := config.Rand.OrGlobal()
	q := types.RandomActionValues(env.NumStates(), env.NumActions(), env.IsTerminal, rng)

	for episode := 0; episode < config.Episodes; episode++ {
		tracker := newEpisodeTracker()
		state := env.Reset()
		if !env.IsTerminal(state) {
			action := policies.EpsilonGreedyAction(q, state, config.Epsilon, rng)
			for step := 0; step < config.MaxSteps; step++ {
				next, reward, _ := env.Step(state, action)
				tracker.record(reward, config.Gamma)

				bootstrap, nextAction := 0.0, 0
				if !env.IsTerminal(next) {
					nextAction = policies.EpsilonGreedyAction(q, next, config.Epsilon, rng)
					bootstrap = q.At(next, nextAction)
				}
				current := q.At(state, action)
				q.Set(state, action, current+config.Alpha*(reward+config.Gamma*bootstrap-current))

				if env.IsTerminal(next) {
					break
				}
				state, action = next, nextAction
			}
		}
		tracker.notify(config, episode)
	}

	types.ZeroTerminalRows(q, env.IsTerminal)
	return q, policies.EpsilonSoft(q, config.Epsilon, env.IsTerminal), nil
}
