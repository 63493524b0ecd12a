package td

import (
	"github.com/zeu5/tabular-mdp/policies"
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

// QLearning is off-policy TD control: behaviour is epsilon-greedy on Q but
// the target bootstraps from max_a' Q(s', a'). The returned policy is greedy on the final Q.
func QLearning(env types.Environment, config Config) (*mat.Dense, *types.Policy, error) {
	if err := config.validate(); err != nil {
		return nil, nil, err
	}
	rng := config.Rand.OrGlobal()
	q := types.RandomActionValues(env.NumStates(), env.NumActions(), env.IsTerminal, rng)

	for episode := 0; episode < config.Episodes; episode++ {
		tracker := newEpisodeTracker()
		state := env.Reset()
		for step := 0; step < config.MaxSteps && !env.IsTerminal(state); step++ {
			action := policies.EpsilonGreedyAction(q, state, config.Epsilon, rng)
			next, reward, _ := env.Step(state, action)
			tracker.record(reward, config.Gamma)

			bootstrap := 0.0
			if !env.IsTerminal(next) {
				bootstrap = policies.MaxValue(q, next)
			}
			current := q.At(state, action)
			q.Set(state, action, current+config.Alpha*(reward+config.Gamma*bootstrap-current))
			state = next
		}
		tracker.notify(config, episode)
	}

	types.ZeroTerminalRows(q, env.IsTerminal)
	return q, policies.Greedy(q, env.IsTerminal), nil
}
