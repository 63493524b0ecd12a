// Package td implements one-step temporal-difference learning:
// TD(0) prediction, SARSA and Q-learning. Updates are applied online,
// no trajectory is buffered.
package td

import (
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

type Config struct {
	Episodes int
	MaxSteps int
	Gamma    float64
	Alpha    float64
	Epsilon  float64
	Rand     *types.Rand
	Observer types.Observer
}

func DefaultConfig() Config {
	return Config{
		Episodes: 1000,
		MaxSteps: 100,
		Gamma:    0.99,
		Alpha:    0.1,
		Epsilon:  0.1,
	}
}

func (c Config) validate() error {
	if err := types.ValidateBudget(c.Episodes, c.MaxSteps); err != nil {
		return err
	}
	if err := types.ValidateGamma(c.Gamma); err != nil {
		return err
	}
	if err := types.ValidateAlpha(c.Alpha); err != nil {
		return err
	}
	return types.ValidateEpsilon(c.Epsilon)
}

// episodeTracker accumulates the discounted return of an online episode
type episodeTracker struct {
	steps    int
	ret      float64
	discount float64
}

func newEpisodeTracker() *episodeTracker {
	return &episodeTracker{discount: 1}
}

func (e *episodeTracker) record(reward, gamma float64) {
	e.ret += e.discount * reward
	e.discount *= gamma
	e.steps++
}

func (e *episodeTracker) notify(config Config, episode int) {
	config.Observer.Notify(types.EpisodeStats{
		Episode: episode,
		Steps:   e.steps,
		Return:  e.ret,
	})
}

// ZeroPrediction is TD(0): V(s) += alpha*(r + gamma*V(s') - V(s)) after
// every step of episodes generated by policy from Reset
func ZeroPrediction(env types.Environment, policy *types.Policy, config Config) (*mat.VecDense, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if err := types.CheckPolicy(policy, env.NumStates(), env.NumActions()); err != nil {
		return nil, err
	}
	rng := config.Rand.OrGlobal()
	v := types.RandomStateValues(env.NumStates(), env.IsTerminal, rng)

	for episode := 0; episode < config.Episodes; episode++ {
		tracker := newEpisodeTracker()
		state := env.Reset()
		for step := 0; step < config.MaxSteps && !env.IsTerminal(state); step++ {
			action := rng.Categorical(policy.Row(state))
			next, reward, _ := env.Step(state, action)
			target := reward + config.Gamma*v.AtVec(next)
			v.SetVec(state, v.AtVec(state)+config.Alpha*(target-v.AtVec(state)))
			tracker.record(reward, config.Gamma)
			state = next
		}
		tracker.notify(config, episode)
	}
	return v, nil
}
