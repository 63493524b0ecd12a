// Package mc implements the Monte Carlo engine: first-visit prediction and
// three control variants, all built on sampled trajectories.
package mc

import (
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

type Config struct {
	Episodes int
	// step budget of every episode
	MaxSteps int
	Gamma    float64
	// exploration rate of the epsilon-soft and epsilon-greedy policies
	Epsilon float64
	// start episodes from a uniformly drawn non-terminal state instead of Reset
	ExploringStarts bool
	// off-policy control only: refresh the behaviour policy to
	// epsilon-greedy over Q before every episode instead of keeping it uniform
	EpsilonGreedyBehaviour bool
	Rand                   *types.Rand
	Observer               types.Observer
}

func DefaultConfig() Config {
	return Config{
		Episodes: 1000,
		MaxSteps: 10,
		Gamma:    0.99,
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
	return types.ValidateEpsilon(c.Epsilon)
}

// startState picks the first state of an episode
func (c Config) startState(env types.Environment, rng *types.Rand) (int, error) {
	if c.ExploringStarts {
		return types.UniformStart(env, rng)
	}
	return env.Reset(), nil
}

// returnAccumulator keeps the running sum and the visit count of every
// (state, action) pair; states use a single action column
type returnAccumulator struct {
	sums   *mat.Dense
	counts *mat.Dense
}

func newReturnAccumulator(states, actions int) *returnAccumulator {
	return &returnAccumulator{
		sums:   mat.NewDense(states, actions, nil),
		counts: mat.NewDense(states, actions, nil),
	}
}

// add records g and returns the new sample mean
func (r *returnAccumulator) add(state, action int, g float64) float64 {
	sum := r.sums.At(state, action) + g
	count := r.counts.At(state, action) + 1
	r.sums.Set(state, action, sum)
	r.counts.Set(state, action, count)
	return sum / count
}

// backwardReturns walks the trajectory from its last step, accumulating
// G <- gamma*G + r_t, and calls visit with the return of every step.
// visit returns false to abandon the remaining earlier steps.
func backwardReturns(trajectory *types.Trajectory, gamma float64, visit func(t int, g float64) bool) {
	rewards := trajectory.Rewards()
	g := 0.0
	for t := len(rewards) - 1; t >= 0; t-- {
		g = gamma*g + rewards[t]
		if !visit(t, g) {
			return
		}
	}
}

func notify(config Config, episode int, trajectory *types.Trajectory) {
	config.Observer.Notify(types.EpisodeStats{
		Episode: episode,
		Steps:   trajectory.Len(),
		Return:  trajectory.Return(config.Gamma),
	})
}
