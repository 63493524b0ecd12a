// Package dp holds the model-based algorithms: iterative policy
// evaluation and policy iteration over a dense transition-reward model.
package dp

import (
	"math"

	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

type Config struct {
	Gamma float64
	// sweeps stop once the largest change of a sweep is below Theta
	Theta float64
	// draws the initial values, nil means the process-wide source
	Rand *types.Rand
}

func DefaultConfig() Config {
	return Config{
		Gamma: 0.99,
		Theta: 0.00001,
	}
}

func (c Config) validate() error {
	if err := types.ValidateTheta(c.Theta); err != nil {
		return err
	}
	return types.ValidateGamma(c.Gamma)
}

// PolicyEvaluation computes V under policy by in-place sweeps: a state
// updated early in a sweep is read with its new value by the states after it.
// The loop only ends when the model contracts, either through Gamma < 1 or
// through terminal states reached from everywhere.
func PolicyEvaluation(model *types.Model, policy *types.Policy, config Config) (*mat.VecDense, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	if err := types.CheckPolicy(policy, model.NumStates(), model.NumActions()); err != nil {
		return nil, err
	}
	v := types.RandomStateValues(model.NumStates(), model.IsTerminal, config.Rand.OrGlobal())
	evaluate(model, policy, v, config)
	return v, nil
}

func evaluate(model *types.Model, policy *types.Policy, v *mat.VecDense, config Config) {
	for {
		delta := 0.0
		for s := 0; s < model.NumStates(); s++ {
			if model.IsTerminal(s) {
				continue
			}
			old := v.AtVec(s)
			updated := 0.0
			for a, pa := range policy.Row(s) {
				if pa == 0 {
					continue
				}
				updated += pa * model.Lookahead(s, a, v, config.Gamma)
			}
			v.SetVec(s, updated)
			delta = math.Max(delta, math.Abs(old-updated))
		}
		if delta < config.Theta {
			return
		}
	}
}

// PolicyIteration alternates full evaluation with a greedy improvement sweep,
// starting from the uniform random policy, until no state changes its action.
// The returned V is the evaluation of the returned deterministic policy.
func PolicyIteration(model *types.Model, config Config) (*mat.VecDense, *types.Policy, error) {
	if err := config.validate(); err != nil {
		return nil, nil, err
	}
	policy := types.NewUniformPolicy(model.NumStates(), model.NumActions())
	for s := 0; s < model.NumStates(); s++ {
		if model.IsTerminal(s) {
			policy.ClearRow(s)
		}
	}

	for {
		v, err := PolicyEvaluation(model, policy, config)
		if err != nil {
			return nil, nil, err
		}
		if Improve(model, policy, v, config) {
			return v, policy, nil
		}
	}
}

// Improve makes policy greedy on the one-step lookahead of v and reports
// whether it was already stable. Actions are scanned in index order and only a
// strictly better action replaces the best so far. A state that is already
// deterministic keeps its action unless the new best beats it by more than
// Theta, which stops evaluation noise from flipping between tied actions.
func Improve(model *types.Model, policy *types.Policy, v *mat.VecDense, config Config) bool {
	stable := true
	for s := 0; s < model.NumStates(); s++ {
		if model.IsTerminal(s) {
			continue
		}
		old := policy.Greedy(s)
		best := 0
		bestValue := math.Inf(-1)
		values := make([]float64, model.NumActions())
		for a := 0; a < model.NumActions(); a++ {
			values[a] = model.Lookahead(s, a, v, config.Gamma)
			if values[a] > bestValue {
				best = a
				bestValue = values[a]
			}
		}
		if policy.IsDeterministic(s, old) {
			if bestValue-values[old] <= config.Theta {
				continue
			}
		}
		policy.SetGreedy(s, best)
		stable = false
	}
	return stable
}
