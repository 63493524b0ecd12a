// Package runner dispatches named algorithms on named worlds. It is the
// glue shared by the command line and the HTTP API.
package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/zeu5/tabular-mdp/dp"
	"github.com/zeu5/tabular-mdp/grid"
	"github.com/zeu5/tabular-mdp/mc"
	"github.com/zeu5/tabular-mdp/td"
	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

const (
	PolicyEvaluation  = "policy-evaluation"
	PolicyIteration   = "policy-iteration"
	MCPrediction      = "mc-prediction"
	MCExploringStarts = "mc-exploring-starts"
	MCOnPolicy        = "mc-on-policy"
	MCOffPolicy       = "mc-off-policy"
	TDZero            = "td-zero"
	Sarsa             = "sarsa"
	QLearning         = "q-learning"
)

var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrUnknownWorld     = errors.New("unknown world")
)

// Params collects every knob recognised by the algorithms plus the world to run on
type Params struct {
	World  string `json:"world"`
	Size   int    `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	Gamma    float64 `json:"gamma"`
	Theta    float64 `json:"theta"`
	Alpha    float64 `json:"alpha"`
	Epsilon  float64 `json:"epsilon"`
	Episodes int     `json:"episodes"`
	MaxSteps int     `json:"max_steps"`

	ExploringStarts        bool `json:"exploring_starts"`
	EpsilonGreedyBehaviour bool `json:"epsilon_greedy_behaviour"`

	// zero derives a generator from the process-wide source
	Seed uint64 `json:"seed"`
}

func DefaultParams() Params {
	return Params{
		World:    "line",
		Size:     5,
		Width:    4,
		Height:   4,
		Gamma:    0.99,
		Theta:    0.00001,
		Alpha:    0.1,
		Epsilon:  0.1,
		Episodes: 1000,
		MaxSteps: 100,
	}
}

// upper bounds of the sampling budgets accepted by Validate
const (
	MaxEpisodes     = 100000
	MaxEpisodeSteps = 10000
)

// Validate caps the episode budget and the world size before anything is
// allocated. Lower bounds and the knobs of each algorithm are checked by the
// world constructors and the algorithms themselves.
func (p Params) Validate() error {
	if p.Episodes > MaxEpisodes {
		return fmt.Errorf("%w: at most %d episodes, got %d", types.ErrInvalidBudget, MaxEpisodes, p.Episodes)
	}
	if p.MaxSteps > MaxEpisodeSteps {
		return fmt.Errorf("%w: at most %d steps per episode, got %d", types.ErrInvalidBudget, MaxEpisodeSteps, p.MaxSteps)
	}
	switch p.World {
	case "line":
		if p.Size > grid.MaxStates {
			return fmt.Errorf("%w: at most %d states, got %d", grid.ErrWorldTooLarge, grid.MaxStates, p.Size)
		}
	case "grid":
		if p.Width > grid.MaxStates || p.Height > grid.MaxStates || p.Width*p.Height > grid.MaxStates {
			return fmt.Errorf("%w: at most %d cells, got %dx%d", grid.ErrWorldTooLarge, grid.MaxStates, p.Width, p.Height)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownWorld, p.World)
	}
	return nil
}

func (p Params) BuildWorld() (*grid.World, error) {
	switch p.World {
	case "line":
		return grid.NewLineWorld(p.Size)
	case "grid":
		return grid.NewGridWorld(p.Width, p.Height)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWorld, p.World)
}

func (p Params) rand() *types.Rand {
	if p.Seed == 0 {
		return types.Derive()
	}
	return types.NewRand(p.Seed)
}

func (p Params) dpConfig(rng *types.Rand) dp.Config {
	return dp.Config{Gamma: p.Gamma, Theta: p.Theta, Rand: rng}
}

func (p Params) mcConfig(rng *types.Rand, observer types.Observer) mc.Config {
	return mc.Config{
		Episodes:               p.Episodes,
		MaxSteps:               p.MaxSteps,
		Gamma:                  p.Gamma,
		Epsilon:                p.Epsilon,
		ExploringStarts:        p.ExploringStarts,
		EpsilonGreedyBehaviour: p.EpsilonGreedyBehaviour,
		Rand:                   rng,
		Observer:               observer,
	}
}

func (p Params) tdConfig(rng *types.Rand, observer types.Observer) td.Config {
	return td.Config{
		Episodes: p.Episodes,
		MaxSteps: p.MaxSteps,
		Gamma:    p.Gamma,
		Alpha:    p.Alpha,
		Epsilon:  p.Epsilon,
		Rand:     rng,
		Observer: observer,
	}
}

// Result holds whatever tables the algorithm produces; unused ones are nil
type Result struct {
	Algorithm string
	World     *grid.World
	V         *mat.VecDense
	Q         *mat.Dense
	Policy    *types.Policy
}

func (r *Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Algorithm string      `json:"algorithm"`
		World     string      `json:"world"`
		V         []float64   `json:"v,omitempty"`
		Q         [][]float64 `json:"q,omitempty"`
		Policy    [][]float64 `json:"policy,omitempty"`
	}{
		Algorithm: r.Algorithm,
		World:     r.World.Name,
	}
	if r.V != nil {
		out.V = types.VecValues(r.V)
	}
	if r.Q != nil {
		out.Q = types.DenseRows(r.Q)
	}
	if r.Policy != nil {
		out.Policy = r.Policy.Rows()
	}
	return json.Marshal(out)
}

type algorithm func(w *grid.World, p Params, rng *types.Rand, observer types.Observer) (*Result, error)

var algorithms = map[string]algorithm{
	PolicyEvaluation: func(w *grid.World, p Params, rng *types.Rand, _ types.Observer) (*Result, error) {
		policy := uniformPolicy(w)
		v, err := dp.PolicyEvaluation(w.Model, policy, p.dpConfig(rng))
		return &Result{V: v, Policy: policy}, err
	},
	PolicyIteration: func(w *grid.World, p Params, rng *types.Rand, _ types.Observer) (*Result, error) {
		v, policy, err := dp.PolicyIteration(w.Model, p.dpConfig(rng))
		return &Result{V: v, Policy: policy}, err
	},
	MCPrediction: func(w *grid.World, p Params, rng *types.Rand, observer types.Observer) (*Result, error) {
		policy := uniformPolicy(w)
		v, err := mc.FirstVisitPrediction(w.Environment(rng), policy, p.mcConfig(rng, observer))
		return &Result{V: v, Policy: policy}, err
	},
	MCExploringStarts: func(w *grid.World, p Params, rng *types.Rand, observer types.Observer) (*Result, error) {
		q, policy, err := mc.ExploringStartsControl(w.Environment(rng), p.mcConfig(rng, observer))
		return &Result{Q: q, Policy: policy}, err
	},
	MCOnPolicy: func(w *grid.World, p Params, rng *types.Rand, observer types.Observer) (*Result, error) {
		q, policy, err := mc.OnPolicyControl(w.Environment(rng), p.mcConfig(rng, observer))
		return &Result{Q: q, Policy: policy}, err
	},
	MCOffPolicy: func(w *grid.World, p Params, rng *types.Rand, observer types.Observer) (*Result, error) {
		q, policy, err := mc.OffPolicyControl(w.Environment(rng), p.mcConfig(rng, observer))
		return &Result{Q: q, Policy: policy}, err
	},
	TDZero: func(w *grid.World, p Params, rng *types.Rand, observer types.Observer) (*Result, error) {
		policy := uniformPolicy(w)
		v, err := td.ZeroPrediction(w.Environment(rng), policy, p.tdConfig(rng, observer))
		return &Result{V: v, Policy: policy}, err
	},
	Sarsa: func(w *grid.World, p Params, rng *types.Rand, observer types.Observer) (*Result, error) {
		q, policy, err := td.Sarsa(w.Environment(rng), p.tdConfig(rng, observer))
		return &Result{Q: q, Policy: policy}, err
	},
	QLearning: func(w *grid.World, p Params, rng *types.Rand, observer types.Observer) (*Result, error) {
		q, policy, err := td.QLearning(w.Environment(rng), p.tdConfig(rng, observer))
		return &Result{Q: q, Policy: policy}, err
	},
}

// uniformPolicy is the random policy evaluated by the prediction algorithms
func uniformPolicy(w *grid.World) *types.Policy {
	policy := types.NewUniformPolicy(w.Model.NumStates(), w.Model.NumActions())
	for _, s := range w.Model.Terminals() {
		policy.ClearRow(s)
	}
	return policy
}

// Algorithms lists the algorithm names in sorted order
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsControl reports whether the algorithm improves a policy rather than evaluating one
func IsControl(name string) bool {
	switch name {
	case PolicyIteration, MCExploringStarts, MCOnPolicy, MCOffPolicy, Sarsa, QLearning:
		return true
	}
	return false
}

// Run builds the world described by params and runs the named algorithm on it.
// observer may be nil.
func Run(name string, params Params, observer types.Observer) (*Result, error) {
	run, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	world, err := params.BuildWorld()
	if err != nil {
		return nil, err
	}
	result, err := run(world, params, params.rand(), observer)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	result.Algorithm = name
	result.World = world
	return result, nil
}
