package td

import (
	"errors"
	"math"
	"testing"

	"github.com/zeu5/tabular-mdp/grid"
	"github.com/zeu5/tabular-mdp/types"
)

func immediateTerminal() *types.Model {
	m := types.NewModel(2, 1)
	m.SetTransition(0, 0, 1, 1, 3)
	m.SetTerminal(1)
	return m
}

func TestZeroPredictionImmediateTerminal(t *testing.T) {
	rng := types.NewRand(1)
	env := types.NewModelEnvironment(immediateTerminal(), 0, rng)
	policy := types.NewPolicy(2, 1)
	policy.SetGreedy(0, 0)

	config := Config{Episodes: 1, MaxSteps: 10, Gamma: 0.9, Alpha: 1, Rand: rng}
	v, err := ZeroPrediction(env, policy, config)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if math.Abs(v.AtVec(0)-3) > 1e-12 || v.AtVec(1) != 0 {
		t.Errorf("expected V = [3 0], got [%v %v]", v.AtVec(0), v.AtVec(1))
	}

	config.Episodes = 60
	config.Alpha = 0.5
	v, err = ZeroPrediction(env, policy, config)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if math.Abs(v.AtVec(0)-3) > 1e-9 {
		t.Errorf("expected V(0) to converge to 3, got %v", v.AtVec(0))
	}
}

func TestZeroPredictionLineWorld(t *testing.T) {
	w, _ := grid.NewLineWorld(5)
	rng := types.NewRand(2)
	policy := types.NewUniformPolicy(5, 2)
	policy.ClearRow(0)
	policy.ClearRow(4)

	config := Config{Episodes: 3000, MaxSteps: 100, Gamma: 1, Alpha: 0.01, Rand: rng}
	v, err := ZeroPrediction(w.Environment(rng), policy, config)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	expected := []float64{0, -0.5, 0, 0.5, 0}
	for s, e := range expected {
		if math.Abs(v.AtVec(s)-e) > 0.2 {
			t.Errorf("state %d: expected about %v, got %v", s, e, v.AtVec(s))
		}
	}
}

func TestQLearningLineWorld(t *testing.T) {
	w, _ := grid.NewLineWorld(5)
	rng := types.NewRand(3)
	returns := 0
	config := Config{
		Episodes: 1000,
		MaxSteps: 100,
		Gamma:    0.9,
		Alpha:    0.5,
		Epsilon:  0.5,
		Rand:     rng,
		Observer: func(types.EpisodeStats) { returns++ },
	}
	q, policy, err := QLearning(w.Environment(rng), config)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for s := 1; s < 4; s++ {
		if !policy.IsDeterministic(s, int(grid.MovementRight)) {
			t.Errorf("state %d: expected greedy right, got %v", s, policy.Row(s))
		}
	}
	if math.Abs(q.At(3, int(grid.MovementRight))-1) > 1e-6 {
		t.Errorf("expected Q(3, right) close to 1, got %v", q.At(3, int(grid.MovementRight)))
	}
	for a := 0; a < 2; a++ {
		if q.At(0, a) != 0 || q.At(4, a) != 0 || policy.Prob(0, a) != 0 || policy.Prob(4, a) != 0 {
			t.Errorf("expected zero terminal rows")
		}
	}
	if returns != 1000 {
		t.Errorf("expected 1000 observed episodes, got %d", returns)
	}
}

func TestSarsaLineWorld(t *testing.T) {
	w, _ := grid.NewLineWorld(5)
	rng := types.NewRand(4)
	epsilon := 0.3
	config := Config{Episodes: 3000, MaxSteps: 100, Gamma: 0.9, Alpha: 0.1, Epsilon: epsilon, Rand: rng}
	q, policy, err := Sarsa(w.Environment(rng), config)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	right := int(grid.MovementRight)
	for s := 1; s < 4; s++ {
		if row := policy.Row(s); math.Abs(row[right]-(1-epsilon+epsilon/2)) > 1e-12 {
			t.Errorf("state %d: expected epsilon soft row around right, got %v", s, row)
		}
	}
	for a := 0; a < 2; a++ {
		if q.At(0, a) != 0 || q.At(4, a) != 0 {
			t.Errorf("expected zero terminal rows")
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	w, _ := grid.NewLineWorld(5)
	env := w.Environment(nil)
	if _, _, err := Sarsa(env, Config{Episodes: 1, MaxSteps: 1, Gamma: 0.9, Alpha: 0}); !errors.Is(err, types.ErrInvalidAlpha) {
		t.Errorf("expected ErrInvalidAlpha, got %v", err)
	}
	if _, _, err := QLearning(env, Config{Episodes: -1, MaxSteps: 1, Gamma: 0.9, Alpha: 0.1}); !errors.Is(err, types.ErrInvalidBudget) {
		t.Errorf("expected ErrInvalidBudget, got %v", err)
	}
	if _, err := ZeroPrediction(env, types.NewUniformPolicy(2, 2), DefaultConfig()); !errors.Is(err, types.ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSeededGlobalSourceIsReproducible(t *testing.T) {
	w, _ := grid.NewLineWorld(5)
	run := func() []float64 {
		types.Seed(17)
		config := Config{Episodes: 50, MaxSteps: 50, Gamma: 0.9, Alpha: 0.5, Epsilon: 0.3}
		q, _, err := QLearning(w.Environment(nil), config)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		return q.RawMatrix().Data
	}
	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("runs after seeding the process-wide source differ at %d", i)
		}
	}
}
