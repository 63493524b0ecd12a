package types

import (
	"errors"
	"math"
	"testing"
)

// chainModel is 0 <-> 1 -> 2 with 2 terminal; action 0 moves left, action 1 moves right
func chainModel() *Model {
	m := NewModel(3, 2)
	m.SetTransition(0, 0, 0, 1, 0)
	m.SetTransition(0, 1, 1, 1, 0)
	m.SetTransition(1, 0, 0, 1, 0)
	m.SetTransition(1, 1, 2, 1, 5)
	m.SetTerminal(2)
	return m
}

func TestTrajectoryFirstVisits(t *testing.T) {
	trajectory := NewTrajectory()
	trajectory.Append(0, 0, 1, 1)
	trajectory.Append(1, 1, 0, 1)
	trajectory.Append(0, 1, 0, 1)
	trajectory.Append(0, 0, 2, 1)

	expectedStates := []bool{true, true, false, false}
	expectedPairs := []bool{true, true, true, false}
	states := trajectory.FirstStateVisits()
	pairs := trajectory.FirstPairVisits()
	for i := 0; i < trajectory.Len(); i++ {
		if states[i] != expectedStates[i] {
			t.Errorf("step %d: expected first state visit %v, got %v", i, expectedStates[i], states[i])
		}
		if pairs[i] != expectedPairs[i] {
			t.Errorf("step %d: expected first pair visit %v, got %v", i, expectedPairs[i], pairs[i])
		}
	}
}

func TestTrajectoryReturn(t *testing.T) {
	trajectory := NewTrajectory()
	trajectory.Append(0, 0, 0, 1)
	trajectory.Append(0, 0, 0, 2)
	trajectory.Append(0, 0, 1, 3)
	if g := trajectory.Return(0.5); math.Abs(g-2.75) > 1e-12 {
		t.Errorf("expected return 2.75, got %v", g)
	}

	trajectory.Prepend(1, 1, 0, 4)
	if s, a, _, r, ok := trajectory.Get(0); !ok || s != 1 || a != 1 || r != 4 {
		t.Errorf("prepended step not first")
	}
	if _, _, _, _, ok := trajectory.Get(4); ok {
		t.Errorf("expected out of range step to be missing")
	}
}

func TestGenerateTrajectory(t *testing.T) {
	env := NewModelEnvironment(chainModel(), 0, NewRand(1))
	right := NewPolicy(3, 2)
	right.SetGreedy(0, 1)
	right.SetGreedy(1, 1)

	trajectory := GenerateTrajectory(env, env.Reset(), right, 10, NewRand(1))
	if trajectory.Len() != 2 {
		t.Fatalf("expected episode to stop at the terminal after 2 steps, got %d", trajectory.Len())
	}
	if trajectory.NextStates()[1] != 2 || trajectory.Rewards()[1] != 5 {
		t.Errorf("unexpected last step")
	}

	left := NewPolicy(3, 2)
	left.SetGreedy(0, 0)
	left.SetGreedy(1, 0)
	trajectory = GenerateTrajectory(env, 1, left, 4, NewRand(1))
	if trajectory.Len() != 4 {
		t.Errorf("expected episode to stop at the step budget, got %d steps", trajectory.Len())
	}

	trajectory = GenerateTrajectory(env, 2, left, 4, NewRand(1))
	if trajectory.Len() != 0 {
		t.Errorf("expected no steps from a terminal state")
	}
}

func TestUniformStart(t *testing.T) {
	env := NewModelEnvironment(chainModel(), 0, nil)
	rng := NewRand(7)
	for i := 0; i < 100; i++ {
		s, err := UniformStart(env, rng)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if env.IsTerminal(s) {
			t.Fatalf("drew terminal start state %d", s)
		}
	}

	allTerminal := NewModel(2, 1)
	allTerminal.SetTerminal(0)
	allTerminal.SetTerminal(1)
	if _, err := UniformStart(NewModelEnvironment(allTerminal, 0, nil), rng); !errors.Is(err, ErrNoStartState) {
		t.Errorf("expected ErrNoStartState, got %v", err)
	}
}

func TestModelValidate(t *testing.T) {
	m := chainModel()
	if err := m.Validate(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	m.SetTransition(1, 1, 2, 0.5, 5)
	if err := m.Validate(); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("expected ErrInvalidModel, got %v", err)
	}
	if len(m.Terminals()) != 1 || m.Terminals()[0] != 2 {
		t.Errorf("unexpected terminals %v", m.Terminals())
	}
}

func TestPolicyRows(t *testing.T) {
	p := NewUniformPolicy(2, 4)
	if p.Prob(1, 3) != 0.25 {
		t.Errorf("expected uniform probability 0.25, got %v", p.Prob(1, 3))
	}
	p.SetEpsilonSoft(0, 1, 0.2)
	expected := []float64{0.05, 0.85, 0.05, 0.05}
	sum := 0.0
	for a, prob := range p.Row(0) {
		if math.Abs(prob-expected[a]) > 1e-12 {
			t.Errorf("action %d: expected %v, got %v", a, expected[a], prob)
		}
		sum += prob
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("epsilon soft row sums to %v", sum)
	}
	if p.Greedy(0) != 1 {
		t.Errorf("expected greedy action 1, got %d", p.Greedy(0))
	}

	clone := p.Clone()
	p.SetGreedy(0, 3)
	if !p.IsDeterministic(0, 3) {
		t.Errorf("expected deterministic row")
	}
	if clone.IsDeterministic(0, 3) || clone.Greedy(0) != 1 {
		t.Errorf("clone shares the table")
	}
	if err := CheckPolicy(p, 3, 4); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCategorical(t *testing.T) {
	rng := NewRand(3)
	for i := 0; i < 50; i++ {
		if a := rng.Categorical([]float64{0, 1, 0}); a != 1 {
			t.Fatalf("drew action %d without mass", a)
		}
	}
	counts := make([]int, 2)
	for i := 0; i < 10000; i++ {
		counts[rng.Categorical([]float64{0.25, 0.75})]++
	}
	if counts[1] < 7000 || counts[1] > 8000 {
		t.Errorf("expected about 7500 draws of action 1, got %d", counts[1])
	}
}

func TestValidators(t *testing.T) {
	if err := ValidateGamma(1.5); !errors.Is(err, ErrInvalidGamma) {
		t.Errorf("expected ErrInvalidGamma, got %v", err)
	}
	if err := ValidateTheta(0); !errors.Is(err, ErrInvalidTheta) {
		t.Errorf("expected ErrInvalidTheta, got %v", err)
	}
	if err := ValidateAlpha(-1); !errors.Is(err, ErrInvalidAlpha) {
		t.Errorf("expected ErrInvalidAlpha, got %v", err)
	}
	if err := ValidateEpsilon(math.NaN()); !errors.Is(err, ErrInvalidEpsilon) {
		t.Errorf("expected ErrInvalidEpsilon, got %v", err)
	}
	if err := ValidateBudget(0, 1); err != nil {
		t.Errorf("zero episodes should be accepted, got %v", err)
	}
	if err := ValidateBudget(10, 0); !errors.Is(err, ErrInvalidBudget) {
		t.Errorf("expected ErrInvalidBudget, got %v", err)
	}
}

func TestMovingAverageReturns(t *testing.T) {
	stats := []EpisodeStats{{Return: 1}, {Return: 3}, {Return: 5}}
	smoothed := MovingAverageReturns(2)("test", stats).([]float64)
	expected := []float64{1, 2, 4}
	for i := range expected {
		if smoothed[i] != expected[i] {
			t.Errorf("episode %d: expected %v, got %v", i, expected[i], smoothed[i])
		}
	}
	if MeanReturn(stats) != 3 {
		t.Errorf("expected mean return 3, got %v", MeanReturn(stats))
	}
}

func TestGlobalRandConcurrentDraws(t *testing.T) {
	done := make(chan []int, 4)
	for g := 0; g < 4; g++ {
		go func() {
			rng := GlobalRand()
			draws := make([]int, 0, 2000)
			for i := 0; i < 2000; i++ {
				draws = append(draws, rng.Intn(10), rng.Categorical([]float64{1, 1}))
				rng.Float64()
			}
			done <- draws
		}()
	}
	for g := 0; g < 4; g++ {
		for _, d := range <-done {
			if d < 0 || d >= 10 {
				t.Errorf("draw %d out of range", d)
			}
		}
	}
	if d := Derive(); d == GlobalRand() {
		t.Errorf("expected an independent generator")
	}
}

func TestSeedReseedsInPlace(t *testing.T) {
	rng := GlobalRand()
	Seed(42)
	first := []float64{rng.Float64(), rng.Float64(), float64(rng.Intn(100))}
	Seed(42)
	second := []float64{rng.Float64(), rng.Float64(), float64(rng.Intn(100))}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("draw %d differs after reseeding: %v and %v", i, first[i], second[i])
		}
	}
}
