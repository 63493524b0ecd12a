package grid

import (
	"errors"
	"path"
	"testing"

	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
)

func TestLineWorld(t *testing.T) {
	if _, err := NewLineWorld(2); !errors.Is(err, ErrWorldTooSmall) {
		t.Errorf("expected ErrWorldTooSmall, got %v", err)
	}
	w, err := NewLineWorld(5)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := w.Model.Validate(); err != nil {
		t.Errorf("invalid model: %s", err)
	}
	if w.Start != 2 || w.NumStates() != 5 || w.Model.NumActions() != 2 {
		t.Errorf("unexpected line world %+v", w)
	}
	if w.Model.Reward(1, int(MovementLeft), 0) != -1 || w.Model.Reward(3, int(MovementRight), 4) != 1 {
		t.Errorf("unexpected terminal rewards")
	}
	if w.Model.Reward(2, int(MovementRight), 3) != 0 {
		t.Errorf("expected zero reward between inner states")
	}
	if !w.Model.IsTerminal(0) || !w.Model.IsTerminal(4) || w.Model.IsTerminal(2) {
		t.Errorf("unexpected terminal states %v", w.Model.Terminals())
	}
}

func TestGridWorld(t *testing.T) {
	if _, err := NewGridWorld(1, 4); !errors.Is(err, ErrWorldTooSmall) {
		t.Errorf("expected ErrWorldTooSmall, got %v", err)
	}
	w, err := NewGridWorld(4, 3)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err := w.Model.Validate(); err != nil {
		t.Errorf("invalid model: %s", err)
	}
	lose, win := w.StateOf(Position{I: 0, J: 3}), w.StateOf(Position{I: 2, J: 3})
	if !w.Model.IsTerminal(lose) || !w.Model.IsTerminal(win) || len(w.Model.Terminals()) != 2 {
		t.Errorf("unexpected terminal states %v", w.Model.Terminals())
	}
	// moving into the wall stays in place
	if w.Model.Prob(0, int(MovementLeft), 0) != 1 || w.Model.Prob(0, int(MovementUp), 0) != 1 {
		t.Errorf("expected wall bumps to stay in place")
	}
	if w.Model.Reward(w.StateOf(Position{I: 0, J: 2}), int(MovementRight), lose) != -5 {
		t.Errorf("expected -5 for entering the losing corner")
	}
	if w.Model.Reward(w.StateOf(Position{I: 1, J: 3}), int(MovementDown), win) != 1 {
		t.Errorf("expected +1 for entering the winning corner")
	}
	if p := w.Position(w.StateOf(Position{I: 2, J: 1})); p.I != 2 || p.J != 1 {
		t.Errorf("position round trip failed, got %+v", p)
	}
}

func TestStrings(t *testing.T) {
	w, _ := NewLineWorld(5)
	policy := types.NewPolicy(5, 2)
	for s := 1; s < 4; s++ {
		policy.SetGreedy(s, int(MovementRight))
	}
	policy.SetGreedy(1, int(MovementLeft))
	if got := w.PolicyString(policy); got != "#<>>#\n" {
		t.Errorf("unexpected policy string %q", got)
	}
	v := mat.NewVecDense(5, []float64{0, -0.5, 0, 0.5, 0})
	if got := w.ValuesString(v); got != "   0.000   -0.500    0.000    0.500    0.000 \n" {
		t.Errorf("unexpected values string %q", got)
	}
	if MovementDown.String() != "Down" || Movement(7).String() != "Movement(7)" {
		t.Errorf("unexpected movement names")
	}
}

func TestPlotValues(t *testing.T) {
	w, _ := NewGridWorld(3, 3)
	v := mat.NewVecDense(9, nil)
	v.SetVec(2, 1)
	ds := NewValueDataSet(w, v)
	if c, r := ds.Dims(); c != 3 || r != 3 {
		t.Errorf("unexpected dims %d x %d", c, r)
	}
	// row 0 of the heat map is the bottom of the board
	if ds.Z(2, 2) != 1 || ds.Z(2, 0) != 0 {
		t.Errorf("heat map rows are not flipped")
	}
	if err := PlotValues(w, mat.NewVecDense(9, nil), "flat", path.Join(t.TempDir(), "values.png")); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestWorldTooLarge(t *testing.T) {
	if _, err := NewLineWorld(MaxStates + 1); !errors.Is(err, ErrWorldTooLarge) {
		t.Errorf("expected ErrWorldTooLarge, got %v", err)
	}
	if _, err := NewGridWorld(300, 300); !errors.Is(err, ErrWorldTooLarge) {
		t.Errorf("expected ErrWorldTooLarge, got %v", err)
	}
	if _, err := NewGridWorld(32, 32); err != nil {
		t.Errorf("expected a %d cell grid to be accepted, got %v", MaxStates, err)
	}
}
