package grid

import (
	"errors"
	"fmt"

	"github.com/zeu5/tabular-mdp/types"
)

// Movement is an action index of the worlds in this package
type Movement int

const (
	MovementLeft Movement = iota
	MovementRight
	MovementUp
	MovementDown
)

var (
	// line worlds only move left and right
	LineMovements = []Movement{MovementLeft, MovementRight}
	AllMovements  = []Movement{MovementLeft, MovementRight, MovementUp, MovementDown}
)

func (m Movement) String() string {
	switch m {
	case MovementLeft:
		return "Left"
	case MovementRight:
		return "Right"
	case MovementUp:
		return "Up"
	case MovementDown:
		return "Down"
	}
	return fmt.Sprintf("Movement(%d)", int(m))
}

// MaxStates bounds the worlds built here, the dense model holds
// 2 * states * actions * states floats
const MaxStates = 1024

var (
	ErrWorldTooSmall = errors.New("world too small")
	ErrWorldTooLarge = errors.New("world too large")
)

// Position of a state on the board, row I from the top and column J from the left
type Position struct {
	I int
	J int
}

// World is a finite board with its dense model. States are numbered
// row by row, s = I*Width + J.
type World struct {
	Name   string
	Width  int
	Height int
	Start  int
	Model  *types.Model
}

// NewLineWorld builds a line of size states with terminals at both ends.
// Stepping into the left end pays -1, into the right end +1, everything else 0.
// Episodes start in the middle.
func NewLineWorld(size int) (*World, error) {
	if size < 3 {
		return nil, fmt.Errorf("%w: line world needs at least 3 states, got %d", ErrWorldTooSmall, size)
	}
	if size > MaxStates {
		return nil, fmt.Errorf("%w: line world has at most %d states, got %d", ErrWorldTooLarge, MaxStates, size)
	}
	model := types.NewModel(size, len(LineMovements))
	for s := 1; s < size-1; s++ {
		model.SetTransition(s, int(MovementLeft), s-1, 1, 0)
		model.SetTransition(s, int(MovementRight), s+1, 1, 0)
	}
	model.SetReward(1, int(MovementLeft), 0, -1)
	model.SetReward(size-2, int(MovementRight), size-1, 1)
	model.SetTerminal(0)
	model.SetTerminal(size - 1)

	return &World{
		Name:   "line",
		Width:  size,
		Height: 1,
		Start:  size / 2,
		Model:  model,
	}, nil
}

// NewGridWorld builds a width x height board. Moves into a wall leave the
// agent in place. The top-right corner is a terminal paying -5 and the
// bottom-right corner a terminal paying +1. Episodes start top-left.
func NewGridWorld(width, height int) (*World, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: grid world needs at least 2x2 cells, got %dx%d", ErrWorldTooSmall, width, height)
	}
	if width > MaxStates || height > MaxStates || width*height > MaxStates {
		return nil, fmt.Errorf("%w: grid world has at most %d cells, got %dx%d", ErrWorldTooLarge, MaxStates, width, height)
	}
	w := &World{
		Name:   "grid",
		Width:  width,
		Height: height,
		Start:  0,
		Model:  types.NewModel(width*height, len(AllMovements)),
	}
	lose := w.StateOf(Position{I: 0, J: width - 1})
	win := w.StateOf(Position{I: height - 1, J: width - 1})
	w.Model.SetTerminal(lose)
	w.Model.SetTerminal(win)

	for s := 0; s < w.NumStates(); s++ {
		if w.Model.IsTerminal(s) {
			continue
		}
		for _, m := range AllMovements {
			next := w.StateOf(w.move(w.Position(s), m))
			reward := 0.0
			switch next {
			case lose:
				reward = -5
			case win:
				reward = 1
			}
			w.Model.SetTransition(s, int(m), next, 1, reward)
		}
	}
	return w, nil
}

func (w *World) move(p Position, m Movement) Position {
	switch m {
	case MovementLeft:
		p.J = max(0, p.J-1)
	case MovementRight:
		p.J = min(w.Width-1, p.J+1)
	case MovementUp:
		p.I = max(0, p.I-1)
	case MovementDown:
		p.I = min(w.Height-1, p.I+1)
	}
	return p
}

func (w *World) NumStates() int {
	return w.Width * w.Height
}

func (w *World) Position(s int) Position {
	return Position{I: s / w.Width, J: s % w.Width}
}

func (w *World) StateOf(p Position) int {
	return p.I*w.Width + p.J
}

// Environment samples the world's model, resetting to its start state
func (w *World) Environment(rng *types.Rand) *types.ModelEnvironment {
	return types.NewModelEnvironment(w.Model, w.Start, rng)
}
