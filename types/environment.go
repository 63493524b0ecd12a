package types

// Environment is the model-free contract sampled by the Monte Carlo and
// temporal-difference engines. States and actions are indices
// 0..NumStates()-1 and 0..NumActions()-1.
type Environment interface {
	NumStates() int
	NumActions() int
	// Reset returns the start state of a new episode
	Reset() int
	// Step samples the outcome of taking action in state.
	// The state argument is explicit so that callers may start
	// from an arbitrary state (exploring starts)
	Step(state, action int) (next int, reward float64, terminal bool)
	IsTerminal(state int) bool
}

// ModelBased environments additionally expose the dense
// transition-reward model used by dynamic programming
type ModelBased interface {
	Environment
	Model() *Model
}

// TerminalFunc reports whether a state is absorbing
type TerminalFunc func(int) bool

// NonTerminalStates lists the states for which isTerminal is false, in index order
func NonTerminalStates(states int, isTerminal TerminalFunc) []int {
	result := make([]int, 0, states)
	for s := 0; s < states; s++ {
		if !isTerminal(s) {
			result = append(result, s)
		}
	}
	return result
}
