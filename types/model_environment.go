package types

// ModelEnvironment samples steps from a dense model, turning a
// Model into the model-free contract
type ModelEnvironment struct {
	model *Model
	start int
	rand  *Rand
}

var _ ModelBased = &ModelEnvironment{}

// NewModelEnvironment creates an environment that resets to start.
// A nil rng uses the process-wide generator.
func NewModelEnvironment(model *Model, start int, rng *Rand) *ModelEnvironment {
	return &ModelEnvironment{
		model: model,
		start: start,
		rand:  rng.OrGlobal(),
	}
}

func (e *ModelEnvironment) NumStates() int {
	return e.model.NumStates()
}

func (e *ModelEnvironment) NumActions() int {
	return e.model.NumActions()
}

func (e *ModelEnvironment) Reset() int {
	return e.start
}

func (e *ModelEnvironment) Step(state, action int) (int, float64, bool) {
	next := e.rand.Categorical(e.model.Transitions(state, action))
	reward := e.model.Reward(state, action, next)
	return next, reward, e.model.IsTerminal(next)
}

func (e *ModelEnvironment) IsTerminal(state int) bool {
	return e.model.IsTerminal(state)
}

func (e *ModelEnvironment) Model() *Model {
	return e.model
}
