package types

// Trajectory of an episode as parallel sequences of
// (state, action, nextState, reward)
type Trajectory struct {
	states     []int
	actions    []int
	nextStates []int
	rewards    []float64
}

func NewTrajectory() *Trajectory {
	return &Trajectory{
		states:     make([]int, 0),
		actions:    make([]int, 0),
		nextStates: make([]int, 0),
		rewards:    make([]float64, 0),
	}
}

func (t *Trajectory) Append(state, action, nextState int, reward float64) {
	t.states = append(t.states, state)
	t.actions = append(t.actions, action)
	t.nextStates = append(t.nextStates, nextState)
	t.rewards = append(t.rewards, reward)
}

// Prepend inserts a step before the first one, used for forced first steps
func (t *Trajectory) Prepend(state, action, nextState int, reward float64) {
	t.states = append([]int{state}, t.states...)
	t.actions = append([]int{action}, t.actions...)
	t.nextStates = append([]int{nextState}, t.nextStates...)
	t.rewards = append([]float64{reward}, t.rewards...)
}

func (t *Trajectory) Len() int {
	return len(t.states)
}

func (t *Trajectory) Get(i int) (state, action, nextState int, reward float64, ok bool) {
	if i < 0 || i >= len(t.states) {
		return 0, 0, 0, 0, false
	}
	return t.states[i], t.actions[i], t.nextStates[i], t.rewards[i], true
}

func (t *Trajectory) States() []int {
	return t.states
}

func (t *Trajectory) Actions() []int {
	return t.actions
}

func (t *Trajectory) NextStates() []int {
	return t.nextStates
}

func (t *Trajectory) Rewards() []float64 {
	return t.rewards
}

// FirstStateVisits marks the steps whose state does not occur earlier in the trajectory
func (t *Trajectory) FirstStateVisits() []bool {
	first := make([]bool, len(t.states))
	seen := make(map[int]bool)
	for i, s := range t.states {
		if !seen[s] {
			first[i] = true
			seen[s] = true
		}
	}
	return first
}

// FirstPairVisits marks the steps whose (state, action) pair does not occur earlier
func (t *Trajectory) FirstPairVisits() []bool {
	first := make([]bool, len(t.states))
	seen := make(map[[2]int]bool)
	for i, s := range t.states {
		key := [2]int{s, t.actions[i]}
		if !seen[key] {
			first[i] = true
			seen[key] = true
		}
	}
	return first
}

// Return is the discounted return from the first step
func (t *Trajectory) Return(gamma float64) float64 {
	g := 0.0
	for i := len(t.rewards) - 1; i >= 0; i-- {
		g = gamma*g + t.rewards[i]
	}
	return g
}
