package types

// GenerateTrajectory rolls out one episode from start under policy.
// Before every step the current state is checked against the terminal
// predicate; the episode also ends once maxSteps steps have been taken.
func GenerateTrajectory(env Environment, start int, policy *Policy, maxSteps int, rng *Rand) *Trajectory {
	trajectory := NewTrajectory()
	state := start
	for step := 0; step < maxSteps && !env.IsTerminal(state); step++ {
		action := rng.Categorical(policy.Row(state))
		next, reward, _ := env.Step(state, action)
		trajectory.Append(state, action, next, reward)
		state = next
	}
	return trajectory
}

// UniformStart draws a start state uniformly among the non-terminal states.
// This is rejection sampling of a uniform state draw with the terminal draws discarded.
func UniformStart(env Environment, rng *Rand) (int, error) {
	candidates := NonTerminalStates(env.NumStates(), env.IsTerminal)
	if len(candidates) == 0 {
		return 0, ErrNoStartState
	}
	return candidates[rng.Intn(len(candidates))], nil
}
