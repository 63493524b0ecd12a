package types

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidGamma      = errors.New("discount must lie in [0, 1]")
	ErrInvalidTheta      = errors.New("convergence threshold must be positive")
	ErrInvalidAlpha      = errors.New("learning rate must be positive")
	ErrInvalidEpsilon    = errors.New("exploration rate must lie in [0, 1]")
	ErrInvalidBudget     = errors.New("invalid episode or step budget")
	ErrInvalidModel      = errors.New("invalid transition model")
	ErrNoStartState      = errors.New("no non-terminal state to start from")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

func ValidateGamma(gamma float64) error {
	if math.IsNaN(gamma) || gamma < 0 || gamma > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidGamma, gamma)
	}
	return nil
}

func ValidateTheta(theta float64) error {
	if math.IsNaN(theta) || theta <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidTheta, theta)
	}
	return nil
}

func ValidateAlpha(alpha float64) error {
	if math.IsNaN(alpha) || alpha <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAlpha, alpha)
	}
	return nil
}

func ValidateEpsilon(epsilon float64) error {
	if math.IsNaN(epsilon) || epsilon < 0 || epsilon > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, epsilon)
	}
	return nil
}

// ValidateBudget accepts zero episodes (the initial tables are returned)
// but needs at least one step per episode
func ValidateBudget(episodes, maxSteps int) error {
	if episodes < 0 {
		return fmt.Errorf("%w: %d episodes", ErrInvalidBudget, episodes)
	}
	if maxSteps < 1 {
		return fmt.Errorf("%w: %d steps per episode", ErrInvalidBudget, maxSteps)
	}
	return nil
}

// CheckPolicy verifies that a policy table matches the environment dimensions
func CheckPolicy(policy *Policy, states, actions int) error {
	s, a := policy.Dims()
	if s != states || a != actions {
		return fmt.Errorf("%w: policy is %dx%d, environment is %dx%d", ErrDimensionMismatch, s, a, states, actions)
	}
	return nil
}
