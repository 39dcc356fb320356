// Copyright 2025 go-collatz Authors. SPDX-License-Identifier: Apache-2.0

package collatz

import (
	"errors"
	"fmt"
)

// Outcome is the state of a lane. Every terminal state is a distinct value,
// so a caller can never mistake an inconclusive lane for a successful one.
type Outcome uint32

const (
	// Running means the lane has not reached a terminal state.
	Running Outcome = iota

	// ReachedOne means the trajectory reached 1. Steps and Max are valid.
	ReachedOne

	// CycleDetected means the probe met the primary value before 1 was
	// reached: the trajectory is periodic.
	CycleDetected

	// Overflowed means 3n+1 did not fit in the vector width.
	Overflowed

	// StepLimitExceeded means the step ceiling was hit. Inconclusive.
	StepLimitExceeded
)

var (
	// ErrOverflow reports a trajectory that left the representable range.
	ErrOverflow = errors.New("collatz: arithmetic overflow")

	// ErrCycle reports a trajectory that entered a cycle not containing 1.
	ErrCycle = errors.New("collatz: cycle detected")

	// ErrStepLimit reports a trajectory cut off by the step ceiling.
	ErrStepLimit = errors.New("collatz: step limit exceeded")
)

// String returns a kebab-case name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case ReachedOne:
		return "reached-one"
	case CycleDetected:
		return "cycle-detected"
	case Overflowed:
		return "overflowed"
	case StepLimitExceeded:
		return "step-limit-exceeded"
	default:
		return fmt.Sprintf("outcome(%d)", uint32(o))
	}
}

// Terminal returns true for every state except Running.
func (o Outcome) Terminal() bool {
	return o != Running
}

// Success returns true only for ReachedOne.
func (o Outcome) Success() bool {
	return o == ReachedOne
}

// Err returns the sentinel error of a failure outcome, or nil.
func (o Outcome) Err() error {
	switch o {
	case CycleDetected:
		return ErrCycle
	case Overflowed:
		return ErrOverflow
	case StepLimitExceeded:
		return ErrStepLimit
	default:
		return nil
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for o := Running; o <= StepLimitExceeded; o++ {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// Outcomes lists every outcome in declaration order.
func Outcomes() []Outcome {
	return []Outcome{Running, ReachedOne, CycleDetected, Overflowed, StepLimitExceeded}
}
