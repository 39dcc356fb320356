// Copyright 2025 go-collatz Authors. SPDX-License-Identifier: Apache-2.0

// Package collatz evaluates Collatz trajectories of fixed-width integers.
//
// Each starting value is evaluated by a lane: a small state machine holding
// the current value, the step count, the maximum seen so far and a probe
// that follows the same trajectory at half speed. The probe is Floyd's
// tortoise: if the trajectory ever becomes periodic the probe and the
// current value meet, so cycles are found with O(1) state per lane.
//
// Lanes never allocate, never recurse and never panic on valid input; they
// terminate in one of four states (see Outcome). The step ceiling bounds the
// work of any lane regardless of its input.
//
//	res := collatz.Evaluate(limb.U128{27}, collatz.Options[limb.U128]{})
//	// res.Outcome == collatz.ReachedOne, res.Steps == 111, res.Max == 9232
package collatz

import (
	"fmt"

	"github.com/ajroetker/go-collatz/limb"
)

// DefaultStepLimit is the step ceiling used when Options.StepLimit is zero.
const DefaultStepLimit uint32 = 100_000

// StepFunc maps a value to its successor. Overflow terminates the lane.
type StepFunc[V any] func(V) limb.AddOutcome[V]

// Step is the Collatz step: v/2 for even v, 3v+1 for odd v.
func Step[V limb.Vector[V]](v V) limb.AddOutcome[V] {
	if v.IsEven() {
		return limb.AddOutcome[V]{Value: v.Halve()}
	}
	return v.TripleAndIncrement()
}

// Options configures Evaluate. The zero value uses DefaultStepLimit and Step.
type Options[V limb.Vector[V]] struct {
	// StepLimit is the maximum number of steps per lane.
	StepLimit uint32

	// Step replaces the Collatz step. Used to inject functions with known
	// cycles.
	Step StepFunc[V]
}

func (o Options[V]) resolve() (uint32, StepFunc[V]) {
	limit, step := o.StepLimit, o.Step
	if limit == 0 {
		limit = DefaultStepLimit
	}
	if step == nil {
		step = Step[V]
	}
	return limit, step
}

// Result is the terminal output of one lane.
//
// Steps and Max are always filled in. For ReachedOne they are the answer;
// for the failure outcomes they describe the trajectory up to the point the
// lane stopped.
type Result[V limb.Vector[V]] struct {
	Steps   uint32
	Max     V
	Outcome Outcome
}

// Err returns nil on success, otherwise the outcome's sentinel error
// annotated with the step at which the lane stopped.
func (r Result[V]) Err() error {
	if err := r.Outcome.Err(); err != nil {
		return fmt.Errorf("step %d: %w", r.Steps, err)
	}
	return nil
}

// LaneState is the working state of one lane.
type LaneState[V limb.Vector[V]] struct {
	Current V
	Steps   uint32
	Max     V

	// Probe trails Current at half speed.
	Probe      V
	ProbeSteps uint32

	Outcome Outcome
}

// NewLane returns a Running lane positioned at start.
func NewLane[V limb.Vector[V]](start V) LaneState[V] {
	return LaneState[V]{
		Current: start,
		Max:     start,
		Probe:   start,
	}
}

// Advance performs one transition and returns the resulting state.
// Terminal lanes are left untouched.
//
// The order of checks is: reached one, step ceiling, step (with overflow),
// max update, step count, and on every even step a probe step followed by
// the cycle check.
func (s *LaneState[V]) Advance(limit uint32, step StepFunc[V]) Outcome {
	if s.Outcome.Terminal() {
		return s.Outcome
	}
	if s.Current.IsOne() {
		s.Outcome = ReachedOne
		return s.Outcome
	}
	if s.Steps >= limit {
		s.Outcome = StepLimitExceeded
		return s.Outcome
	}

	next := step(s.Current)
	if next.Overflow {
		s.Outcome = Overflowed
		return s.Outcome
	}
	s.Current = next.Value
	if s.Current.Greater(s.Max) {
		s.Max = s.Current
	}
	s.Steps++

	if s.Steps%2 == 0 {
		// The probe replays values Current has already produced without
		// overflowing, so its own overflow flag is ignored.
		if p := step(s.Probe); !p.Overflow {
			s.Probe = p.Value
			s.ProbeSteps++
		}
		if s.Steps > 2 && s.Probe.Equal(s.Current) {
			s.Outcome = CycleDetected
		}
	}
	return s.Outcome
}

// Result snapshots the lane.
func (s *LaneState[V]) Result() Result[V] {
	return Result[V]{Steps: s.Steps, Max: s.Max, Outcome: s.Outcome}
}

// Evaluate runs one lane from start to a terminal state.
//
// Evaluate is a pure function of start and opts. A start of zero is a fixed
// point of the Collatz step and is reported as CycleDetected.
func Evaluate[V limb.Vector[V]](start V, opts Options[V]) Result[V] {
	limit, step := opts.resolve()
	lane := NewLane(start)
	for lane.Advance(limit, step) == Running {
	}
	return lane.Result()
}

// Trace runs a lane like Evaluate and calls fn with every value of the
// primary trajectory, starting with (0, start). Returning false from fn
// stops the walk early, in which case the Result may still be Running.
func Trace[V limb.Vector[V]](start V, opts Options[V], fn func(step uint32, v V) bool) Result[V] {
	limit, step := opts.resolve()
	lane := NewLane(start)
	if !fn(0, start) {
		return lane.Result()
	}
	for {
		prev := lane.Steps
		o := lane.Advance(limit, step)
		if lane.Steps != prev && !fn(lane.Steps, lane.Current) {
			break
		}
		if o != Running {
			break
		}
	}
	return lane.Result()
}
