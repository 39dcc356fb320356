// Copyright 2025 go-collatz Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package kernel applies the Collatz lane evaluator to whole batches.
//
// A launch takes an ordered slice of starting values and fills an ordered
// slice of results of the same length. Lane i reads only inputs[i] and
// writes only outputs[i]; lanes share no mutable state, so they run without
// locks in any order and the results do not depend on scheduling.
//
// Lanes are grouped (DefaultGroupSize per group) and groups are handed to a
// workerpool. The grid is rounded up to whole groups; lanes past the end of
// the batch do nothing.
//
//	k, _ := kernel.New[limb.U128](kernel.Config{}, kernel.WithPool(pool))
//	results, err := k.Run(inputs)
package kernel

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ajroetker/go-collatz/collatz"
	"github.com/ajroetker/go-collatz/limb"
	"github.com/ajroetker/go-collatz/workerpool"
)

// ErrLengthMismatch is returned when inputs and outputs differ in length.
var ErrLengthMismatch = errors.New("kernel: input and output lengths differ")

// Config holds the launch parameters.
type Config struct {
	// GroupSize is the number of lanes per group. It affects scheduling
	// granularity only. Zero means DefaultGroupSize.
	GroupSize int

	// StepLimit is the per-lane step ceiling. Zero means
	// collatz.DefaultStepLimit.
	StepLimit uint32
}

type options struct {
	pool    *workerpool.Pool
	metrics *Metrics
	logger  *zap.Logger
}

// Option configures a Kernel.
type Option func(*options)

// WithPool runs groups on pool. Without a pool, groups run sequentially on
// the calling goroutine.
func WithPool(pool *workerpool.Pool) Option {
	return func(o *options) { o.pool = pool }
}

// WithMetrics records every launch in m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithLogger sets the logger used for launch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Kernel evaluates batches of V.
type Kernel[V limb.Vector[V]] struct {
	cfg  Config
	opts options
	step collatz.StepFunc[V]
}

// New validates cfg and returns a Kernel.
func New[V limb.Vector[V]](cfg Config, opts ...Option) (*Kernel[V], error) {
	if cfg.GroupSize == 0 {
		cfg.GroupSize = DefaultGroupSize
	}
	if cfg.GroupSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrGroupSize, cfg.GroupSize)
	}
	if cfg.StepLimit == 0 {
		cfg.StepLimit = collatz.DefaultStepLimit
	}

	k := &Kernel[V]{cfg: cfg}
	for _, opt := range opts {
		opt(&k.opts)
	}
	if k.opts.logger == nil {
		k.opts.logger = zap.NewNop()
	}
	return k, nil
}

// Config returns the effective configuration.
func (k *Kernel[V]) Config() Config {
	return k.cfg
}

// WithStep returns a copy of k that uses step instead of the Collatz step.
func (k *Kernel[V]) WithStep(step collatz.StepFunc[V]) *Kernel[V] {
	c := *k
	c.step = step
	return &c
}

// Launch evaluates inputs[i] into outputs[i] for every i and blocks until
// all lanes are terminal. Per-lane failures are reported in the results,
// never as an error.
func (k *Kernel[V]) Launch(inputs []V, outputs []collatz.Result[V]) error {
	if len(inputs) != len(outputs) {
		return fmt.Errorf("%w: %d inputs, %d outputs", ErrLengthMismatch, len(inputs), len(outputs))
	}
	if len(inputs) == 0 {
		return nil
	}
	grid, err := NewGrid(len(inputs), k.cfg.GroupSize)
	if err != nil {
		return err
	}

	laneOpts := collatz.Options[V]{StepLimit: k.cfg.StepLimit, Step: k.step}
	group := func(g int) {
		// Idle lanes of the last group fall outside the span.
		start, end := grid.Span(g)
		for i := start; i < end; i++ {
			outputs[i] = collatz.Evaluate(inputs[i], laneOpts)
		}
	}

	start := time.Now()
	if k.opts.pool != nil {
		k.opts.pool.Groups(grid.Groups, group)
	} else {
		for g := range grid.Groups {
			group(g)
		}
	}
	elapsed := time.Since(start)

	if m := k.opts.metrics; m != nil {
		for _, r := range outputs {
			m.observeLane(r.Outcome, r.Steps)
		}
		m.observeBatch(elapsed)
	}
	k.opts.logger.Debug("batch complete",
		zap.Int("lanes", grid.Lanes),
		zap.Int("groups", grid.Groups),
		zap.Int("idle_lanes", grid.Capacity()-grid.Lanes),
		zap.Duration("elapsed", elapsed))
	return nil
}

// Run allocates the output slice and launches the batch.
func (k *Kernel[V]) Run(inputs []V) ([]collatz.Result[V], error) {
	outputs := make([]collatz.Result[V], len(inputs))
	if err := k.Launch(inputs, outputs); err != nil {
		return nil, err
	}
	return outputs, nil
}
