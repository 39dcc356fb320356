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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-collatz/collatz"
	"github.com/ajroetker/go-collatz/config"
	"github.com/ajroetker/go-collatz/kernel"
	"github.com/ajroetker/go-collatz/limb"
	"github.com/ajroetker/go-collatz/workerpool"
)

// ErrRangeWidth is returned when the requested range does not fit the width.
var ErrRangeWidth = errors.New("range does not fit the vector width")

type runOptions struct {
	start  string
	count  int64
	input  string
	format string
	output string
}

func newRunCmd(cfg *config.Config) *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a contiguous range of starting values",
		Long: `Evaluate every starting value in [start, start+count) and write one
result per value, in order. With --input the starting values are read from
a packed file written by "collatz pack" instead.

The values are split into batches of --batch-size; each batch is one
kernel launch spread over the worker pool.`,
		Example: `  collatz run --start 0x10_0000_0000_0000_0000_0000_0000 --count 1000000 -o collatz_results.txt
  collatz run --input inputs.bin --format binary -o results.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(formats, opts.format) {
				return fmt.Errorf("unknown format %q (want one of %v)", opts.format, formats)
			}
			if opts.format == "binary" && opts.output == "" {
				return errors.New("--format binary needs --output")
			}
			if opts.input != "" {
				if cmd.Flags().Changed("start") || cmd.Flags().Changed("count") {
					return errors.New("--input cannot be combined with --start or --count")
				}
			} else if opts.count <= 0 {
				return fmt.Errorf("count must be positive, got %d", opts.count)
			}

			var metrics *kernel.Metrics
			if cfg.MetricsAddr != "" {
				reg := prometheus.NewRegistry()
				metrics = kernel.NewMetrics(reg)
				stop, err := serveMetrics(cfg.MetricsAddr, reg, logger)
				if err != nil {
					return err
				}
				defer stop()
			}

			return withOutput(cmd, opts.output, func(out io.Writer) error {
				return runWidth(cmd.Context(), *cfg, opts, out, metrics)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.start, "start", "1", "First starting value (decimal or 0x hex)")
	flags.Int64Var(&opts.count, "count", 1000, "Number of starting values")
	flags.StringVar(&opts.input, "input", "", "Read packed starting values from this file")
	flags.IntVar(&cfg.BatchSize, "batch-size", cfg.BatchSize, "Values per kernel launch")
	flags.StringVar(&opts.format, "format", "text", "Output format (text, json, yaml, binary)")
	flags.StringVarP(&opts.output, "output", "o", "", "Write results to this file instead of stdout")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address")
	return cmd
}

func runWidth(ctx context.Context, cfg config.Config, opts runOptions, out io.Writer, metrics *kernel.Metrics) error {
	switch cfg.Width {
	case 64:
		return runBatches[limb.U64](ctx, cfg, opts, out, metrics)
	case 128:
		return runBatches[limb.U128](ctx, cfg, opts, out, metrics)
	case 256:
		return runBatches[limb.U256](ctx, cfg, opts, out, metrics)
	}
	return fmt.Errorf("%w: width %d", config.ErrInvalid, cfg.Width)
}

// rangeBounds parses the first value and checks that the last one,
// start+count-1, still fits V.
func rangeBounds[V limb.Vector[V]](start string, count int64) (V, error) {
	first, err := limb.Parse[V](start)
	if err != nil {
		return first, fmt.Errorf("start %q: %w", start, err)
	}
	last := new(big.Int).Add(limb.ToBig(first), big.NewInt(count-1))
	if _, err := limb.FromBig[V](last); err != nil {
		return first, fmt.Errorf("%w: %s + %d exceeds %d bits", ErrRangeWidth, start, count, first.Width())
	}
	return first, nil
}

// rangeBatches returns a function that yields the next n consecutive values
// starting at first.
func rangeBatches[V limb.Vector[V]](first V) func(n int) []V {
	one := limb.One[V]()
	next := first
	return func(n int) []V {
		inputs := make([]V, n)
		for i := range inputs {
			inputs[i] = next
			// Wraps past the last value only, which is never used.
			next = next.Add(one).Value
		}
		return inputs
	}
}

// sliceBatches yields successive chunks of values.
func sliceBatches[V limb.Vector[V]](values []V) func(n int) []V {
	return func(n int) []V {
		b := values[:n:n]
		values = values[n:]
		return b
	}
}

// batchSource returns the batch generator and the total number of values.
func batchSource[V limb.Vector[V]](opts runOptions) (func(n int) []V, int64, error) {
	if opts.input == "" {
		first, err := rangeBounds[V](opts.start, opts.count)
		if err != nil {
			return nil, 0, err
		}
		return rangeBatches(first), opts.count, nil
	}
	data, err := os.ReadFile(opts.input)
	if err != nil {
		return nil, 0, fmt.Errorf("read input: %w", err)
	}
	values, err := kernel.DecodeInputs[V](data)
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", opts.input, err)
	}
	return sliceBatches(values), int64(len(values)), nil
}

type batch[V limb.Vector[V]] struct {
	inputs  []V
	results []collatz.Result[V]
}

func runBatches[V limb.Vector[V]](ctx context.Context, cfg config.Config, opts runOptions, out io.Writer, metrics *kernel.Metrics) error {
	next, total, err := batchSource[V](opts)
	if err != nil {
		return err
	}

	pool := workerpool.New(cfg.Workers)
	defer pool.Close()

	w, err := newResultWriter[V](opts.format, out, pool)
	if err != nil {
		return err
	}
	kopts := []kernel.Option{kernel.WithPool(pool), kernel.WithLogger(logger)}
	if metrics != nil {
		kopts = append(kopts, kernel.WithMetrics(metrics))
	}
	k, err := kernel.New[V](kernel.Config{GroupSize: cfg.GroupSize, StepLimit: cfg.StepLimit}, kopts...)
	if err != nil {
		return err
	}

	var zero V
	target := kernel.DetectTarget()
	logger.Info("starting run",
		zap.Int64("count", total),
		zap.Int("width", zero.Width()),
		zap.String("format", opts.format),
		zap.Int("batch_size", cfg.BatchSize),
		zap.Int("workers", pool.NumWorkers()),
		zap.String("target", target.Name))

	began := time.Now()
	tally := make(map[collatz.Outcome]int)
	batches := make(chan batch[V], 2)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(batches)
		for remaining := total; remaining > 0; {
			n := int(min(remaining, int64(cfg.BatchSize)))
			inputs := next(n)
			results, err := k.Run(inputs)
			if err != nil {
				return err
			}
			select {
			case batches <- batch[V]{inputs: inputs, results: results}:
			case <-ctx.Done():
				return ctx.Err()
			}
			remaining -= int64(n)
		}
		return nil
	})
	g.Go(func() error {
		for b := range batches {
			if err := w.Write(b.inputs, b.results); err != nil {
				return fmt.Errorf("write results: %w", err)
			}
			counts := lo.CountValuesBy(b.results, func(r collatz.Result[V]) collatz.Outcome {
				return r.Outcome
			})
			for o, n := range counts {
				tally[o] += n
			}
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fields := lo.FilterMap(collatz.Outcomes(), func(o collatz.Outcome, _ int) (zap.Field, bool) {
		return zap.Int(o.String(), tally[o]), o.Terminal()
	})
	fields = append(fields, zap.Duration("elapsed", time.Since(began)))
	logger.Info("run complete", fields...)
	return nil
}
