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

// Command collatz evaluates Collatz trajectories for ranges of fixed-width
// integers.
//
// Usage:
//
//	collatz run --start 1267650600228229401496703205376 --count 1000000
//	collatz pack --start 27 --count 1000 -o inputs.bin
//	collatz run --input inputs.bin --format binary -o results.bin
//	collatz check 27 97 871
//	collatz check --trace 6
//	collatz info
//
// Settings come from COLLATZ_* environment variables (see package config)
// and can be overridden by flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-collatz/config"
)

var (
	// Logger, built by the root command before any subcommand runs.
	logger *zap.Logger

	verbose bool
)

// newRootCmd builds the command tree with flag defaults taken from cfg.
// Flags write back into cfg.
func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "collatz",
		Short: "Evaluate Collatz trajectories over fixed-width integers",
		Long: `collatz evaluates, for every starting value in a batch, the number of
steps its Collatz trajectory takes to reach 1 and the largest value on the way.

Values are fixed-width unsigned integers (64, 128 or 256 bits). Each value is
evaluated by an independent lane that stops on one of four outcomes:
reached-one, overflowed, cycle-detected or step-limit-exceeded.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			l, err := newLogger(*cfg, verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l.With(zap.String("run", uuid.NewString()))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "Vector width in bits (64, 128 or 256)")
	flags.Uint32Var(&cfg.StepLimit, "step-limit", cfg.StepLimit, "Maximum steps per lane")
	flags.IntVar(&cfg.GroupSize, "group-size", cfg.GroupSize, "Lanes per group")
	flags.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker goroutines (0 = GOMAXPROCS)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log encoding (json or console)")

	root.AddCommand(newRunCmd(cfg), newPackCmd(cfg), newCheckCmd(cfg), newInfoCmd(cfg))
	return root
}

func newLogger(cfg config.Config, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = cfg.LogFormat
	if cfg.LogFormat == "console" {
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
