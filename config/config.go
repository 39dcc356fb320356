// Copyright 2025 go-collatz Authors. SPDX-License-Identifier: Apache-2.0

// Package config loads runtime settings from COLLATZ_* environment
// variables. Command-line flags override the loaded values.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
)

// Widths lists the supported vector widths in bits.
var Widths = []int{64, 128, 256}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config holds the host-side settings of a run.
type Config struct {
	// StepLimit is the per-lane step ceiling.
	StepLimit uint32 `env:"COLLATZ_STEP_LIMIT" envDefault:"100000" yaml:"step_limit"`

	// GroupSize is the number of lanes per group.
	GroupSize int `env:"COLLATZ_GROUP_SIZE" envDefault:"64" yaml:"group_size"`

	// Workers is the worker pool size; 0 means GOMAXPROCS.
	Workers int `env:"COLLATZ_WORKERS" envDefault:"0" yaml:"workers"`

	// Width is the vector width in bits.
	Width int `env:"COLLATZ_WIDTH" envDefault:"128" yaml:"width"`

	// BatchSize is the number of lanes per kernel launch.
	BatchSize int `env:"COLLATZ_BATCH_SIZE" envDefault:"50000" yaml:"batch_size"`

	LogLevel  string `env:"COLLATZ_LOG_LEVEL" envDefault:"info" yaml:"log_level"`
	LogFormat string `env:"COLLATZ_LOG_FORMAT" envDefault:"json" yaml:"log_format"`

	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string `env:"COLLATZ_METRICS_ADDR" yaml:"metrics_addr,omitempty"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if c.StepLimit == 0 {
		return fmt.Errorf("%w: step limit must be positive", ErrInvalid)
	}
	if c.GroupSize <= 0 {
		return fmt.Errorf("%w: group size %d must be positive", ErrInvalid, c.GroupSize)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size %d must be positive", ErrInvalid, c.BatchSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalid, c.Workers)
	}
	if !slices.Contains(Widths, c.Width) {
		return fmt.Errorf("%w: width %d not one of %v", ErrInvalid, c.Width, Widths)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log format %q not json or console", ErrInvalid, c.LogFormat)
	}
	return nil
}
