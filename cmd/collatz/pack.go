// Copyright 2025 go-collatz Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/go-collatz/config"
	"github.com/ajroetker/go-collatz/kernel"
	"github.com/ajroetker/go-collatz/limb"
)

func newPackCmd(cfg *config.Config) *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Write a range of starting values as a packed input file",
		Long: `Write the starting values [start, start+count) as packed little-endian
limbs, the layout "collatz run --input" reads. Each value takes width/8 bytes.`,
		Example: `  collatz pack --start 27 --count 1000 -o inputs.bin`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				return errors.New("pack needs --output")
			}
			if opts.count <= 0 {
				return fmt.Errorf("count must be positive, got %d", opts.count)
			}
			return withOutput(cmd, opts.output, func(out io.Writer) error {
				switch cfg.Width {
				case 64:
					return packRange[limb.U64](out, opts, cfg.BatchSize)
				case 128:
					return packRange[limb.U128](out, opts, cfg.BatchSize)
				case 256:
					return packRange[limb.U256](out, opts, cfg.BatchSize)
				}
				return fmt.Errorf("%w: width %d", config.ErrInvalid, cfg.Width)
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.start, "start", "1", "First starting value (decimal or 0x hex)")
	flags.Int64Var(&opts.count, "count", 1000, "Number of starting values")
	flags.StringVarP(&opts.output, "output", "o", "", "File to write")
	return cmd
}

func packRange[V limb.Vector[V]](out io.Writer, opts runOptions, batchSize int) error {
	first, err := rangeBounds[V](opts.start, opts.count)
	if err != nil {
		return err
	}
	next := rangeBatches(first)
	bw := bufio.NewWriter(out)
	var buf []byte
	for remaining := opts.count; remaining > 0; {
		n := int(min(remaining, int64(batchSize)))
		buf = kernel.EncodeInputs(buf[:0], next(n))
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		remaining -= int64(n)
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	logger.Info("packed inputs",
		zap.String("start", limb.Format(first)),
		zap.Int64("count", opts.count),
		zap.Int("bytes_per_value", limb.Size[V]()))
	return nil
}
