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
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-collatz/collatz"
	"github.com/ajroetker/go-collatz/config"
	"github.com/ajroetker/go-collatz/limb"
)

func newCheckCmd(cfg *config.Config) *cobra.Command {
	var trace bool
	cmd := &cobra.Command{
		Use:   "check N...",
		Short: "Evaluate individual starting values",
		Example: `  collatz check 27
  collatz check --width 256 0xFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF
  collatz check --trace 6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch cfg.Width {
			case 64:
				return checkValues[limb.U64](w, *cfg, args, trace)
			case 128:
				return checkValues[limb.U128](w, *cfg, args, trace)
			case 256:
				return checkValues[limb.U256](w, *cfg, args, trace)
			}
			return fmt.Errorf("%w: width %d", config.ErrInvalid, cfg.Width)
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "Print every value of each trajectory")
	return cmd
}

func checkValues[V limb.Vector[V]](w io.Writer, cfg config.Config, args []string, trace bool) error {
	opts := collatz.Options[V]{StepLimit: cfg.StepLimit}
	for _, arg := range args {
		start, err := limb.Parse[V](arg)
		if err != nil {
			return fmt.Errorf("%q: %w", arg, err)
		}

		var res collatz.Result[V]
		if trace {
			res = collatz.Trace(start, opts, func(step uint32, v V) bool {
				_, err = fmt.Fprintf(w, "  %d: %s\n", step, limb.Format(v))
				return err == nil
			})
			if err != nil {
				return err
			}
		} else {
			res = collatz.Evaluate(start, opts)
		}

		if _, err := fmt.Fprintln(w, newRecord(start, res)); err != nil {
			return err
		}
	}
	return nil
}
