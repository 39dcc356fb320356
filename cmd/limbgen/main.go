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

// Command limbgen generates the fixed-width vector types of package limb.
//
// Usage:
//
//	limbgen -output zz_widths.go -pkg limb -limbs 2,4,8
//
// Or via go:generate (see limb/doc.go):
//
//	//go:generate go run ../cmd/limbgen -output zz_widths.go -pkg limb -limbs 2,4,8
//
// Each limb count N produces a type U{32N} [N]uint32 with the full method set
// required by limb.Vector, delegating to the package's slice kernels.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	outputFile = flag.String("output", "zz_widths.go", "Output Go source file")
	packageOut = flag.String("pkg", "limb", "Output package name")
	limbCounts = flag.String("limbs", "2,4,8", "Comma-separated limb counts, one type per count")
)

func main() {
	flag.Parse()

	limbs, err := parseLimbs(*limbCounts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(1)
	}

	gen := &Generator{
		OutputFile: *outputFile,
		Package:    *packageOut,
		Limbs:      limbs,
	}
	if err := gen.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully generated %s\n", *outputFile)
}

func parseLimbs(s string) ([]int, error) {
	var result []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid limb count %q: %w", p, err)
		}
		result = append(result, n)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no limb counts specified")
	}
	return result, nil
}
