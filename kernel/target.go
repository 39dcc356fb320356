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

package kernel

import (
	"os"
	"strconv"
)

// Target describes the host the lanes run on. It is informational: the
// lane arithmetic is identical on every target.
type Target struct {
	// Name is the widest vector instruction set found ("avx512", "avx2",
	// "neon", "sve" or "scalar").
	Name string

	// Width is that instruction set's register width in bytes.
	Width int
}

// LimbLanes returns how many 32-bit limbs fit in one register.
func (t Target) LimbLanes() int {
	return t.Width / 4
}

// DetectTarget inspects the CPU. Setting COLLATZ_NO_SIMD reports scalar.
func DetectTarget() Target {
	if noSimdEnv() {
		return scalarTarget
	}
	return detectTarget()
}

var scalarTarget = Target{Name: "scalar", Width: 16}

func noSimdEnv() bool {
	val := os.Getenv("COLLATZ_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
