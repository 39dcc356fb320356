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
	"errors"
	"fmt"
)

// DefaultGroupSize is the number of lanes per group when Config.GroupSize is
// zero.
const DefaultGroupSize = 64

// ErrGroupSize is returned for a non-positive group size.
var ErrGroupSize = errors.New("kernel: group size must be positive")

// Grid maps lanes onto fixed-size groups. The grid is rounded up to a whole
// number of groups, so the last group may contain idle lanes whose index is
// past the end of the batch.
type Grid struct {
	Lanes     int // lanes with work (len of the batch)
	GroupSize int // lanes per group
	Groups    int // ceil(Lanes / GroupSize)
}

// NewGrid returns the grid covering lanes with groups of groupSize.
func NewGrid(lanes, groupSize int) (Grid, error) {
	if groupSize <= 0 {
		return Grid{}, fmt.Errorf("%w: %d", ErrGroupSize, groupSize)
	}
	if lanes < 0 {
		lanes = 0
	}
	return Grid{
		Lanes:     lanes,
		GroupSize: groupSize,
		Groups:    (lanes + groupSize - 1) / groupSize,
	}, nil
}

// Capacity returns the number of physical lanes, idle ones included.
func (g Grid) Capacity() int {
	return g.Groups * g.GroupSize
}

// Span returns the half-open range of batch indices served by group. The
// span of the last group is short when the batch is not a multiple of
// GroupSize; groups past the end have an empty span.
func (g Grid) Span(group int) (start, end int) {
	start = min(group*g.GroupSize, g.Lanes)
	end = min(start+g.GroupSize, g.Lanes)
	return start, end
}
