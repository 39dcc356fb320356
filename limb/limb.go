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

package limb

import "math/bits"

// Slice kernels. Every kernel takes limbs least-significant first and
// assumes all operands have the same length; callers (the width types)
// guarantee this by construction.

// IsZero returns true if every limb of a is zero.
func IsZero(a []uint32) bool {
	for _, x := range a {
		if x != 0 {
			return false
		}
	}
	return true
}

// IsOne returns true if a[0] == 1 and every higher limb is zero.
func IsOne(a []uint32) bool {
	if len(a) == 0 || a[0] != 1 {
		return false
	}
	return IsZero(a[1:])
}

// IsEven returns true if the least-significant bit of a is clear.
func IsEven(a []uint32) bool {
	return len(a) == 0 || a[0]&1 == 0
}

// Equal returns true if a and b hold the same limbs.
func Equal(a, b []uint32) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Greater reports whether a > b. Limbs are compared from the most-significant
// down; the first unequal limb decides.
func Greater(a, b []uint32) bool {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

// Halve sets dst = a >> 1. Each limb takes the low bit of the next limb as
// its new top bit; the most-significant limb shifts in a zero.
//
// dst may alias a.
func Halve(dst, a []uint32) {
	n := len(a)
	if n == 0 {
		return
	}
	for i := 0; i < n-1; i++ {
		dst[i] = (a[i] >> 1) | ((a[i+1] & 1) << 31)
	}
	dst[n-1] = a[n-1] >> 1
}

// Add sets dst = a + b with ripple carry from limb 0 upwards and returns the
// carry out of the most-significant limb. When overflow is true dst holds
// the low-order bits of the sum.
//
// dst may alias a or b.
func Add(dst, a, b []uint32) (overflow bool) {
	var carry uint32
	for i := range dst {
		dst[i], carry = bits.Add32(a[i], b[i], carry)
	}
	return carry != 0
}

// increment adds one in place and returns the carry out of the top limb.
// It is Add(dst, dst, ONE) without materializing ONE.
func increment(dst []uint32) (overflow bool) {
	carry := uint32(1)
	for i := range dst {
		dst[i], carry = bits.Add32(dst[i], 0, carry)
		if carry == 0 {
			return false
		}
	}
	return carry != 0
}

// TripleAndIncrement sets dst = 3a + 1 using two checked additions and an
// increment. It stops at the first addition that overflows and returns true;
// dst is unreliable in that case.
//
// dst must not alias a.
func TripleAndIncrement(dst, a []uint32) (overflow bool) {
	if Add(dst, a, a) {
		return true
	}
	if Add(dst, dst, a) {
		return true
	}
	return increment(dst)
}
